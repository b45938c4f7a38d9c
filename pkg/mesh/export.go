package mesh

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Mesh file format: zstd stream of magic "STVB", uint16 version,
// uint32 vertex count, then FloatsPerVertex little-endian float32 per vertex.
const (
	fileMagic   = "STVB"
	fileVersion = 1
)

// Mesh file errors.
var (
	ErrInvalidMagic       = errors.New("invalid mesh file magic: expected 'STVB'")
	ErrUnsupportedVersion = errors.New("unsupported mesh file version")
)

// Encode writes the mesh in the compressed mesh file format.
func Encode(w io.Writer, m *Mesh) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)

	bw.WriteString(fileMagic)
	binary.Write(bw, binary.LittleEndian, uint16(fileVersion))
	binary.Write(bw, binary.LittleEndian, uint32(len(m.Vertices)))

	var buf [4]byte
	for _, f := range m.Floats() {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
		if _, err := bw.Write(buf[:]); err != nil {
			enc.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Decode reads a mesh written by Encode.
func Decode(r io.Reader) (*Mesh, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	magic := make([]byte, len(fileMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != fileMagic {
		return nil, ErrInvalidMagic
	}

	var version uint16
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != fileVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading vertex count: %w", err)
	}

	// count is untrusted; grow as vertices actually arrive
	vertices := make([]Vertex, 0, min(int(count), growChunk))
	var raw [FloatsPerVertex]float32
	for i := 0; i < int(count); i++ {
		if err := binary.Read(br, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("reading vertex %d: %w", i, err)
		}
		vertices = append(vertices, Vertex{
			Position: [3]float32{raw[0], raw[1], raw[2]},
			Normal:   [3]float32{raw[3], raw[4], raw[5]},
			Color:    [3]float32{raw[6], raw[7], raw[8]},
			Light:    raw[9],
		})
	}
	return &Mesh{Vertices: vertices}, nil
}

// WriteFile saves the mesh to path.
func WriteFile(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads a mesh saved by WriteFile.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
