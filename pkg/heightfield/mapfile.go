package heightfield

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrMalformed is returned for height-map files that do not follow the
// bracket format: one row per Z, each row "[h][h]...[h]\n".
var ErrMalformed = errors.New("malformed height map")

// Parse reads a height map. Every row must hold the same number of
// non-negative bracketed integers and end with a newline.
func Parse(r io.Reader) (*Field, error) {
	br := bufio.NewReader(r)

	var rows [][]int
	width := -1
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadBytes('\n')
		if err == io.EOF {
			if len(line) > 0 {
				return nil, fmt.Errorf("%w: row %d: missing trailing newline", ErrMalformed, lineNo)
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", lineNo, err)
		}

		row, err := parseRow(line[:len(line)-1])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, lineNo, err)
		}
		if width >= 0 && len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformed, lineNo, len(row), width)
		}
		width = len(row)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformed)
	}

	f, err := NewField(width, len(rows))
	if err != nil {
		return nil, err
	}
	for z, row := range rows {
		for x, h := range row {
			f.Set(x, z, h)
		}
	}
	return f, nil
}

func parseRow(line []byte) ([]int, error) {
	if len(line) == 0 {
		return nil, errors.New("empty row")
	}
	var row []int
	for len(line) > 0 {
		if line[0] != '[' {
			return nil, fmt.Errorf("expected '[' at column %d", len(row)+1)
		}
		end := bytes.IndexByte(line, ']')
		if end < 0 {
			return nil, fmt.Errorf("missing ']' in column %d", len(row)+1)
		}
		h, err := strconv.Atoi(string(line[1:end]))
		if err != nil {
			return nil, fmt.Errorf("column %d: %v", len(row)+1, err)
		}
		if h < 0 {
			return nil, fmt.Errorf("column %d: negative height %d", len(row)+1, h)
		}
		row = append(row, h)
		line = line[end+1:]
	}
	return row, nil
}

// Load reads a height map from a file.
func Load(path string) (*Field, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Encode writes the field in the bracket format Parse reads.
func Encode(w io.Writer, f *Field) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16)
	for z := 0; z < f.sizeZ; z++ {
		for x := 0; x < f.sizeX; x++ {
			buf = append(buf[:0], '[')
			buf = strconv.AppendInt(buf, int64(f.Height(x, z)), 10)
			buf = append(buf, ']')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes the field to a file.
func Save(path string, f *Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
