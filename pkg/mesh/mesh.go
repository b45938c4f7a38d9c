// Package mesh extracts the renderable quad surface of a voxel grid.
package mesh

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stone/pkg/voxel"
)

// Vertex buffer layout: position, normal, color, light, all float32.
const (
	FloatsPerVertex = 10
	Stride          = FloatsPerVertex * 4
	PositionOffset  = 0
	NormalOffset    = 3 * 4
	ColorOffset     = 6 * 4
	LightOffset     = 9 * 4
	VerticesPerQuad = 4
)

// growChunk is how many vertices the buffer grows by when full.
const growChunk = 4096

// Vertex is one corner of a quad. It is laid out exactly as the GPU buffer.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3
	Light    float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Mesh is an ordered list of vertices grouped in quads of four.
type Mesh struct {
	Vertices []Vertex
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// QuadCount returns the number of quads.
func (m *Mesh) QuadCount() int { return len(m.Vertices) / VerticesPerQuad }

// SizeBytes returns the size of the vertex buffer.
func (m *Mesh) SizeBytes() int { return len(m.Vertices) * Stride }

// Floats flattens the vertices into the interleaved buffer layout.
func (m *Mesh) Floats() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.Color[:]...)
		out = append(out, v.Light)
	}
	return out
}

// Bounds returns the box enclosing every vertex position.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	return b
}

// QuadIndices returns a triangle index list drawing each quad as
// (0, 1, 2) and (0, 2, 3), preserving its winding.
func QuadIndices(quads int) []uint32 {
	indices := make([]uint32, 0, quads*6)
	for q := 0; q < quads; q++ {
		base := uint32(q * VerticesPerQuad)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return indices
}

// quadSide describes the quad emitted when the neighbor in direction
// `toward` is solid. Corners are unit-cube offsets from the air cell,
// counter-clockwise around the outward normal.
type quadSide struct {
	toward  voxel.Face
	corners [VerticesPerQuad][3]int
}

var quadSides = [voxel.FaceCount]quadSide{
	{voxel.FaceRight, [4][3]int{{1, 0, 0}, {1, 0, 1}, {1, 1, 1}, {1, 1, 0}}},
	{voxel.FaceLeft, [4][3]int{{0, 0, 1}, {0, 0, 0}, {0, 1, 0}, {0, 1, 1}}},
	{voxel.FaceUp, [4][3]int{{1, 1, 1}, {0, 1, 1}, {0, 1, 0}, {1, 1, 0}}},
	{voxel.FaceDown, [4][3]int{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}}},
	{voxel.FaceFront, [4][3]int{{1, 0, 1}, {0, 0, 1}, {0, 1, 1}, {1, 1, 1}}},
	{voxel.FaceBack, [4][3]int{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}},
}

// Builder accumulates quads.
type Builder struct {
	vertices []Vertex
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{vertices: make([]Vertex, 0, growChunk)}
}

// AddQuad appends the four corners of one face.
func (b *Builder) AddQuad(corners [VerticesPerQuad]mgl32.Vec3, normal, color mgl32.Vec3, light float32) {
	if len(b.vertices)+VerticesPerQuad > cap(b.vertices) {
		b.vertices = slices.Grow(b.vertices, growChunk)
	}
	for _, c := range corners {
		b.vertices = append(b.vertices, Vertex{
			Position: c,
			Normal:   normal,
			Color:    color,
			Light:    light,
		})
	}
}

// Mesh returns the accumulated mesh.
func (b *Builder) Mesh() *Mesh {
	return &Mesh{Vertices: b.vertices}
}

// Build walks the grid plus one layer of padding and emits a quad for every
// face where a non-solid cell touches a solid one. Padding cells are air
// without occlusion data, so their faces get light 0.
func Build(g *voxel.Grid) *Mesh {
	sx, sy, sz := g.Size()
	b := NewBuilder()

	for x := -1; x <= sx; x++ {
		for y := -1; y <= sy; y++ {
			for z := -1; z <= sz; z++ {
				air, inside := g.At(x, y, z)
				if inside && air.IsSolid() {
					continue
				}
				for _, side := range quadSides {
					n := side.toward.Normal()
					solid, ok := g.At(x+n[0], y+n[1], z+n[2])
					if !ok || !solid.IsSolid() {
						continue
					}

					outward := side.toward.Opposite()
					on := outward.Normal()

					var light float32
					if inside {
						light = air.Occlusion[outward]
					}

					var corners [VerticesPerQuad]mgl32.Vec3
					for i, c := range side.corners {
						corners[i] = mgl32.Vec3{float32(x + c[0]), float32(y + c[1]), float32(z + c[2])}
					}
					b.AddQuad(corners,
						mgl32.Vec3{float32(on[0]), float32(on[1]), float32(on[2])},
						mgl32.Vec3(solid.Color.Floats()),
						light,
					)
				}
			}
		}
	}
	return b.Mesh()
}
