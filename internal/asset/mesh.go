package asset

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	stdmath "math"

	"github.com/Faultbox/texcomp/pkg/math"
)

// Mesh is an indexed triangle list. It is immutable after NewMesh, so its
// identity can key GPU resources.
type Mesh struct {
	name      string
	positions [][3]float32
	indices   []uint32
	identity  uint64
	min, max  math.Vec3
}

// NewMesh validates the index list and computes the mesh identity.
func NewMesh(name string, positions [][3]float32, indices []uint32) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh %s: index count %d is not a multiple of 3", name, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("mesh %s: index %d at %d out of range (%d vertices)", name, idx, i, len(positions))
		}
	}
	m := &Mesh{name: name, positions: positions, indices: indices}
	m.identity = contentHash(positions, indices)
	m.min, m.max = bounds(positions)
	return m, nil
}

// contentHash is FNV-64a over the vertex and index counts and data.
func contentHash(positions [][3]float32, indices []uint32) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	put := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	put(uint32(len(positions)))
	put(uint32(len(indices)))
	for _, p := range positions {
		for _, c := range p {
			put(stdmath.Float32bits(c))
		}
	}
	for _, i := range indices {
		put(i)
	}
	return h.Sum64()
}

func bounds(positions [][3]float32) (min, max math.Vec3) {
	if len(positions) == 0 {
		return
	}
	min = math.Vec3{X: positions[0][0], Y: positions[0][1], Z: positions[0][2]}
	max = min
	for _, p := range positions[1:] {
		v := math.Vec3{X: p[0], Y: p[1], Z: p[2]}
		min, max = min.Min(v), max.Max(v)
	}
	return min, max
}

func (m *Mesh) Name() string { return m.name }
func (m *Mesh) Kind() Kind   { return KindMesh }

// Positions returns the vertex positions. Callers must not modify them.
func (m *Mesh) Positions() [][3]float32 { return m.positions }

// Indices returns the triangle indices. Callers must not modify them.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Identity is a content hash of the geometry.
func (m *Mesh) Identity() uint64 { return m.identity }

// Bounds returns the axis-aligned bounding box.
func (m *Mesh) Bounds() (min, max math.Vec3) { return m.min, m.max }

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int { return len(m.positions) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.indices) / 3 }
