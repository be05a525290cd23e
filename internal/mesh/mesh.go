package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Stride is the number of floats per vertex in Interleaved: position(3),
// texture coordinate(2), normal(3).
const Stride = 8

// Mesh is indexed triangle geometry in object space.
type Mesh struct {
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Indices   []uint32
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
}

// Interleaved packs the vertex attributes in the layout the GPU backend
// uploads (see Stride).
func (m *Mesh) Interleaved() []float32 {
	data := make([]float32, 0, len(m.Positions)*Stride)
	for i, p := range m.Positions {
		var uv mgl32.Vec2
		if i < len(m.TexCoords) {
			uv = m.TexCoords[i]
		}
		var n mgl32.Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		data = append(data, p[0], p[1], p[2], uv[0], uv[1], n[0], n[1], n[2])
	}
	return data
}

// FlatShaded returns a copy in which no vertex is shared between triangles
// and every vertex normal is its face normal, pointing away from the origin.
// Lighting then looks faceted regardless of the shading pipeline.
func (m *Mesh) FlatShaded() *Mesh {
	out := &Mesh{
		Name:      m.Name + "_flat",
		Positions: make([]mgl32.Vec3, 0, len(m.Indices)),
		Normals:   make([]mgl32.Vec3, 0, len(m.Indices)),
		TexCoords: make([]mgl32.Vec2, 0, len(m.Indices)),
		Indices:   make([]uint32, 0, len(m.Indices)),
	}
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		p0, p1, p2 := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]

		n := p1.Sub(p0).Cross(p2.Sub(p0))
		if n.Len() > 0 {
			n = n.Normalize()
		}
		// Nudging the first corner along n must move it outward
		if p0.Add(n.Mul(0.1)).Len() < p0.Len() {
			n = n.Mul(-1)
		}

		for _, idx := range tri {
			out.Indices = append(out.Indices, uint32(len(out.Positions)))
			out.Positions = append(out.Positions, m.Positions[idx])
			out.Normals = append(out.Normals, n)
			if int(idx) < len(m.TexCoords) {
				out.TexCoords = append(out.TexCoords, m.TexCoords[idx])
			} else {
				out.TexCoords = append(out.TexCoords, mgl32.Vec2{})
			}
		}
	}
	return out
}
