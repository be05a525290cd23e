package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSubdivisionSphereOnUnitSphere(t *testing.T) {
	m := NewSubdivisionSphere(3)

	// 4 faces, each split into 4 per level
	if got, want := m.TriangleCount(), 4*64; got != want {
		t.Errorf("Expected %d triangles, got %d", want, got)
	}

	for i, p := range m.Positions {
		if math.Abs(float64(p.Len())-1) > 1e-4 {
			t.Fatalf("Vertex %d not on unit sphere: %v (len %f)", i, p, p.Len())
		}
		if !p.ApproxEqual(m.Normals[i]) {
			t.Fatalf("Vertex %d normal %v should equal position %v", i, m.Normals[i], p)
		}
	}
}

func TestSubdivisionSphereSharesMidpoints(t *testing.T) {
	m := NewSubdivisionSphere(1)

	// Tetrahedron: 4 corners + 6 edge midpoints
	if m.VertexCount() != 10 {
		t.Errorf("Expected 10 shared vertices, got %d", m.VertexCount())
	}
}

func TestFlatShadedNormalsPointOutward(t *testing.T) {
	m := NewSubdivisionSphere(2).FlatShaded()

	if m.VertexCount() != len(m.Indices) {
		t.Errorf("Flat shaded mesh should not share vertices: %d vertices, %d indices", m.VertexCount(), len(m.Indices))
	}

	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		n0 := m.Normals[tri[0]]
		if !n0.ApproxEqual(m.Normals[tri[1]]) || !n0.ApproxEqual(m.Normals[tri[2]]) {
			t.Fatalf("Triangle %d has differing vertex normals", i)
		}
		centroid := m.Positions[tri[0]].Add(m.Positions[tri[1]]).Add(m.Positions[tri[2]]).Mul(1.0 / 3)
		if n0.Dot(centroid) <= 0 {
			t.Fatalf("Triangle %d normal %v points inward", i, n0)
		}
	}
}

func bounds(m *Mesh) (min, max mgl32.Vec3) {
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			min[k] = float32(math.Min(float64(min[k]), float64(p[k])))
			max[k] = float32(math.Max(float64(max[k]), float64(p[k])))
		}
	}
	return min, max
}

func TestTorusExtent(t *testing.T) {
	m := NewTorus(15, 15)

	min, max := bounds(m)
	for k, want := range []float32{1, 1, 1.0 / 3} {
		if math.Abs(float64(max[k]-want)) > 0.05 || math.Abs(float64(min[k]+want)) > 0.05 {
			t.Errorf("Axis %d bounds [%f, %f], want about [-%f, %f]", k, min[k], max[k], want, want)
		}
	}

	for i, p := range m.Positions {
		r := mgl32.Vec2{p[0], p[1]}.Len()
		if r < 1.0/3-1e-4 || r > 1+1e-4 {
			t.Fatalf("Vertex %d radius %f outside [1/3, 1]", i, r)
		}
	}
}

func TestTorusTubeIsCircular(t *testing.T) {
	m := NewTorus(15, 15)

	for i, p := range m.Positions {
		// Distance from the tube's centre line, a circle of radius 2/3 in XY.
		r := mgl32.Vec2{p[0], p[1]}.Len()
		tube := mgl32.Vec2{r - 2.0/3, p[2]}.Len()
		if math.Abs(float64(tube)-1.0/3) > 1e-4 {
			t.Fatalf("Vertex %d is %f from the tube centre, want 1/3", i, tube)
		}

		// Normals point straight out of the tube.
		centre := mgl32.Vec3{p[0], p[1], 0}.Normalize().Mul(2.0 / 3)
		out := p.Sub(centre).Normalize()
		if m.Normals[i].Sub(out).Len() > 1e-3 {
			t.Fatalf("Vertex %d normal %v, want %v", i, m.Normals[i], out)
		}
	}
}

func TestInterleavedLayout(t *testing.T) {
	m := NewSubdivisionSphere(0)
	data := m.Interleaved()

	if len(data) != m.VertexCount()*Stride {
		t.Fatalf("Expected %d floats, got %d", m.VertexCount()*Stride, len(data))
	}
	p := m.Positions[1]
	n := m.Normals[1]
	got := data[Stride : 2*Stride]
	if got[0] != p[0] || got[1] != p[1] || got[2] != p[2] {
		t.Errorf("Position not at offset 0: %v", got)
	}
	if got[5] != n[0] || got[6] != n[1] || got[7] != n[2] {
		t.Errorf("Normal not at offset 5: %v", got)
	}
}

func TestCacheReusesMeshes(t *testing.T) {
	cache, err := NewCache(8)
	if err != nil {
		t.Fatal(err)
	}

	a := cache.Get(Key{Kind: Sphere, A: 4})
	b := cache.Get(Key{Kind: Sphere, A: 4})
	if a != b {
		t.Error("Expected the same mesh instance for the same key")
	}

	c := cache.Get(Key{Kind: FlatSphere, A: 4})
	if c == a {
		t.Error("Different kinds should not share a mesh")
	}
	if cache.Len() != 2 {
		t.Errorf("Expected 2 cached meshes, got %d", cache.Len())
	}
}
