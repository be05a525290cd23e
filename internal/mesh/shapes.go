package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NewSubdivisionSphere builds a unit sphere by recursively splitting the
// faces of a tetrahedron. Midpoints are shared between neighbouring faces,
// so normals (equal to positions) interpolate smoothly.
func NewSubdivisionSphere(subdivisions int) *Mesh {
	m := &Mesh{
		Name: fmt.Sprintf("sphere_%d", subdivisions),
		Positions: []mgl32.Vec3{
			{0, 0, -1},
			{0, 0.9428, 0.3333},
			{-0.8165, -0.4714, 0.3333},
			{0.8165, -0.4714, 0.3333},
		},
	}
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Normalize()
	}

	midpoints := make(map[[2]uint32]uint32)
	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{a, b}
		if a > b {
			key = [2]uint32{b, a}
		}
		if idx, ok := midpoints[key]; ok {
			return idx
		}
		p := m.Positions[a].Add(m.Positions[b]).Normalize()
		idx := uint32(len(m.Positions))
		m.Positions = append(m.Positions, p)
		midpoints[key] = idx
		return idx
	}

	var subdivide func(a, b, c uint32, count int)
	subdivide = func(a, b, c uint32, count int) {
		if count <= 0 {
			m.Indices = append(m.Indices, a, b, c)
			return
		}
		ab, ac, bc := midpoint(a, b), midpoint(a, c), midpoint(b, c)
		subdivide(a, ab, ac, count-1)
		subdivide(ab, b, bc, count-1)
		subdivide(ac, bc, c, count-1)
		subdivide(ab, bc, ac, count-1)
	}
	subdivide(0, 1, 2, subdivisions)
	subdivide(3, 2, 1, subdivisions)
	subdivide(1, 0, 3, subdivisions)
	subdivide(0, 2, 3, subdivisions)

	m.Normals = make([]mgl32.Vec3, len(m.Positions))
	m.TexCoords = make([]mgl32.Vec2, len(m.Positions))
	for i, p := range m.Positions {
		m.Normals[i] = p
		m.TexCoords[i] = mgl32.Vec2{
			0.5 + float32(math.Atan2(float64(p[2]), float64(p[0])))/(2*math.Pi),
			0.5 - float32(math.Asin(float64(mgl32.Clamp(p[1], -1, 1))))/math.Pi,
		}
	}
	return m
}

// NewTorus builds a torus lying in the XY plane, revolved around Z. The tube
// is a circle of radius 1/3 centred 2/3 from the axis, so the outer rim has
// radius 1. rows samples the tube, columns the revolution.
func NewTorus(rows, columns int) *Mesh {
	profile := make([]mgl32.Vec2, rows)
	profileNormals := make([]mgl32.Vec2, rows)
	for i := 0; i < rows; i++ {
		a := float64(i) / float64(rows-1) * 2 * math.Pi
		cos, sin := float32(math.Cos(a)), float32(math.Sin(a))
		// (distance from axis, height)
		profile[i] = mgl32.Vec2{2.0/3 + cos/3, sin / 3}
		profileNormals[i] = mgl32.Vec2{cos, sin}
	}
	m := revolve(profile, profileNormals, columns)
	m.Name = fmt.Sprintf("torus_%d_%d", rows, columns)
	return m
}

// revolve sweeps a profile in the (radius, z) plane around the Z axis.
func revolve(profile, profileNormals []mgl32.Vec2, columns int) *Mesh {
	rows := len(profile)
	m := &Mesh{}
	for j := 0; j < columns; j++ {
		phi := float64(j) / float64(columns-1) * 2 * math.Pi
		cos, sin := float32(math.Cos(phi)), float32(math.Sin(phi))
		for i := 0; i < rows; i++ {
			r, z := profile[i][0], profile[i][1]
			m.Positions = append(m.Positions, mgl32.Vec3{r * cos, r * sin, z})
			nr, nz := profileNormals[i][0], profileNormals[i][1]
			m.Normals = append(m.Normals, mgl32.Vec3{nr * cos, nr * sin, nz})
			m.TexCoords = append(m.TexCoords, mgl32.Vec2{
				float32(j) / float32(columns-1),
				float32(i) / float32(rows-1),
			})
		}
	}
	for j := 0; j < columns-1; j++ {
		for i := 0; i < rows-1; i++ {
			a := uint32(j*rows + i)
			b := uint32((j+1)*rows + i)
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}
