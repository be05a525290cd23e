package raster

import (
	"math"

	"SolarSystem/internal/renderer"
)

// nearW is the smallest clip w kept by near plane clipping.
const nearW = 1e-5

// screenTriangle is a clipped triangle in pixel coordinates.
type screenTriangle struct {
	v    [3]renderer.Varyings
	x    [3]float32
	y    [3]float32
	z    [3]float32 // NDC depth
	invW [3]float32
	area float32

	minX, maxX int
	minY, maxY int
}

// clipNear clips a triangle against z >= -w in clip space. Varyings are
// affine in clip space, so interpolating them linearly along edges is exact.
// The result is zero, one or two triangles.
func clipNear(in [3]renderer.Varyings) [][3]renderer.Varyings {
	dist := func(v renderer.Varyings) float32 { return v.Clip.Z() + v.Clip.W() }

	inside := 0
	for _, v := range in {
		if dist(v) >= 0 {
			inside++
		}
	}
	if inside == 3 {
		return [][3]renderer.Varyings{in}
	}
	if inside == 0 {
		return nil
	}

	// Sutherland-Hodgman against one plane.
	var poly []renderer.Varyings
	for i := 0; i < 3; i++ {
		a, b := in[i], in[(i+1)%3]
		da, db := dist(a), dist(b)
		if da >= 0 {
			poly = append(poly, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			poly = append(poly, renderer.Interpolate(&[3]renderer.Varyings{a, b, {}}, [3]float32{1 - t, t, 0}))
		}
	}

	var out [][3]renderer.Varyings
	for i := 1; i+1 < len(poly); i++ {
		tri := [3]renderer.Varyings{poly[0], poly[i], poly[i+1]}
		if tri[0].Clip.W() > nearW && tri[1].Clip.W() > nearW && tri[2].Clip.W() > nearW {
			out = append(out, tri)
		}
	}
	return out
}

// project maps a clipped triangle to the viewport. It reports false for
// degenerate triangles and those entirely off screen.
func project(v [3]renderer.Varyings, width, height int) (screenTriangle, bool) {
	t := screenTriangle{v: v}
	for i := 0; i < 3; i++ {
		c := v[i].Clip
		t.invW[i] = 1 / c.W()
		t.x[i] = (c.X()*t.invW[i] + 1) * 0.5 * float32(width)
		t.y[i] = (1 - c.Y()*t.invW[i]) * 0.5 * float32(height)
		t.z[i] = c.Z() * t.invW[i]
	}

	t.area = edge(t.x[0], t.y[0], t.x[1], t.y[1], t.x[2], t.y[2])
	if t.area == 0 || math.IsNaN(float64(t.area)) {
		return t, false
	}

	t.minX = max(int(math.Floor(float64(min(t.x[0], t.x[1], t.x[2])))), 0)
	t.maxX = min(int(math.Ceil(float64(max(t.x[0], t.x[1], t.x[2])))), width-1)
	t.minY = max(int(math.Floor(float64(min(t.y[0], t.y[1], t.y[2])))), 0)
	t.maxY = min(int(math.Ceil(float64(max(t.y[0], t.y[1], t.y[2])))), height-1)
	if t.minX > t.maxX || t.minY > t.maxY {
		return t, false
	}
	return t, true
}

// edge is twice the signed area of (a, b, p).
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// rasterize fills the rows [y0, y1) of t, sampling at pixel centers. Both
// windings are drawn. Depth uses screen space barycentrics; varyings use
// perspective correct weights.
func rasterize(fb *FrameBuffer, t *screenTriangle, y0, y1 int, pipeline renderer.ShadingPipeline, u *renderer.Uniforms) {
	minY := max(t.minY, y0)
	maxY := min(t.maxY, y1-1)
	invArea := 1 / t.area

	for py := minY; py <= maxY; py++ {
		sy := float32(py) + 0.5
		row := py * fb.Width
		for px := t.minX; px <= t.maxX; px++ {
			sx := float32(px) + 0.5

			b0 := edge(t.x[1], t.y[1], t.x[2], t.y[2], sx, sy) * invArea
			b1 := edge(t.x[2], t.y[2], t.x[0], t.y[0], sx, sy) * invArea
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			z := b0*t.z[0] + b1*t.z[1] + b2*t.z[2]
			if z < -1 || z > 1 {
				continue
			}
			i := row + px
			if renderer.DepthTestEnabled && z >= fb.Depth[i] {
				continue
			}

			p0, p1, p2 := b0*t.invW[0], b1*t.invW[1], b2*t.invW[2]
			norm := 1 / (p0 + p1 + p2)
			v := renderer.Interpolate(&t.v, [3]float32{p0 * norm, p1 * norm, p2 * norm})

			fb.blend(i, pipeline.Fragment(u, v))
			fb.Depth[i] = z
		}
	}
}
