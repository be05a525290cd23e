package raster

import (
	"runtime"

	"SolarSystem/internal/mesh"
	"SolarSystem/internal/renderer"

	"golang.org/x/sync/errgroup"
)

var _ renderer.GraphicsBackend = (*Backend)(nil)

// Stats counts work done since the last BeginFrame.
type Stats struct {
	Draws     int
	Triangles int // after clipping
}

// Backend is a CPU implementation of renderer.GraphicsBackend. It runs each
// pipeline's vertex and fragment stage in Go, so it renders exactly what the
// shading code computes and needs no GPU or window.
type Backend struct {
	fb       *FrameBuffer
	pipeline renderer.ShadingPipeline
	uniforms renderer.Uniforms

	// Workers bounds the number of row bands filled in parallel.
	Workers int
	Stats   Stats
}

func NewBackend(width, height int) *Backend {
	return &Backend{
		fb:      NewFrameBuffer(width, height),
		Workers: runtime.GOMAXPROCS(0),
	}
}

func (b *Backend) FrameBuffer() *FrameBuffer {
	return b.fb
}

func (b *Backend) BeginFrame(state *renderer.ProgramState) {
	if state.Width != b.fb.Width || state.Height != b.fb.Height {
		b.fb = NewFrameBuffer(state.Width, state.Height)
	}
	b.fb.Clear(renderer.ClearColor)
	b.Stats = Stats{}
}

func (b *Backend) Bind(pipeline renderer.ShadingPipeline, u renderer.Uniforms) {
	b.pipeline = pipeline
	b.uniforms = u
}

// DrawMesh shades every vertex, clips against the near plane and fills the
// surviving triangles band by band.
func (b *Backend) DrawMesh(m *mesh.Mesh) {
	if b.pipeline == nil || len(m.Indices) == 0 {
		return
	}
	b.Stats.Draws++

	u := b.uniforms
	varyings := make([]renderer.Varyings, m.VertexCount())
	for i := range varyings {
		varyings[i] = b.pipeline.Vertex(&u, renderer.VertexAt(m, uint32(i)))
	}

	var tris []screenTriangle
	for i := 0; i < m.TriangleCount(); i++ {
		idx := m.Triangle(i)
		in := [3]renderer.Varyings{varyings[idx[0]], varyings[idx[1]], varyings[idx[2]]}
		for _, clipped := range clipNear(in) {
			if t, ok := project(clipped, b.fb.Width, b.fb.Height); ok {
				tris = append(tris, t)
			}
		}
	}
	b.Stats.Triangles += len(tris)
	if len(tris) == 0 {
		return
	}

	b.fill(tris, &u)
}

func (b *Backend) EndFrame() {}

// fill splits the frame into horizontal bands. Bands never share pixels, so
// they run concurrently while each keeps the submission order of triangles.
func (b *Backend) fill(tris []screenTriangle, u *renderer.Uniforms) {
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	bandHeight := (b.fb.Height + workers - 1) / workers
	if bandHeight < 1 {
		bandHeight = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < b.fb.Height; y0 += bandHeight {
		y1 := min(y0+bandHeight, b.fb.Height)
		g.Go(func() error {
			for i := range tris {
				rasterize(b.fb, &tris[i], y0, y1, b.pipeline, u)
			}
			return nil
		})
	}
	g.Wait()
}
