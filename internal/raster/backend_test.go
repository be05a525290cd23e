package raster

import (
	"bytes"
	"math"
	"testing"

	"SolarSystem/internal/mesh"
	"SolarSystem/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const size = 64

func newTestState() *renderer.ProgramState {
	state := renderer.NewProgramState(size, size)
	state.ProjectionTransform = renderer.DefaultLens().Projection(state.Aspect())
	state.SetCamera(renderer.LookAt(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	return state
}

// quad is a square in the XY plane facing +Z.
func quad(half, z float32) *mesh.Mesh {
	return &mesh.Mesh{
		Name: "quad",
		Positions: []mgl32.Vec3{
			{-half, -half, z}, {half, -half, z}, {half, half, z}, {-half, half, z},
		},
		Normals: []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func draw(b *Backend, state *renderer.ProgramState, m *mesh.Mesh, material renderer.Material) {
	renderer.NewShape(m).Draw(b, state, mgl32.Ident4(), material)
}

func TestEmptyFrameIsClearColor(t *testing.T) {
	b := NewBackend(size, size)
	b.BeginFrame(newTestState())
	b.EndFrame()

	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, b.FrameBuffer().At(10, 10))
	assert.Equal(t, 0, b.Stats.Draws)
}

func TestPipelinesAgreeOnUniformLighting(t *testing.T) {
	state := newTestState()
	state.Lights = []renderer.Light{renderer.NewLight(mgl32.Vec4{0, 0, 1, 0}, renderer.Color(1, 1, 1, 1), 0)}
	material := renderer.NewMaterial(renderer.Phong, renderer.WithColor(renderer.Color(0.5, 0.5, 0.5, 1)), renderer.WithSpecularity(0))

	render := func(p renderer.PipelineKind) []uint8 {
		b := NewBackend(size, size)
		b.BeginFrame(state)
		draw(b, state, quad(10, 0), material.WithPipeline(p))
		b.EndFrame()
		return b.FrameBuffer().Color
	}

	phong := render(renderer.Phong)
	gouraud := render(renderer.Gouraud)
	assert.Equal(t, phong, gouraud)
	assert.Equal(t, uint8(128), phong[(32*size+32)*4])
}

func TestGouraudMissesCenterHighlight(t *testing.T) {
	state := newTestState()
	state.Lights = []renderer.Light{renderer.NewLight(mgl32.Vec4{0, 0, 1, 1}, renderer.Color(1, 1, 1, 1), 1e6)}
	material := renderer.NewMaterial(renderer.Phong, renderer.WithColor(renderer.Color(0.5, 0.5, 0.5, 1)))

	center := func(p renderer.PipelineKind) mgl32.Vec4 {
		b := NewBackend(size, size)
		b.BeginFrame(state)
		draw(b, state, quad(10, 0), material.WithPipeline(p))
		return b.FrameBuffer().At(size/2, size/2)
	}

	phong := center(renderer.Phong)
	gouraud := center(renderer.Gouraud)
	assert.InDelta(t, 1.0, phong.X(), 1e-6)
	assert.Less(t, gouraud.X(), float32(0.1))
}

func TestDepthTestKeepsNearest(t *testing.T) {
	state := newTestState()
	red := renderer.NewMaterial(renderer.Phong, renderer.WithColor(renderer.Color(1, 0, 0, 1)), renderer.WithAmbient(1), renderer.WithDiffusivity(0), renderer.WithSpecularity(0))
	green := red.Override(renderer.WithColor(renderer.Color(0, 1, 0, 1)))

	for _, nearFirst := range []bool{true, false} {
		b := NewBackend(size, size)
		b.BeginFrame(state)
		if nearFirst {
			draw(b, state, quad(10, 1), green)
			draw(b, state, quad(10, 0), red)
		} else {
			draw(b, state, quad(10, 0), red)
			draw(b, state, quad(10, 1), green)
		}
		assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, b.FrameBuffer().At(size/2, size/2), "nearFirst=%v", nearFirst)
		assert.Equal(t, 2, b.Stats.Draws)
	}
}

func TestNearPlaneClipping(t *testing.T) {
	state := newTestState()
	white := renderer.NewMaterial(renderer.Phong, renderer.WithColor(renderer.Color(1, 1, 1, 1)), renderer.WithAmbient(1), renderer.WithDiffusivity(0), renderer.WithSpecularity(0))

	// A floor under the camera that extends behind it.
	floor := &mesh.Mesh{
		Positions: []mgl32.Vec3{{-50, -1, 50}, {50, -1, 50}, {0, -1, -50}},
		Normals:   []mgl32.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}

	b := NewBackend(size, size)
	b.BeginFrame(state)
	require.NotPanics(t, func() { draw(b, state, floor, white) })

	assert.GreaterOrEqual(t, b.Stats.Triangles, 1)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, b.FrameBuffer().At(size/2, size-4))
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, b.FrameBuffer().At(size/2, 4))
}

func TestRingFollowsDistanceFromCenter(t *testing.T) {
	state := newTestState()
	b := NewBackend(size, size)
	b.BeginFrame(state)
	draw(b, state, quad(3, 0), renderer.NewMaterial(renderer.RingPattern))

	// The pixel center of (32, 32) unprojects onto the z=0 plane at
	// (h, -h, 0) with h = 5*tan(pi/8) / 64.
	h := 5 * math.Tan(math.Pi/8) / size
	d := float32(math.Sqrt(2) * h)
	band := renderer.RingBand(d, renderer.DefaultRingFrequency)
	a := band.W()

	got := b.FrameBuffer().At(size/2, size/2)
	assert.InDelta(t, band.X()*a, got.X(), 0.01)
	assert.InDelta(t, band.Y()*a, got.Y(), 0.01)
	assert.Less(t, b.FrameBuffer().DepthAt(size/2, size/2), float32(1))
}

func TestBandsMatchSingleWorker(t *testing.T) {
	m, err := mesh.NewCache(4)
	require.NoError(t, err)
	sphere := m.Get(mesh.Key{Kind: mesh.Sphere, A: 3})

	state := newTestState()
	state.Lights = []renderer.Light{renderer.NewLight(mgl32.Vec4{3, 3, 3, 1}, renderer.Color(1, 1, 1, 1), 100)}
	material := renderer.NewMaterial(renderer.Phong, renderer.WithColor(renderer.MustHexColor("#70543e")))

	render := func(workers int) []uint8 {
		b := NewBackend(size, size)
		b.Workers = workers
		b.BeginFrame(state)
		draw(b, state, sphere, material)
		return append([]uint8(nil), b.FrameBuffer().Color...)
	}

	assert.True(t, bytes.Equal(render(1), render(7)))
}

func TestBeginFrameResizes(t *testing.T) {
	b := NewBackend(8, 8)
	state := newTestState()
	b.BeginFrame(state)

	assert.Equal(t, size, b.FrameBuffer().Width)
	assert.Len(t, b.FrameBuffer().Depth, size*size)
}
