package scene

import (
	"math"
	"testing"
	"time"

	"SolarSystem/internal/config"
	"SolarSystem/internal/mesh"
	"SolarSystem/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawCall struct {
	pipeline renderer.PipelineKind
	uniforms renderer.Uniforms
	mesh     *mesh.Mesh
}

// recorder is a GraphicsBackend that remembers draw calls.
type recorder struct {
	frames int
	bound  drawCall
	draws  []drawCall
}

func (r *recorder) BeginFrame(*renderer.ProgramState) {
	r.frames++
	r.draws = r.draws[:0]
}

func (r *recorder) Bind(p renderer.ShadingPipeline, u renderer.Uniforms) {
	r.bound = drawCall{pipeline: p.Kind(), uniforms: u}
}

func (r *recorder) DrawMesh(m *mesh.Mesh) {
	call := r.bound
	call.mesh = m
	r.draws = append(r.draws, call)
}

func (r *recorder) EndFrame() {}

func newTestScene(t *testing.T) (*SolarSystem, *mesh.Cache) {
	t.Helper()
	cache, err := mesh.NewCache(16)
	require.NoError(t, err)
	return New(config.Default(), cache), cache
}

func at(seconds float64) *renderer.ProgramState {
	state := renderer.NewProgramState(1080, 600)
	state.Advance(time.Duration(seconds * float64(time.Second)))
	return state
}

func TestFrameAtTimeZero(t *testing.T) {
	f := ComputeFrame(0, 2)

	assert.Equal(t, float32(2), f.SunRadius)
	assert.Equal(t, mgl32.Vec4{0.5, 0, 0.5, 1}, f.SunColor)
	assert.InDelta(t, 0.01, f.Light.Attenuation, 1e-6)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, f.Light.Position)

	want := map[BodyID]mgl32.Vec3{
		Planet1: {5, 0, 0},
		Planet2: {8, 0, 0},
		Planet3: {11, 0, 0},
		Planet4: {14, 0, 0},
		Moon:    {16, 0, 0},
	}
	for id, pos := range want {
		assert.True(t, f.Position(id).ApproxEqualThreshold(pos, 1e-5), "%s at %v, want %v", id, f.Position(id), pos)
	}
}

func TestSunPulse(t *testing.T) {
	// quarter period: largest, red
	f := ComputeFrame(1.25, 2)
	assert.InDelta(t, 3, f.SunRadius, 1e-5)
	assert.True(t, f.SunColor.ApproxEqualThreshold(mgl32.Vec4{1, 0, 0, 1}, 1e-5))

	// three quarters: smallest, blue
	f = ComputeFrame(3.75, 2)
	assert.InDelta(t, 1, f.SunRadius, 1e-5)
	assert.True(t, f.SunColor.ApproxEqualThreshold(mgl32.Vec4{0, 0, 1, 1}, 1e-5))
}

func TestPlanetOrbits(t *testing.T) {
	tm := 2.0
	f := ComputeFrame(tm, 2)

	for i, id := range []BodyID{Planet1, Planet2, Planet3, Planet4} {
		p := f.Position(id)
		assert.InDelta(t, orbitRadii[i], p.Len(), 1e-4, "%s orbit radius", id)
		assert.InDelta(t, 0, p.Y(), 1e-5)

		angle := tm / float64(i+1)
		want := mgl32.Vec3{orbitRadii[i] * float32(math.Cos(angle)), 0, -orbitRadii[i] * float32(math.Sin(angle))}
		assert.True(t, p.ApproxEqualThreshold(want, 1e-4), "%s at %v, want %v", id, p, want)
	}

	moonOffset := f.Position(Moon).Sub(f.Position(Planet4))
	assert.InDelta(t, 2, moonOffset.Len(), 1e-4)
}

func TestRingFollowsPlanet3(t *testing.T) {
	f := ComputeFrame(0.7, 2)

	assert.True(t, f.Ring.Col(3).Vec3().ApproxEqualThreshold(f.Position(Planet3), 1e-5))
	// scale survives the rotations
	assert.InDelta(t, 3.8, f.Ring.Col(0).Vec3().Len(), 1e-4)
	assert.InDelta(t, 3.8, f.Ring.Col(1).Vec3().Len(), 1e-4)
	assert.InDelta(t, 0.2, f.Ring.Col(2).Vec3().Len(), 1e-4)
}

func TestPlanet2Alternates(t *testing.T) {
	cases := map[float64]renderer.PipelineKind{
		0:    renderer.Phong,
		0.99: renderer.Phong,
		1:    renderer.Gouraud,
		1.5:  renderer.Gouraud,
		2:    renderer.Phong,
		3.2:  renderer.Gouraud,
	}
	for tm, want := range cases {
		assert.Equal(t, want, ComputeFrame(tm, 2).Planet2Pipeline, "t=%v", tm)
	}

	assert.Equal(t, renderer.Gouraud, ComputeFrame(3, 4).Planet2Pipeline)
}

func TestDisplayDrawOrder(t *testing.T) {
	s, cache := newTestScene(t)
	rec := &recorder{}
	s.Display(rec, at(1.5))

	require.Len(t, rec.draws, 7)
	wantMeshes := []mesh.Key{
		ShapeKeys.Sun, ShapeKeys.Planet1, ShapeKeys.Planet2, ShapeKeys.Ring,
		ShapeKeys.Planet3, ShapeKeys.Planet4, ShapeKeys.Moon,
	}
	for i, key := range wantMeshes {
		assert.Same(t, cache.Get(key), rec.draws[i].mesh, "draw %d", i)
	}

	f := s.LastFrame()
	wantModels := []mgl32.Mat4{f.Sun, f.Body(Planet1), f.Body(Planet2), f.Ring, f.Body(Planet3), f.Body(Planet4), f.Body(Moon)}
	for i, m := range wantModels {
		assert.Equal(t, m, rec.draws[i].uniforms.Model, "draw %d", i)
	}

	assert.Equal(t, renderer.Gouraud, rec.draws[2].pipeline)
	assert.Equal(t, renderer.RingPattern, rec.draws[3].pipeline)
	assert.Equal(t, f.SunColor, rec.draws[0].uniforms.Material.Color)
	assert.Equal(t, s.Materials.Planet4, rec.draws[6].uniforms.Material)
}

func TestDisplaySetsLightAndProjection(t *testing.T) {
	s, _ := newTestScene(t)
	state := at(0)
	s.Display(&recorder{}, state)

	require.Len(t, state.Lights, 1)
	assert.Equal(t, float32(0.01), state.Lights[0].Attenuation)
	assert.Equal(t, renderer.DefaultLens().Projection(1080.0/600.0), state.ProjectionTransform)
}

func TestFirstFrameUsesInitialCamera(t *testing.T) {
	s, _ := newTestScene(t)
	assert.Nil(t, s.Controls())

	state := at(0)
	s.Display(&recorder{}, state)

	assert.Equal(t, InitialCamera, state.CameraInverse)
	assert.NotNil(t, s.Controls())
	assert.True(t, state.CameraCenter().ApproxEqualThreshold(mgl32.Vec3{0, 10, 20}, 1e-4))
}

func TestCameraStepBlendsTowardsBody(t *testing.T) {
	f := ComputeFrame(0.4, 2)
	state := at(0.4)
	state.SetCamera(InitialCamera)
	previous := state.CameraTransform

	c := NewCameraController(InitialCamera, 0.1, 5)
	c.SetTarget(AttachTo(Planet3))
	c.Update(state, &f)

	desired := f.Body(Planet3).Mul4(mgl32.Translate3D(0, 0, 5))
	for i := range previous {
		want := 0.9*previous[i] + 0.1*desired[i]
		assert.InDelta(t, want, state.CameraTransform[i], 1e-4, "entry %d", i)
	}
	assert.True(t, state.CameraInverse.Mul4(state.CameraTransform).ApproxEqualThreshold(mgl32.Ident4(), 1e-4))
}

func TestCameraApproachesStillTarget(t *testing.T) {
	f := ComputeFrame(0, 2)
	state := at(0)
	state.SetCamera(InitialCamera)

	c := NewCameraController(InitialCamera, 0.1, 5)
	c.SetTarget(AttachTo(Planet1))
	goal := c.Desired(f.Body(Planet1)).Col(3).Vec3()

	last := state.CameraCenter().Sub(goal).Len()
	for i := 0; i < 60; i++ {
		c.Update(state, &f)
		d := state.CameraCenter().Sub(goal).Len()
		require.Less(t, d, last, "step %d", i)
		require.Greater(t, d, float32(0), "step %d", i)
		last = d
	}
	assert.Less(t, last, float32(0.1))
}

func TestCameraTargets(t *testing.T) {
	state := at(0)
	moved := mgl32.Translate3D(3, 0, -7)
	state.SetCamera(moved)
	f := ComputeFrame(0, 2)

	c := NewCameraController(InitialCamera, 0.1, 5)
	c.Update(state, &f)
	assert.Equal(t, moved, state.CameraInverse, "no target leaves the camera alone")

	c.SetTarget(InitialView())
	c.Update(state, &f)
	assert.Equal(t, InitialCamera, state.CameraInverse)
}

func TestAttachToPlanet1OverFrames(t *testing.T) {
	s, _ := newTestScene(t)
	require.True(t, s.Press('1'))
	assert.Equal(t, AttachTo(Planet1), s.Camera.Target())

	state := renderer.NewProgramState(1080, 600)
	rec := &recorder{}
	var distances []float32
	for frame := 0; frame < 120; frame++ {
		state.Advance(time.Duration(frame) * time.Second / 60)
		s.Display(rec, state)
		f := s.LastFrame()
		goal := s.Camera.Desired(f.Body(Planet1)).Col(3).Vec3()
		distances = append(distances, state.CameraCenter().Sub(goal).Len())
	}

	for i := 1; i < len(distances); i++ {
		require.Less(t, distances[i], distances[i-1], "frame %d", i)
		require.Greater(t, distances[i], float32(0), "frame %d", i)
	}
	assert.Less(t, distances[len(distances)-1], distances[0]/4)
	assert.Equal(t, 120, rec.frames)
}

func TestControlPanel(t *testing.T) {
	s, _ := newTestScene(t)
	buttons := s.ControlPanel()
	require.Len(t, buttons, 6)
	assert.Equal(t, "View solar system (Ctrl+0)", buttons[0].String())
	assert.Equal(t, AttachTo(Moon), buttons[5].Target)

	assert.True(t, s.Press('m'))
	assert.Equal(t, AttachTo(Moon), s.Camera.Target())
	assert.False(t, s.Press('x'))
	assert.Equal(t, AttachTo(Moon), s.Camera.Target())
}

func TestParseTarget(t *testing.T) {
	for _, target := range []CameraTarget{NoTarget(), InitialView(), AttachTo(Planet1), AttachTo(Planet4), AttachTo(Moon)} {
		got, err := ParseTarget(target.String())
		require.NoError(t, err)
		assert.Equal(t, target, got)
	}

	got, err := ParseTarget(" Planet3 ")
	require.NoError(t, err)
	assert.Equal(t, AttachTo(Planet3), got)

	_, err = ParseTarget("pluto")
	assert.Error(t, err)
}

func TestApplyLiveSettings(t *testing.T) {
	s, _ := newTestScene(t)
	cfg := config.Default()
	cfg.Camera.BlendFactor = 0.5
	cfg.Scene.AlternatePeriod = 4

	s.Apply(cfg)
	assert.Equal(t, float32(0.5), s.Camera.BlendFactor)

	s.Display(&recorder{}, at(3))
	assert.Equal(t, renderer.Gouraud, s.LastFrame().Planet2Pipeline)
	s.Display(&recorder{}, at(1.5))
	assert.Equal(t, renderer.Phong, s.LastFrame().Planet2Pipeline)
}
