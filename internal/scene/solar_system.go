package scene

import (
	"fmt"

	"SolarSystem/internal/config"
	"SolarSystem/internal/logger"
	"SolarSystem/internal/mesh"
	"SolarSystem/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// InitialCamera is the overview view matrix.
var InitialCamera = renderer.LookAt(mgl32.Vec3{0, 10, 20}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

// SolarSystem is the animated scene: a pulsing sun, four planets, a ring
// and a moon.
type SolarSystem struct {
	Shapes    Shapes
	Materials Materials
	Camera    *CameraController
	Lens      renderer.Lens

	alternatePeriod float64
	freeFly         *renderer.FreeFlyControls
	moveSpeed       float32
	lookSpeed       float32
	started         bool
	last            FrameState
}

// New builds the scene from cfg, tessellating through cache.
func New(cfg config.Config, cache *mesh.Cache) *SolarSystem {
	s := &SolarSystem{
		Shapes:    NewShapes(cache),
		Materials: NewMaterials(cfg.Scene.RingFrequency),
		Camera:    NewCameraController(InitialCamera, cfg.Camera.BlendFactor, cfg.Camera.FollowDistance),
		Lens:      renderer.DefaultLens(),
		moveSpeed: cfg.Camera.MoveSpeed,
		lookSpeed: cfg.Camera.LookSpeed,

		alternatePeriod: cfg.Scene.AlternatePeriod,
	}
	return s
}

// Apply takes the live tunable fields of a reloaded configuration.
func (s *SolarSystem) Apply(cfg config.Config) {
	s.Camera.BlendFactor = cfg.Camera.BlendFactor
	s.Camera.FollowDistance = cfg.Camera.FollowDistance
	s.alternatePeriod = cfg.Scene.AlternatePeriod
	if s.freeFly != nil {
		s.freeFly.Speed = cfg.Camera.MoveSpeed
		s.freeFly.Sensitivity = cfg.Camera.LookSpeed
	}
	logger.Log.Info("Scene settings updated",
		zap.Float32("blend_factor", cfg.Camera.BlendFactor),
		zap.Float64("alternate_period", cfg.Scene.AlternatePeriod))
}

// Controls returns the free-fly controls, or nil before the first frame.
func (s *SolarSystem) Controls() *renderer.FreeFlyControls {
	return s.freeFly
}

// LastFrame is the state computed by the most recent Display.
func (s *SolarSystem) LastFrame() FrameState {
	return s.last
}

// Display draws one frame and then moves the camera.
func (s *SolarSystem) Display(backend renderer.GraphicsBackend, state *renderer.ProgramState) {
	if !s.started {
		s.freeFly = renderer.NewFreeFlyControls(s.moveSpeed, s.lookSpeed)
		state.SetCamera(s.Camera.Initial)
		s.started = true
		logger.Log.Debug("Solar system started")
	}

	state.ProjectionTransform = s.Lens.Projection(state.Aspect())
	t, _ := state.Seconds()
	f := ComputeFrame(t, s.alternatePeriod)
	state.Lights = []renderer.Light{f.Light}

	backend.BeginFrame(state)
	s.Shapes.Sun.Draw(backend, state, f.Sun, s.Materials.Sun.Override(renderer.WithColor(f.SunColor)))
	s.Shapes.Planet1.Draw(backend, state, f.Body(Planet1), s.Materials.Planet1)
	s.Shapes.Planet2.Draw(backend, state, f.Body(Planet2), s.Materials.Planet2(f.Planet2Pipeline))
	s.Shapes.Ring.Draw(backend, state, f.Ring, s.Materials.Ring)
	s.Shapes.Planet3.Draw(backend, state, f.Body(Planet3), s.Materials.Planet3)
	s.Shapes.Planet4.Draw(backend, state, f.Body(Planet4), s.Materials.Planet4)
	s.Shapes.Moon.Draw(backend, state, f.Body(Moon), s.Materials.Planet4)
	backend.EndFrame()

	s.Camera.Update(state, &f)
	s.last = f
}

// Button is one entry of the control panel.
type Button struct {
	Label string
	// Key is pressed together with Control.
	Key    rune
	Target CameraTarget
}

func (b Button) String() string {
	return fmt.Sprintf("%s (Ctrl+%c)", b.Label, b.Key)
}

// ControlPanel lists the camera buttons in display order.
func (s *SolarSystem) ControlPanel() []Button {
	return []Button{
		{Label: "View solar system", Key: '0', Target: InitialView()},
		{Label: "Attach to planet 1", Key: '1', Target: AttachTo(Planet1)},
		{Label: "Attach to planet 2", Key: '2', Target: AttachTo(Planet2)},
		{Label: "Attach to planet 3", Key: '3', Target: AttachTo(Planet3)},
		{Label: "Attach to planet 4", Key: '4', Target: AttachTo(Planet4)},
		{Label: "Attach to moon", Key: 'm', Target: AttachTo(Moon)},
	}
}

// Press triggers the button bound to Ctrl+key. It reports whether one exists.
func (s *SolarSystem) Press(key rune) bool {
	for _, b := range s.ControlPanel() {
		if b.Key == key {
			s.Camera.SetTarget(b.Target)
			logger.Log.Info("Camera target changed", zap.Stringer("target", b.Target))
			return true
		}
	}
	return false
}
