package behaviour

import (
	"time"

	"SolarSystem/internal/config"
	"SolarSystem/internal/control"
	"SolarSystem/internal/logger"
	"SolarSystem/internal/renderer"
	"SolarSystem/internal/scene"

	"go.uber.org/zap"
)

// CommandDrain applies control panel commands queued since the last frame.
type CommandDrain struct {
	Commands <-chan control.Command
	Scene    *scene.SolarSystem
}

func (d *CommandDrain) Start(*renderer.ProgramState) {}

func (d *CommandDrain) Update(*renderer.ProgramState) {
	for {
		select {
		case cmd, ok := <-d.Commands:
			if !ok {
				d.Commands = nil
				return
			}
			d.apply(cmd)
		default:
			return
		}
	}
}

func (d *CommandDrain) apply(cmd control.Command) {
	switch cmd.Command {
	case "attach":
		target, err := scene.ParseTarget(cmd.Target)
		if err != nil {
			logger.Log.Warn("Ignoring control command", zap.Stringer("client", cmd.Client), zap.Error(err))
			return
		}
		d.Scene.Camera.SetTarget(target)
		logger.Log.Info("Camera target changed", zap.Stringer("target", target), zap.Stringer("client", cmd.Client))
	case "press":
		runes := []rune(cmd.Key)
		if len(runes) != 1 || !d.Scene.Press(runes[0]) {
			logger.Log.Warn("Ignoring control command", zap.String("key", cmd.Key))
		}
	default:
		logger.Log.Warn("Unknown control command", zap.String("command", cmd.Command))
	}
}

// ConfigReload applies the newest configuration published by config.Watch.
type ConfigReload struct {
	Updates <-chan config.Config
	Scene   *scene.SolarSystem
}

func (r *ConfigReload) Start(*renderer.ProgramState) {}

func (r *ConfigReload) Update(*renderer.ProgramState) {
	select {
	case cfg, ok := <-r.Updates:
		if !ok {
			r.Updates = nil
			return
		}
		r.Scene.Apply(cfg)
	default:
	}
}

// FreeFly feeds user input to the scene's free-fly controls once they exist.
type FreeFly struct {
	Input func() renderer.FlyInput
	Scene *scene.SolarSystem
}

func (f *FreeFly) Start(*renderer.ProgramState) {}

func (f *FreeFly) Update(state *renderer.ProgramState) {
	controls := f.Scene.Controls()
	if controls == nil {
		return
	}
	_, dt := state.Seconds()
	controls.Apply(state, f.Input(), float32(dt))
}

// Publisher receives telemetry snapshots.
type Publisher interface {
	Publish(control.Telemetry)
}

// Telemetry reports the last drawn frame at most once per Interval of
// animation time.
type Telemetry struct {
	Publisher Publisher
	Scene     *scene.SolarSystem
	Interval  time.Duration

	last time.Duration
}

func (t *Telemetry) Start(state *renderer.ProgramState) {
	t.last = state.AnimationTime - t.Interval
}

func (t *Telemetry) Update(state *renderer.ProgramState) {
	if state.AnimationTime-t.last < t.Interval {
		return
	}
	t.last = state.AnimationTime
	t.Publisher.Publish(Snapshot(t.Scene))
}

// Snapshot converts the scene's last frame into telemetry.
func Snapshot(s *scene.SolarSystem) control.Telemetry {
	f := s.LastFrame()
	bodies := make(map[string][3]float32, len(scene.Bodies()))
	for _, id := range scene.Bodies() {
		bodies[id.String()] = f.Position(id)
	}
	return control.Telemetry{
		Time:            f.Time,
		SunRadius:       f.SunRadius,
		Planet2Pipeline: f.Planet2Pipeline.String(),
		Target:          s.Camera.Target().String(),
		Bodies:          bodies,
	}
}
