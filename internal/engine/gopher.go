package engine

import (
	"fmt"
	"runtime"
	"time"

	"SolarSystem/internal/behaviour"
	"SolarSystem/internal/config"
	"SolarSystem/internal/logger"
	"SolarSystem/internal/renderer"
	"SolarSystem/internal/renderer/opengl"
	"SolarSystem/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Gopher owns the window, the GL backend and the frame loop of a scene.
type Gopher struct {
	Width  int32
	Height int32
	Config config.Config
	Scene  *scene.SolarSystem
	State  *renderer.ProgramState

	// Behaviours run at the start of every frame, before the scene is drawn.
	Behaviours *behaviour.BehaviourManager

	window  *glfw.Window
	backend *opengl.Backend
	input   *Input
}

func NewGopher(cfg config.Config, s *scene.SolarSystem) *Gopher {
	return &Gopher{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Config:     cfg,
		Scene:      s,
		State:      renderer.NewProgramState(int(cfg.Window.Width), int(cfg.Window.Height)),
		Behaviours: behaviour.GlobalBehaviourManager,
	}
}

// Render opens the window and runs the frame loop until it is closed. It
// must be called from the main goroutine.
func (gopher *Gopher) Render() error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Log.Error("Could not initialize glfw", zap.Error(err))
		return fmt.Errorf("engine: glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win := gopher.Config.Window
	window, err := glfw.CreateWindow(int(gopher.Width), int(gopher.Height), win.Title, nil, nil)
	if err != nil {
		logger.Log.Error("Could not create glfw window", zap.Error(err))
		return fmt.Errorf("engine: create window: %w", err)
	}
	gopher.window = window
	window.MakeContextCurrent()
	window.SetPos(win.X, win.Y)
	if win.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	// The framebuffer can be larger than the window on HiDPI screens.
	fbWidth, fbHeight := window.GetFramebufferSize()
	gopher.State.Resize(fbWidth, fbHeight)
	gopher.backend, err = opengl.NewBackend(int32(fbWidth), int32(fbHeight))
	if err != nil {
		return err
	}
	defer gopher.backend.Cleanup()

	gopher.input = NewInput(window)
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	window.SetCursorPosCallback(gopher.input.mouseCallback)
	window.SetKeyCallback(gopher.keyCallback)
	window.SetFramebufferSizeCallback(gopher.resizeCallback)

	// The input is only valid while this window is open.
	fly := &behaviour.FreeFly{Input: gopher.input.Poll, Scene: gopher.Scene}
	gopher.Behaviours.Add(fly)
	defer gopher.Behaviours.Remove(fly)
	logger.Log.Debug("Behaviours registered", zap.Int("count", gopher.Behaviours.Len()))
	for _, b := range gopher.Scene.ControlPanel() {
		logger.Log.Info("Control", zap.Stringer("button", b))
	}

	gopher.RenderLoop()
	return nil
}

func (gopher *Gopher) RenderLoop() {
	start := glfw.GetTime()
	for !gopher.window.ShouldClose() {
		elapsed := glfw.GetTime() - start
		gopher.State.Advance(time.Duration(elapsed * float64(time.Second)))

		gopher.Behaviours.UpdateAll(gopher.State)
		gopher.Scene.Display(gopher.backend, gopher.State)

		gopher.window.SwapBuffers()
		glfw.PollEvents()
	}
	logger.Log.Info("Window closed")
}

func (gopher *Gopher) keyCallback(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		w.SetShouldClose(true)
		return
	}
	if mods&glfw.ModControl == 0 {
		return
	}
	if r, ok := shortcutKey(key); ok {
		gopher.Scene.Press(r)
	}
}

func (gopher *Gopher) resizeCallback(_ *glfw.Window, width, height int) {
	if width == 0 || height == 0 {
		return // minimized
	}
	gopher.State.Resize(width, height)
	gopher.backend.Resize(int32(width), int32(height))
}

// shortcutKey maps a key to the rune used by scene.Button.
func shortcutKey(key glfw.Key) (rune, bool) {
	switch {
	case key >= glfw.Key0 && key <= glfw.Key9:
		return rune('0' + key - glfw.Key0), true
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return rune('a' + key - glfw.KeyA), true
	}
	return 0, false
}

// SetDebugMode draws wireframes when enabled. It takes effect when the
// backend is created.
func (gopher *Gopher) SetDebugMode(debug bool) {
	renderer.Debug = debug
}
