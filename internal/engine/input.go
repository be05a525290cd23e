package engine

import (
	"SolarSystem/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Input turns keyboard and mouse state into free-fly input. Looking around
// requires holding the right mouse button.
type Input struct {
	window       *glfw.Window
	lastX, lastY float64
	firstMouse   bool
	look         mgl32.Vec2
}

func NewInput(window *glfw.Window) *Input {
	return &Input{window: window, firstMouse: true}
}

func (in *Input) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	if w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		if in.firstMouse {
			in.lastX = xpos
			in.lastY = ypos
			in.firstMouse = false
			return
		}

		xoffset := xpos - in.lastX
		yoffset := in.lastY - ypos // Reversed since y-coordinates go from bottom to top
		in.lastX = xpos
		in.lastY = ypos

		in.look = in.look.Add(mgl32.Vec2{float32(xoffset), float32(yoffset)})
	} else {
		in.firstMouse = true
	}
}

// Poll reads the movement keys and returns the mouse movement accumulated
// since the previous call. Control is held for the shortcuts, so it
// suspends movement.
func (in *Input) Poll() renderer.FlyInput {
	w := in.window
	pressed := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if w.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}

	var fly renderer.FlyInput
	fly.Look, in.look = in.look, mgl32.Vec2{}
	if pressed(glfw.KeyLeftControl, glfw.KeyRightControl) {
		return fly
	}

	axis := func(neg, pos glfw.Key) float32 {
		var v float32
		if pressed(neg) {
			v--
		}
		if pressed(pos) {
			v++
		}
		return v
	}
	fly.Thrust = mgl32.Vec3{
		axis(glfw.KeyA, glfw.KeyD),
		axis(glfw.KeyZ, glfw.KeySpace),
		axis(glfw.KeyW, glfw.KeyS),
	}
	fly.Boost = pressed(glfw.KeyLeftShift, glfw.KeyRightShift)
	return fly
}
