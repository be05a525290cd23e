package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Lens describes the perspective projection.
type Lens struct {
	Fov  float32 // vertical, radians
	Near float32
	Far  float32
}

func DefaultLens() Lens {
	return Lens{
		Fov:  math.Pi / 4,
		Near: 0.1,
		Far:  1000,
	}
}

func (l Lens) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(l.Fov, aspect, l.Near, l.Far)
}

// LookAt is the view matrix of a camera at eye looking at center.
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, center, up)
}

// FlyInput is one frame of free-fly input in camera space.
type FlyInput struct {
	// Thrust is the movement direction in the camera's own frame: +X right,
	// +Y up, -Z forward. Components are expected in [-1, 1].
	Thrust mgl32.Vec3
	// Look is the mouse movement in pixels since the last frame.
	Look  mgl32.Vec2
	Boost bool
}

func (in FlyInput) Idle() bool {
	return in.Thrust == (mgl32.Vec3{}) && in.Look == (mgl32.Vec2{})
}

// FreeFlyControls moves the camera relative to its current orientation.
// They operate directly on ProgramState's camera matrices.
type FreeFlyControls struct {
	Speed       float32 // units per second
	Sensitivity float32 // radians per pixel
	BoostFactor float32
	InvertMouse bool
}

func NewFreeFlyControls(speed, sensitivity float32) *FreeFlyControls {
	return &FreeFlyControls{
		Speed:       speed,
		Sensitivity: sensitivity,
		BoostFactor: 2.5,
	}
}

// Apply moves and turns the camera for one frame. Idle input leaves the
// camera untouched.
func (c *FreeFlyControls) Apply(state *ProgramState, in FlyInput, dt float32) {
	if in.Idle() {
		return
	}

	velocity := c.Speed * dt
	if in.Boost {
		velocity *= c.BoostFactor
	}

	yoffset := in.Look.Y()
	if c.InvertMouse {
		yoffset = -yoffset
	}
	yaw := in.Look.X() * c.Sensitivity
	pitch := yoffset * c.Sensitivity

	// Moving the camera by d in its own frame moves the world by -d in view space.
	step := in.Thrust.Mul(velocity)
	view := mgl32.HomogRotate3DX(-pitch).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.Translate3D(-step.X(), -step.Y(), -step.Z())).
		Mul4(state.CameraInverse)
	state.SetCamera(view)
}
