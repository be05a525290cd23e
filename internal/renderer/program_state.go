package renderer

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ProgramState is the per-frame state shared by every draw call: camera,
// projection, lights and animation clock. Scenes write it before issuing
// draws; pipelines only read it.
type ProgramState struct {
	ProjectionTransform mgl32.Mat4
	// CameraTransform places the camera in the world. CameraInverse is the
	// view matrix. SetCamera keeps the two consistent.
	CameraTransform mgl32.Mat4
	CameraInverse   mgl32.Mat4
	Lights          []Light

	AnimationTime      time.Duration
	AnimationDeltaTime time.Duration

	Width  int
	Height int
}

func NewProgramState(width, height int) *ProgramState {
	return &ProgramState{
		ProjectionTransform: mgl32.Ident4(),
		CameraTransform:     mgl32.Ident4(),
		CameraInverse:       mgl32.Ident4(),
		Width:               width,
		Height:              height,
	}
}

// SetCamera installs a view matrix and derives the camera's world transform.
func (s *ProgramState) SetCamera(inverse mgl32.Mat4) {
	s.CameraInverse = inverse
	s.CameraTransform = inverse.Inv()
}

// Advance moves the animation clock to now and records the step.
func (s *ProgramState) Advance(now time.Duration) {
	s.AnimationDeltaTime = now - s.AnimationTime
	s.AnimationTime = now
}

// Seconds returns the animation time and delta in seconds.
func (s *ProgramState) Seconds() (t, dt float64) {
	return s.AnimationTime.Seconds(), s.AnimationDeltaTime.Seconds()
}

func (s *ProgramState) Aspect() float32 {
	if s.Height == 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// CameraCenter is the camera position in world space.
func (s *ProgramState) CameraCenter() mgl32.Vec3 {
	return s.CameraTransform.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// Resize updates the viewport size used for the projection aspect ratio.
func (s *ProgramState) Resize(width, height int) {
	s.Width = width
	s.Height = height
}
