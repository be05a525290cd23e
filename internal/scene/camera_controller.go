package scene

import (
	"SolarSystem/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraController moves the camera once per frame, after the bodies have
// been placed, according to the selected target.
type CameraController struct {
	// Initial is the overview view matrix (a camera inverse).
	Initial mgl32.Mat4
	// BlendFactor is the fraction of the remaining way covered each frame.
	BlendFactor float32
	// FollowDistance offsets the camera along the body's local +Z.
	FollowDistance float32

	target CameraTarget
}

func NewCameraController(initial mgl32.Mat4, blendFactor, followDistance float32) *CameraController {
	return &CameraController{
		Initial:        initial,
		BlendFactor:    blendFactor,
		FollowDistance: followDistance,
	}
}

func (c *CameraController) Target() CameraTarget {
	return c.target
}

// SetTarget replaces the current target. The change takes effect on the
// next Update.
func (c *CameraController) SetTarget(t CameraTarget) {
	c.target = t
}

// Update applies the target to the camera. It reads the previous camera
// transform from state before overwriting it.
func (c *CameraController) Update(state *renderer.ProgramState, frame *FrameState) {
	switch c.target.Kind {
	case TargetInitial:
		state.SetCamera(c.Initial)
	case TargetBody:
		desired := c.Desired(frame.Body(c.target.Body))
		blended := Blend(state.CameraTransform, desired, c.BlendFactor)
		state.SetCamera(blended.Inv())
	}
}

// Desired is the camera transform that views body from FollowDistance away.
func (c *CameraController) Desired(body mgl32.Mat4) mgl32.Mat4 {
	return body.Mul4(mgl32.Translate3D(0, 0, c.FollowDistance))
}

// Blend mixes two matrices entry by entry: a*(1-f) + b*f.
func Blend(a, b mgl32.Mat4, f float32) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*f
	}
	return out
}
