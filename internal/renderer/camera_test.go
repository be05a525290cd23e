package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestProgramStateSetCamera(t *testing.T) {
	state := NewProgramState(800, 600)
	view := LookAt(mgl32.Vec3{0, 10, 20}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	state.SetCamera(view)

	if !state.CameraTransform.Mul4(state.CameraInverse).ApproxEqualThreshold(mgl32.Ident4(), 1e-5) {
		t.Error("CameraTransform should be the inverse of CameraInverse")
	}
	if !state.CameraCenter().ApproxEqualThreshold(mgl32.Vec3{0, 10, 20}, 1e-4) {
		t.Errorf("Expected camera at (0,10,20), got %v", state.CameraCenter())
	}
}

func TestProgramStateAdvance(t *testing.T) {
	state := NewProgramState(800, 600)
	state.Advance(500 * time.Millisecond)
	state.Advance(1250 * time.Millisecond)

	tSec, dt := state.Seconds()
	if tSec != 1.25 || dt != 0.75 {
		t.Errorf("Expected t=1.25 dt=0.75, got t=%v dt=%v", tSec, dt)
	}
}

func TestLensProjection(t *testing.T) {
	proj := DefaultLens().Projection(800.0 / 600.0)

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
	if proj.At(3, 2) != -1.0 {
		t.Error("Perspective projection should copy -z into w")
	}
}

func TestFreeFlyIdleLeavesCamera(t *testing.T) {
	state := NewProgramState(800, 600)
	view := LookAt(mgl32.Vec3{0, 10, 20}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	state.SetCamera(view)

	controls := NewFreeFlyControls(10, 0.002)
	controls.Apply(state, FlyInput{}, 0.016)

	if state.CameraInverse != view {
		t.Error("Idle input should not touch the camera")
	}
}

func TestFreeFlyMovesForward(t *testing.T) {
	state := NewProgramState(800, 600)
	state.SetCamera(mgl32.Translate3D(0, 0, -20)) // camera at z=20 looking down -Z

	controls := NewFreeFlyControls(10, 0.002)
	controls.Apply(state, FlyInput{Thrust: mgl32.Vec3{0, 0, -1}}, 0.5)

	want := mgl32.Vec3{0, 0, 15}
	if !state.CameraCenter().ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("Expected camera at %v, got %v", want, state.CameraCenter())
	}

	controls.Apply(state, FlyInput{Thrust: mgl32.Vec3{0, 0, -1}, Boost: true}, 0.5)
	want = mgl32.Vec3{0, 0, 15 - 12.5}
	if !state.CameraCenter().ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("Expected boosted camera at %v, got %v", want, state.CameraCenter())
	}
}

func TestFreeFlyTurnKeepsPosition(t *testing.T) {
	state := NewProgramState(800, 600)
	state.SetCamera(mgl32.Translate3D(0, 0, -20))

	controls := NewFreeFlyControls(10, 0.01)
	controls.Apply(state, FlyInput{Look: mgl32.Vec2{100, 0}}, 0.016)

	if !state.CameraCenter().ApproxEqualThreshold(mgl32.Vec3{0, 0, 20}, 1e-4) {
		t.Errorf("Turning should not move the camera, got %v", state.CameraCenter())
	}

	// Looking right: forward (-Z in camera space) swings towards +X
	forward := state.CameraTransform.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
	if forward.X() <= 0 {
		t.Errorf("Expected forward to turn towards +X, got %v", forward)
	}
	if math.Abs(float64(forward.Len())-1) > 1e-5 {
		t.Errorf("Forward should stay unit length, got %f", forward.Len())
	}
}
