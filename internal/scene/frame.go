package scene

import (
	"math"

	"SolarSystem/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit radii of planets 1 to 4.
var orbitRadii = [4]float32{5, 8, 11, 14}

// FrameState is everything the solar system computes from the animation time
// before drawing.
type FrameState struct {
	Time      float64
	SunRadius float32
	SunColor  mgl32.Vec4
	Sun       mgl32.Mat4
	Ring      mgl32.Mat4
	Light     renderer.Light

	// Planet2Pipeline alternates between Phong and Gouraud.
	Planet2Pipeline renderer.PipelineKind

	bodies [Moon + 1]mgl32.Mat4
}

// Body returns the world transform of a body. Unknown ids yield identity.
func (f *FrameState) Body(id BodyID) mgl32.Mat4 {
	if id < Planet1 || id > Moon {
		return mgl32.Ident4()
	}
	return f.bodies[id]
}

// Position is the world position of a body's origin.
func (f *FrameState) Position(id BodyID) mgl32.Vec3 {
	return f.Body(id).Col(3).Vec3()
}

// ComputeFrame places every body at time t seconds. planet 2 spends the first
// half of each alternatePeriod on Phong and the second half on Gouraud.
func ComputeFrame(t, alternatePeriod float64) FrameState {
	radius := float32(math.Sin(t/5*2*math.Pi) + 2)
	f := FrameState{
		Time:      t,
		SunRadius: radius,
		SunColor:  renderer.Color((radius-1)/2, 0, (3-radius)/2, 1),
		Sun:       mgl32.Scale3D(radius, radius, radius),
		Light: renderer.NewLight(
			mgl32.Vec4{0, 0, 0, 1},
			renderer.Color(1, 1, 1, 1),
			float32(math.Pow(10, float64(radius))),
		),
	}

	angle := float32(t)
	for i, r := range orbitRadii {
		id := Planet1 + BodyID(i)
		f.bodies[id] = mgl32.HomogRotate3DY(angle / float32(i+1)).Mul4(mgl32.Translate3D(r, 0, 0))
	}

	tilt := float32(math.Sin(t)/2 + 1)
	f.bodies[Planet3] = f.bodies[Planet3].Mul4(mgl32.HomogRotate3DX(tilt))
	f.Ring = f.bodies[Planet3].
		Mul4(mgl32.HomogRotate3DX(0.5)).
		Mul4(mgl32.Scale3D(3.8, 3.8, 0.2))
	f.bodies[Moon] = f.bodies[Planet4].
		Mul4(mgl32.HomogRotate3DY(angle / 2)).
		Mul4(mgl32.Translate3D(2, 0, 0))

	f.Planet2Pipeline = renderer.Gouraud
	if alternatePeriod <= 0 || math.Mod(t, alternatePeriod) < alternatePeriod/2 {
		f.Planet2Pipeline = renderer.Phong
	}
	return f
}
