package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Light is a point or directional light in homogeneous form: Position.W() == 0
// means Position.XYZ is a direction towards the light, W == 1 a location.
type Light struct {
	Position mgl32.Vec4
	Color    mgl32.Vec4
	// Attenuation scales squared distance in 1 / (1 + Attenuation * d^2).
	Attenuation float32
}

// NewLight creates a light whose brightness reaches roughly size units: the
// attenuation factor is 1/size, so larger lights fade more slowly.
func NewLight(position, color mgl32.Vec4, size float32) Light {
	attenuation := float32(0)
	if size > 0 {
		attenuation = 1 / size
	}
	return Light{
		Position:    position,
		Color:       color,
		Attenuation: attenuation,
	}
}

func (l Light) IsDirectional() bool {
	return l.Position.W() == 0
}
