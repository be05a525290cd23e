package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// lightingModel is the single lighting function behind every lit pipeline.
// Phong and Gouraud differ only in where they call it.
var lightingModel = PhongModelLights

// PhongModelLights sums the diffuse and Blinn-Phong specular contribution of
// every light at a surface point. n must be unit length; p and camera are in
// world space. The ambient term is not included.
//
// Directional lights (w == 0) use the stored vector as the direction towards
// the light and its length as the attenuation distance.
func PhongModelLights(n, p, camera mgl32.Vec3, lights []Light, m Material) mgl32.Vec3 {
	e := SafeNormalize(camera.Sub(p))
	base := m.Color.Vec3()

	var result mgl32.Vec3
	for _, light := range lights {
		surfaceToLight := light.Position.Vec3()
		if !light.IsDirectional() {
			surfaceToLight = surfaceToLight.Sub(p.Mul(light.Position.W()))
		}
		distance := surfaceToLight.Len()

		l := SafeNormalize(surfaceToLight)
		h := SafeNormalize(l.Add(e))

		diffuse := maxf(n.Dot(l), 0)
		specular := float32(math.Pow(float64(maxf(n.Dot(h), 0)), float64(m.Smoothness)))
		attenuation := 1 / (1 + light.Attenuation*distance*distance)

		color := light.Color.Vec3()
		contribution := mulElem(base, color).Mul(m.Diffusivity * diffuse).
			Add(color.Mul(m.Specularity * specular))
		result = result.Add(contribution.Mul(attenuation))
	}
	return result
}

// AmbientColor is the unlit base of a lit pipeline's output: the material
// color scaled by its ambient factor, keeping the material's alpha.
func AmbientColor(m Material) mgl32.Vec4 {
	return m.Color.Vec3().Mul(m.Ambient).Vec4(m.Color.W())
}

// SafeNormalize returns v scaled to unit length, or the zero vector when v
// has no length, so degenerate geometry cannot produce NaN colors.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// NormalScale returns the squared length of each basis column of model.
// Dividing an object space normal by it before applying mat3(model) gives
// the same direction as the inverse transpose for rotation and scale.
func NormalScale(model mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{
		model.Col(0).Vec3().LenSqr(),
		model.Col(1).Vec3().LenSqr(),
		model.Col(2).Vec3().LenSqr(),
	}
}

// TransformNormal maps an object space normal to world space and normalizes it.
func TransformNormal(model mgl32.Mat4, normalScale, n mgl32.Vec3) mgl32.Vec3 {
	scaled := mgl32.Vec3{
		divSafe(n[0], normalScale[0]),
		divSafe(n[1], normalScale[1]),
		divSafe(n[2], normalScale[2]),
	}
	return SafeNormalize(model.Mat3().Mul3x1(scaled))
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func divSafe(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
