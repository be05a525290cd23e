package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PhongPipeline lights every covered pixel using the interpolated normal and
// world position.
type PhongPipeline struct{}

func (PhongPipeline) Kind() PipelineKind { return Phong }

func (PhongPipeline) Vertex(u *Uniforms, in VertexIn) Varyings {
	clip, world := clipAndWorld(u, in)
	return Varyings{
		Clip:     clip,
		WorldPos: world,
		Normal:   TransformNormal(u.Model, u.NormalScale, in.Normal),
	}
}

func (PhongPipeline) Fragment(u *Uniforms, v Varyings) mgl32.Vec4 {
	return litColor(u, v.Normal, v.WorldPos)
}

// GouraudPipeline lights each vertex and lets the rasterizer interpolate the
// resulting colors. Highlights smaller than a triangle get lost or smeared.
type GouraudPipeline struct{}

func (GouraudPipeline) Kind() PipelineKind { return Gouraud }

func (GouraudPipeline) Vertex(u *Uniforms, in VertexIn) Varyings {
	clip, world := clipAndWorld(u, in)
	n := TransformNormal(u.Model, u.NormalScale, in.Normal)
	return Varyings{
		Clip:     clip,
		WorldPos: world,
		Normal:   n,
		Color:    litColor(u, n, world),
	}
}

func (GouraudPipeline) Fragment(_ *Uniforms, v Varyings) mgl32.Vec4 {
	return v.Color
}

// RingPipeline draws concentric bands around the object origin. It ignores
// lights and the material.
type RingPipeline struct{}

// RingColor is the band color at full brightness.
var RingColor = mgl32.Vec4{0.6, 0.4, 0.0, 1.0}

func (RingPipeline) Kind() PipelineKind { return RingPattern }

func (RingPipeline) Vertex(u *Uniforms, in VertexIn) Varyings {
	clip, world := clipAndWorld(u, in)
	return Varyings{
		Clip:     clip,
		WorldPos: world,
		Center:   u.Model.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3(),
	}
}

func (RingPipeline) Fragment(u *Uniforms, v Varyings) mgl32.Vec4 {
	return RingBand(v.WorldPos.Sub(v.Center).Len(), u.Material.RingFrequency)
}

// RingBand is the ring color at distance d from the ring's center.
func RingBand(d, frequency float32) mgl32.Vec4 {
	return RingColor.Mul(float32(math.Sin(float64(frequency * d))))
}

// litColor is the output of the lit pipelines at one surface point: ambient
// plus the lighting model.
func litColor(u *Uniforms, n, p mgl32.Vec3) mgl32.Vec4 {
	lit := lightingModel(SafeNormalize(n), p, u.CameraCenter, u.Lights, u.Material)
	return AmbientColor(u.Material).Add(lit.Vec4(0))
}
