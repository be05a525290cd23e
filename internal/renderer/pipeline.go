package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// PipelineKind selects one of the fixed shading programs. Materials carry it
// and every draw call dispatches on it.
type PipelineKind int

const (
	Phong PipelineKind = iota
	Gouraud
	RingPattern
)

func (k PipelineKind) String() string {
	switch k {
	case Phong:
		return "phong"
	case Gouraud:
		return "gouraud"
	case RingPattern:
		return "ring"
	}
	return fmt.Sprintf("pipeline(%d)", int(k))
}

// ParsePipelineKind is the inverse of String.
func ParsePipelineKind(s string) (PipelineKind, error) {
	for _, k := range PipelineKinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("renderer: unknown pipeline %q", s)
}

func PipelineKinds() []PipelineKind {
	return []PipelineKind{Phong, Gouraud, RingPattern}
}

// Pipeline returns the CPU evaluation of the program. The GPU backend runs
// the matching GLSL instead.
func (k PipelineKind) Pipeline() ShadingPipeline {
	switch k {
	case Gouraud:
		return GouraudPipeline{}
	case RingPattern:
		return RingPipeline{}
	default:
		return PhongPipeline{}
	}
}

// VertexIn is one object space vertex as stored in a mesh.
type VertexIn struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Varyings is what the vertex stage hands to the rasterizer. Each pipeline
// fills only the fields its fragment stage reads; the rest interpolate as
// zeros.
type Varyings struct {
	Clip     mgl32.Vec4
	WorldPos mgl32.Vec3
	Normal   mgl32.Vec3
	Center   mgl32.Vec3
	Color    mgl32.Vec4
}

// Interpolate blends three vertex outputs with barycentric weights w.
// Clip is interpolated as well so callers may reuse it for depth.
func Interpolate(v *[3]Varyings, w [3]float32) Varyings {
	var out Varyings
	for i := 0; i < 3; i++ {
		out.Clip = out.Clip.Add(v[i].Clip.Mul(w[i]))
		out.WorldPos = out.WorldPos.Add(v[i].WorldPos.Mul(w[i]))
		out.Normal = out.Normal.Add(v[i].Normal.Mul(w[i]))
		out.Center = out.Center.Add(v[i].Center.Mul(w[i]))
		out.Color = out.Color.Add(v[i].Color.Mul(w[i]))
	}
	return out
}

// ShadingPipeline is a vertex and fragment program pair. Implementations are
// stateless; everything they read comes from Uniforms.
type ShadingPipeline interface {
	Kind() PipelineKind
	Vertex(u *Uniforms, in VertexIn) Varyings
	Fragment(u *Uniforms, v Varyings) mgl32.Vec4
}

// Uniforms is the per-draw data of one material and transform in one frame.
type Uniforms struct {
	Model                 mgl32.Mat4
	ProjectionCameraModel mgl32.Mat4
	NormalScale           mgl32.Vec3
	CameraCenter          mgl32.Vec3
	Lights                []Light
	Material              Material
}

// NewUniforms derives everything a pipeline needs for drawing with model and
// material in the current frame.
func NewUniforms(state *ProgramState, model mgl32.Mat4, material Material) Uniforms {
	return Uniforms{
		Model:                 model,
		ProjectionCameraModel: state.ProjectionTransform.Mul4(state.CameraInverse).Mul4(model),
		NormalScale:           NormalScale(model),
		CameraCenter:          state.CameraCenter(),
		Lights:                state.Lights,
		Material:              material,
	}
}

// clipAndWorld runs the transform every pipeline's vertex stage shares.
func clipAndWorld(u *Uniforms, in VertexIn) (mgl32.Vec4, mgl32.Vec3) {
	p := in.Position.Vec4(1)
	return u.ProjectionCameraModel.Mul4x1(p), u.Model.Mul4x1(p).Vec3()
}
