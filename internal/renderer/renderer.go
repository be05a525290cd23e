package renderer

import (
	"SolarSystem/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

var Debug bool = false
var DepthTestEnabled bool = true
var ClearColor = mgl32.Vec4{0, 0, 0, 1}

// GraphicsBackend receives draw calls. The OpenGL backend uploads uniforms to
// a compiled program; the software backend evaluates the pipeline on the CPU.
type GraphicsBackend interface {
	// BeginFrame clears color and depth for a new frame.
	BeginFrame(state *ProgramState)
	// Bind selects the pipeline and uniforms used by following DrawMesh calls.
	Bind(pipeline ShadingPipeline, u Uniforms)
	DrawMesh(m *mesh.Mesh)
	EndFrame()
}

// Bind hands material and transform for the current frame to the backend.
func Bind(backend GraphicsBackend, material Material, model mgl32.Mat4, state *ProgramState) {
	backend.Bind(material.Pipeline.Pipeline(), NewUniforms(state, model, material))
}

// Shape is drawable geometry.
type Shape struct {
	Mesh *mesh.Mesh
}

func NewShape(m *mesh.Mesh) Shape {
	return Shape{Mesh: m}
}

// Draw renders the shape with model as its world transform.
func (s Shape) Draw(backend GraphicsBackend, state *ProgramState, model mgl32.Mat4, material Material) {
	Bind(backend, material, model, state)
	backend.DrawMesh(s.Mesh)
}

// VertexAt reads vertex i of m as pipeline input.
func VertexAt(m *mesh.Mesh, i uint32) VertexIn {
	in := VertexIn{Position: m.Positions[i]}
	if int(i) < len(m.Normals) {
		in.Normal = m.Normals[i]
	}
	return in
}
