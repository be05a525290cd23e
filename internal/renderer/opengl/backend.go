package opengl

import (
	"fmt"

	"SolarSystem/internal/logger"
	"SolarSystem/internal/mesh"
	"SolarSystem/internal/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var _ renderer.GraphicsBackend = (*Backend)(nil)

// gpuMesh is a mesh uploaded once and drawn every frame after that.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Backend draws through OpenGL 4.1 core. It must be created and used on the
// thread that owns the GL context.
type Backend struct {
	programs map[renderer.PipelineKind]*Program
	meshes   map[*mesh.Mesh]*gpuMesh
	current  *Program

	warnedLights bool
}

// NewBackend loads the GL function pointers and compiles every pipeline.
func NewBackend(width, height int32) (*Backend, error) {
	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL initialization failed", zap.Error(err))
		return nil, fmt.Errorf("opengl: init: %w", err)
	}

	b := &Backend{
		programs: make(map[renderer.PipelineKind]*Program),
		meshes:   make(map[*mesh.Mesh]*gpuMesh),
	}
	for _, kind := range renderer.PipelineKinds() {
		program, err := NewProgram(kind)
		if err != nil {
			b.Cleanup()
			return nil, err
		}
		b.programs[kind] = program
	}

	if renderer.Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.Viewport(0, 0, width, height)
	logger.Log.Info("OpenGL render initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
	return b, nil
}

func (b *Backend) BeginFrame(state *renderer.ProgramState) {
	c := renderer.ClearColor
	gl.ClearColor(c.X(), c.Y(), c.Z(), c.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if renderer.DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// Bind switches program if needed and uploads the draw's uniforms.
func (b *Backend) Bind(pipeline renderer.ShadingPipeline, u renderer.Uniforms) {
	program := b.programs[pipeline.Kind()]
	if program == nil {
		logger.Log.Error("No program for pipeline", zap.Stringer("pipeline", pipeline.Kind()))
		return
	}
	if b.current != program {
		program.Use()
		b.current = program
	}

	uc := program.Uniforms
	uc.SetMat4("modelTransform", u.Model)
	uc.SetMat4("projectionCameraModelTransform", u.ProjectionCameraModel)
	uc.SetVec3("squaredScale", u.NormalScale)

	if pipeline.Kind() == renderer.RingPattern {
		uc.SetVec4("ringColor", renderer.RingColor)
		uc.SetFloat("ringFrequency", u.Material.RingFrequency)
		return
	}

	m := u.Material
	uc.SetVec4("shapeColor", m.Color)
	uc.SetFloat("ambient", m.Ambient)
	uc.SetFloat("diffusivity", m.Diffusivity)
	uc.SetFloat("specularity", m.Specularity)
	uc.SetFloat("smoothness", m.Smoothness)
	uc.SetVec3("cameraCenter", u.CameraCenter)
	b.setLights(uc, u.Lights)
}

func (b *Backend) setLights(uc *UniformCache, lights []renderer.Light) {
	if len(lights) > MaxLights {
		if !b.warnedLights {
			logger.Log.Warn("Too many lights, extra lights ignored", zap.Int("lights", len(lights)), zap.Int("max", MaxLights))
			b.warnedLights = true
		}
		lights = lights[:MaxLights]
	}

	positions := make([]mgl32.Vec4, len(lights))
	colors := make([]mgl32.Vec4, len(lights))
	attenuation := make([]float32, len(lights))
	for i, l := range lights {
		positions[i] = l.Position
		colors[i] = l.Color
		attenuation[i] = l.Attenuation
	}

	uc.SetInt("lightCount", int32(len(lights)))
	uc.SetVec4Array("lightPositions", positions)
	uc.SetVec4Array("lightColors", colors)
	uc.SetFloatArray("lightAttenuationFactors", attenuation)
}

// DrawMesh draws m with the last bound program, uploading it on first use.
func (b *Backend) DrawMesh(m *mesh.Mesh) {
	g, ok := b.meshes[m]
	if !ok {
		g = upload(m)
		b.meshes[m] = g
		logger.Log.Debug("Mesh uploaded", zap.String("mesh", m.Name), zap.Int("vertices", m.VertexCount()))
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (b *Backend) EndFrame() {}

// Resize updates the GL viewport after a framebuffer size change.
func (b *Backend) Resize(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

// Cleanup releases every program and uploaded mesh.
func (b *Backend) Cleanup() {
	for kind, p := range b.programs {
		p.Delete()
		delete(b.programs, kind)
	}
	for m, g := range b.meshes {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		delete(b.meshes, m)
	}
	b.current = nil
}

func upload(m *mesh.Mesh) *gpuMesh {
	data := m.Interleaved()
	g := &gpuMesh{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(mesh.Stride * 4)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(attribPosition)

	gl.VertexAttribPointer(attribTexCoord, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(attribTexCoord)

	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(attribNormal)

	gl.BindVertexArray(0)
	return g
}
