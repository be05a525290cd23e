package opengl

import (
	"fmt"
	"strings"

	"SolarSystem/internal/logger"
	"SolarSystem/internal/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Program is a linked shader program for one pipeline.
type Program struct {
	Kind     renderer.PipelineKind
	ID       uint32
	Uniforms *UniformCache
}

// NewProgram compiles and links the GLSL of a pipeline.
func NewProgram(kind renderer.PipelineKind) (*Program, error) {
	vertexSource, fragmentSource := sources(kind)

	vertexShader, err := GenShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("opengl: %s vertex shader: %w", kind, err)
	}
	fragmentShader, err := GenShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return nil, fmt.Errorf("opengl: %s fragment shader: %w", kind, err)
	}
	id, err := GenShaderProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("opengl: %s program: %w", kind, err)
	}

	logger.Log.Debug("Shader program linked", zap.Stringer("pipeline", kind), zap.Uint32("program", id))
	return &Program{Kind: kind, ID: id, Uniforms: NewUniformCache(id)}, nil
}

func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

func (p *Program) Delete() {
	gl.DeleteProgram(p.ID)
	p.Uniforms.Clear()
}

// GenShader compiles one shader stage. source must be NUL terminated.
func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.Uint32("shader type", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("compile: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// GenShaderProgram links the two stages. The shader objects are released in
// both outcomes.
func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("link: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}
