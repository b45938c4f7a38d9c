// Package shader loads GLSL programs from disk and resolves their bindings.
package shader

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/stone/internal/logger"
)

// ErrMissingAttribute is returned when a program lacks the position input.
var ErrMissingAttribute = errors.New("shader: program has no position attribute")

// Bindings are the attribute and uniform locations of a world program.
// A location of -1 means the program does not use that input.
type Bindings struct {
	Position int32
	Normal   int32
	Color    int32
	Light    int32

	ModelView int32
	MVP       int32
}

// Program is a linked GL program and its bindings.
type Program struct {
	ID       uint32
	Bindings Bindings
}

// LoadProgram reads, compiles and links the two shader files.
func LoadProgram(vertexPath, fragmentPath string) (*Program, error) {
	vertexSrc, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("reading vertex shader: %w", err)
	}
	fragmentSrc, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("reading fragment shader: %w", err)
	}

	id, err := CompileProgram(string(vertexSrc), string(fragmentSrc))
	if err != nil {
		return nil, fmt.Errorf("%s, %s: %w", vertexPath, fragmentPath, err)
	}

	b := bind(
		func(name string) int32 { return gl.GetAttribLocation(id, gl.Str(name+"\x00")) },
		func(name string) int32 { return GetUniform(id, name) },
	)
	if b.Position < 0 {
		gl.DeleteProgram(id)
		return nil, ErrMissingAttribute
	}

	logger.Debug("shader program loaded",
		zap.Uint32("program", id),
		zap.String("vertex", vertexPath),
		zap.String("fragment", fragmentPath),
		zap.Any("bindings", b),
	)
	return &Program{ID: id, Bindings: b}, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Delete frees the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// bind looks up every named input. The light attribute falls back to the
// older "occlusion" name.
func bind(attrib, uniform func(string) int32) Bindings {
	return Bindings{
		Position:  attrib("position"),
		Normal:    attrib("normal"),
		Color:     attrib("color"),
		Light:     firstFound(attrib, "light", "occlusion"),
		ModelView: uniform("modelview"),
		MVP:       uniform("mvp"),
	}
}

func firstFound(lookup func(string) int32, names ...string) int32 {
	for _, name := range names {
		if loc := lookup(name); loc >= 0 {
			return loc
		}
	}
	return -1
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name, or -1.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
