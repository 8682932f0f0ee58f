// Package shader provides OpenGL shader compilation and uniform upload
// utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// CompileProgram compiles vertex and fragment shaders and links them into a
// program. Returns the program ID or an error if compilation/linking fails.
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
		log := make([]byte, logLen)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
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
		log := make([]byte, logLen)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// MustGetUniform returns the uniform location for the given name, panicking
// when it is missing. Renderers resolve all their locations once at
// construction, so a missing uniform is a startup-time shader bug, not a
// runtime condition.
func MustGetUniform(program uint32, name string) int32 {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, program))
	}
	return loc
}

// GetUniform returns the uniform location for the given name, -1 if the
// uniform is not found or was optimized out.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// LoadMat4 uploads a matrix to the given location.
func LoadMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// LoadVec4 uploads a 4-vector to the given location.
func LoadVec4(loc int32, v mgl32.Vec4) {
	gl.Uniform4f(loc, v.X(), v.Y(), v.Z(), v.W())
}

// LoadVec3 uploads a 3-vector to the given location.
func LoadVec3(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v.X(), v.Y(), v.Z())
}

// LoadVec2 uploads a 2-vector to the given location.
func LoadVec2(loc int32, v mgl32.Vec2) {
	gl.Uniform2f(loc, v.X(), v.Y())
}

// LoadFloat uploads a float to the given location.
func LoadFloat(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

// LoadInt uploads an int to the given location (also used for sampler
// texture units).
func LoadInt(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

// LoadBool uploads a bool as 1.0 or 0.0. Boolean flags are declared as
// floats in the shaders, and a float uniform may only be written through
// the float entry point; Uniform1i on it is an INVALID_OPERATION that
// leaves the uniform untouched.
func LoadBool(loc int32, v bool) {
	if v {
		gl.Uniform1f(loc, 1)
	} else {
		gl.Uniform1f(loc, 0)
	}
}
