package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Program wraps a linked GL shader program with cached uniform locations.
type Program struct {
	id   uint32
	locs map[string]int32
}

func NewProgram(vsSrc, fsSrc string) (*Program, error) {
	id, err := makeProgram(vsSrc, fsSrc)
	if err != nil {
		return nil, err
	}
	return &Program{id: id, locs: make(map[string]int32)}, nil
}

func (p *Program) Use() {
	if p.id != 0 {
		gl.UseProgram(p.id)
	}
}

// Release deletes the program. Safe to call more than once.
func (p *Program) Release() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func (p *Program) loc(name string) int32 {
	if l, ok := p.locs[name]; ok {
		return l
	}
	l := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locs[name] = l
	return l
}

func (p *Program) SetFloat(name string, v float32)      { gl.Uniform1f(p.loc(name), v) }
func (p *Program) SetInt(name string, v int32)          { gl.Uniform1i(p.loc(name), v) }
func (p *Program) SetVec2(name string, x, y float32)    { gl.Uniform2f(p.loc(name), x, y) }
func (p *Program) SetVec3(name string, x, y, z float32) { gl.Uniform3f(p.loc(name), x, y, z) }
func (p *Program) SetVec4(name string, x, y, z, w float32) {
	gl.Uniform4f(p.loc(name), x, y, z, w)
}
func (p *Program) SetMat4(name string, m [16]float32) {
	gl.UniformMatrix4fv(p.loc(name), 1, false, &m[0])
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	if len(src) == 0 || src[len(src)-1] != 0 {
		src += "\x00"
	}
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
