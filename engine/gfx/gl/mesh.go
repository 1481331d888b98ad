package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// VertexAttrib describes one interleaved attribute of a vertex buffer.
type VertexAttrib struct {
	Location uint32
	Size     int32 // float components
	Offset   int   // bytes
}

// Mesh owns a VAO/VBO (and optional EBO). Indexed meshes draw with
// DrawElements, non-indexed with DrawArrays.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32 // indices if ebo != 0, else vertices
	mode          uint32
}

// NewMesh uploads interleaved float32 vertex data. stride is in bytes.
// indices may be nil for array drawing.
func NewMesh(verts []float32, indices []uint32, stride int, attribs []VertexAttrib, mode uint32) *Mesh {
	m := &Mesh{mode: mode}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	for _, a := range attribs {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, int32(stride), unsafe.Pointer(uintptr(a.Offset)))
	}

	if indices != nil {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		m.count = int32(len(indices))
	} else {
		m.count = int32(len(verts) * 4 / stride)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

func (m *Mesh) Draw() {
	if m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	if m.ebo != 0 {
		gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(m.mode, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// Release deletes all buffers. Safe to call more than once.
func (m *Mesh) Release() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	m.count = 0
}

// NewFullscreenQuad returns a two-triangle quad in clip space (pos2 only),
// the canvas for fragment-shader scenes.
func NewFullscreenQuad() *Mesh {
	verts := []float32{
		-1, -1,
		1, -1,
		-1, 1,
		1, -1,
		1, 1,
		-1, 1,
	}
	return NewMesh(verts, nil, 2*4, []VertexAttrib{
		{Location: 0, Size: 2, Offset: 0},
	}, gl.TRIANGLES)
}
