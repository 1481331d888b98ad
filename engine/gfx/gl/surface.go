package glbackend

import "github.com/go-gl/gl/v3.3-core/gl"

// Viewport sets the drawable region in framebuffer pixels.
func Viewport(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

// Clear fills the surface with a flat color and resets the depth buffer.
func Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
