package scene

import "math"

// Camera is a simple perspective camera; scenes that draw world-space
// geometry pull its view-projection matrix every frame.
type Camera struct {
	FOVDeg    float32
	Near, Far float32
	Aspect    float32
	X, Y, Z   float32
	vp        [16]float32
	dirty     bool
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOVDeg: 60,
		Near:   0.1,
		Far:    100,
		Z:      3,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport recomputes the aspect ratio from framebuffer pixels.
func (c *Camera) SetViewport(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Aspect = float32(w) / float32(h)
	c.dirty = true
}

func (c *Camera) Move(dx, dy, dz float32) {
	c.X += dx
	c.Y += dy
	c.Z += dz
	c.dirty = true
}

func (c *Camera) VP() [16]float32 {
	if c.dirty {
		c.recalculate()
	}
	return c.vp
}

func (c *Camera) recalculate() {
	proj := perspective(c.FOVDeg*math.Pi/180, c.Aspect, c.Near, c.Far)
	view := translate(-c.X, -c.Y, -c.Z)
	c.vp = mul(proj, view)
	c.dirty = false
}

// ---- tiny mat helpers (column-major, GLSL-style) ----

func translate(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func perspective(fovRad, aspect, n, f float32) [16]float32 {
	t := float32(math.Tan(float64(fovRad) * 0.5))
	fn := 1 / (f - n)
	return [16]float32{
		1 / (aspect * t), 0, 0, 0,
		0, 1 / t, 0, 0,
		0, 0, -(f + n) * fn, -1,
		0, 0, -2 * f * n * fn, 0,
	}
}

func mul(a, b [16]float32) [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i+4*j] = a[i+0]*b[0+4*j] + a[i+4]*b[1+4*j] + a[i+8]*b[2+4*j] + a[i+12]*b[3+4*j]
		}
	}
	return out
}
