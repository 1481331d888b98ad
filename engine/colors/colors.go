package colors

// Color is RGBA in [0,1] floats, the layout shaders expect.
type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// FromRGB8 converts 8-bit channels to a fully opaque Color.
func FromRGB8(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

// RGB8 converts back to 8-bit channels, alpha dropped.
func (c Color) RGB8() (r, g, b uint8) {
	return uint8(clamp01(c[0])*255 + 0.5), uint8(clamp01(c[1])*255 + 0.5), uint8(clamp01(c[2])*255 + 0.5)
}

// Lerp mixes a toward b by t, clamped to [0,1].
func Lerp(a, b Color, t float32) Color {
	t = clamp01(t)
	return Color{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
