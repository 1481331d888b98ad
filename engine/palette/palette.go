// Package palette derives representative color palettes from album artwork.
package palette

import "github.com/belisario-afk/dwdw-sub001/engine/colors"

// DefaultK is the number of representative colors extracted.
const DefaultK = 8

// Palette is immutable once produced; updates replace it wholesale.
type Palette struct {
	Dominant  colors.Color
	Secondary colors.Color
	Colors    []colors.Color // clustering-produced order, len == k
}

// Color returns the i-th representative color, wrapping around so scenes can
// index freely.
func (p Palette) Color(i int) colors.Color {
	if len(p.Colors) == 0 {
		return colors.Gray
	}
	return p.Colors[((i%len(p.Colors))+len(p.Colors))%len(p.Colors)]
}

// Fallback is the palette hosts apply when extraction fails.
func Fallback() Palette {
	cs := []colors.Color{
		colors.FromRGB8(0x10, 0x14, 0x1f),
		colors.FromRGB8(0x1d, 0x2b, 0x53),
		colors.FromRGB8(0x7e, 0x25, 0x53),
		colors.FromRGB8(0x00, 0x87, 0x51),
		colors.FromRGB8(0x29, 0xad, 0xff),
		colors.FromRGB8(0xff, 0x77, 0xa8),
		colors.FromRGB8(0xff, 0xa3, 0x00),
		colors.FromRGB8(0xff, 0xf1, 0xe8),
	}
	return Palette{Dominant: cs[0], Secondary: cs[4], Colors: cs}
}
