// Package scene defines the visual scene contract and the Director that
// orchestrates resident scenes, crossfades and shared state.
package scene

import "github.com/belisario-afk/dwdw-sub001/engine/palette"

// Env is the per-frame view of shared state the Director hands to scenes.
type Env interface {
	Macro(key string, def float64) float64
	Palette() palette.Palette
	Post() Post
	Accessibility() Accessibility
}

// BuildContext seeds Init with current shared state and viewport size.
type BuildContext struct {
	Env           Env
	Width, Height int
}

// Frame carries one render invocation.
type Frame struct {
	Camera        *Camera
	Weight        float32 // blend opacity in [0,1]
	Width, Height int
	Env           Env
}

// Scene is the required capability set. A scene exclusively owns its GPU
// state: Init allocates it, Dispose releases it, and the Director calls
// Dispose exactly once per instance.
type Scene interface {
	Name() string
	Init(b *BuildContext) error
	Update(dt float64, env Env) // advances animation; must not draw
	Render(f *Frame)
	Dispose()
}

// Optional capabilities, checked by explicit type assertion rather than ad hoc
// existence probing.

type Resizer interface {
	Resize(w, h int)
}

type PaletteReceiver interface {
	SetPalette(p palette.Palette)
}

type PhraseReceiver interface {
	OnPhrase(bar int, tempo float64)
}
