package scene

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/belisario-afk/dwdw-sub001/engine/macro"
	"github.com/belisario-afk/dwdw-sub001/engine/palette"
)

// Phase is the Director's explicit state machine.
type Phase int

const (
	PhaseIdle Phase = iota // no resident scene
	PhaseSingleActive
	PhaseTransitioning
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSingleActive:
		return "SingleActive"
	case PhaseTransitioning:
		return "Transitioning"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

var (
	// ErrTransitionActive rejects a crossfade started while one is running.
	ErrTransitionActive = errors.New("scene: transition already in progress")
	// ErrSlotsFull rejects a load when both scene slots are occupied.
	ErrSlotsFull = errors.New("scene: both scene slots occupied")
)

// Director owns at most two resident scenes (primary + secondary), drives
// crossfade transitions against wall-clock time, and fans shared state out to
// residents. All methods must be called on the render thread.
type Director struct {
	reg    *Registry
	macros *macro.Store
	pal    palette.Palette

	quality Quality
	post    Post
	access  Accessibility

	primary, secondary Scene
	phase              Phase
	blend              float64 // non-zero only while Transitioning
	transStart         time.Time
	transDur           time.Duration

	camera        *Camera
	width, height int

	now  func() time.Time
	logf func(format string, args ...any)
}

func NewDirector(reg *Registry, width, height int) *Director {
	return &Director{
		reg:     reg,
		macros:  macro.NewStore(),
		pal:     palette.Fallback(),
		quality: Quality{Scale: 1},
		post:    Post{Bloom: 0.8},
		access:  Accessibility{IntensityLimit: 1},
		camera:  NewCamera(width, height),
		width:   width,
		height:  height,
		now:     time.Now,
		logf:    log.Printf,
	}
}

// --- Env implementation (what scenes see) ---

func (d *Director) Macro(key string, def float64) float64 { return d.macros.Get(key, def) }
func (d *Director) Palette() palette.Palette               { return d.pal }
func (d *Director) Post() Post                             { return d.post }
func (d *Director) Accessibility() Accessibility           { return d.access }

// --- external interface ---

func (d *Director) SetMacro(key string, v float64)           { d.macros.Set(key, v) }
func (d *Director) GetMacro(key string, def float64) float64 { return d.macros.Get(key, def) }

// SetPalette stores p and fans it out synchronously to all residents that
// accept palettes. The extraction itself already happened off-thread.
func (d *Director) SetPalette(p palette.Palette) {
	d.pal = p
	for _, sc := range d.residents() {
		if pr, ok := sc.(PaletteReceiver); ok {
			pr.SetPalette(p)
		}
	}
}

// OnPhrase forwards beat/phrase boundaries to the primary scene only, so an
// incoming transition scene is never disturbed mid-fade.
func (d *Director) OnPhrase(bar int, tempo float64) {
	if pr, ok := d.primary.(PhraseReceiver); ok {
		pr.OnPhrase(bar, tempo)
	}
}

func (d *Director) SetQuality(p QualityPatch)             { d.quality = d.quality.merged(p) }
func (d *Director) SetPost(p PostPatch)                   { d.post = d.post.merged(p) }
func (d *Director) SetAccessibility(p AccessibilityPatch) { d.access = d.access.merged(p) }

func (d *Director) Quality() Quality { return d.quality }

// EffectivePixelRatio applies the quality scale to the device pixel ratio,
// capped at 3x.
func (d *Director) EffectivePixelRatio(devicePixelRatio float64) float64 {
	r := devicePixelRatio * d.quality.Scale
	if r > maxPixelRatio {
		r = maxPixelRatio
	}
	return r
}

// LoadScene constructs and initializes the named scene, seeding it with
// current macros and palette, and places it in the first free slot. An Init
// error propagates to the caller and leaves the slot empty.
func (d *Director) LoadScene(name string) error {
	if d.primary != nil && d.secondary != nil {
		return ErrSlotsFull
	}
	sc, err := d.reg.Load(name)
	if err != nil {
		return err
	}
	if err := sc.Init(&BuildContext{Env: d, Width: d.width, Height: d.height}); err != nil {
		return fmt.Errorf("init scene %q: %w", name, err)
	}
	if d.primary == nil {
		d.primary = sc
		d.phase = PhaseSingleActive
	} else {
		d.secondary = sc
	}
	return nil
}

// CrossfadeTo loads name into the free slot and ramps the blend ratio from 0
// to 1 over the given wall-clock duration. A crossfade started while another
// is in progress is rejected with ErrTransitionActive.
func (d *Director) CrossfadeTo(name string, seconds float64) error {
	if d.phase == PhaseTransitioning {
		return ErrTransitionActive
	}
	if d.primary == nil {
		// Nothing to fade from; degenerate to a plain load.
		return d.LoadScene(name)
	}
	if err := d.LoadScene(name); err != nil {
		return err
	}
	d.phase = PhaseTransitioning
	d.blend = 0
	d.transStart = d.now()
	d.transDur = time.Duration(seconds * float64(time.Second))
	return nil
}

// NextSceneName returns the scene following the primary in the fixed cyclic
// order.
func (d *Director) NextSceneName() string {
	if d.primary == nil {
		return Order[0]
	}
	return NextAfter(d.primary.Name())
}

// Resize recomputes the camera aspect and forwards the new framebuffer size
// to both residents.
func (d *Director) Resize(w, h int) {
	d.width, d.height = w, h
	d.camera.SetViewport(w, h)
	for _, sc := range d.residents() {
		if rs, ok := sc.(Resizer); ok {
			rs.Resize(w, h)
		}
	}
}

// Update advances the transition against wall-clock elapsed time, then ticks
// resident scenes. A scene that panics is skipped for this frame and logged;
// the loop and the other scene continue.
func (d *Director) Update(dt float64) {
	if d.phase == PhaseTransitioning {
		elapsed := d.now().Sub(d.transStart)
		if d.transDur <= 0 || elapsed >= d.transDur {
			d.blend = 1
		} else {
			d.blend = float64(elapsed) / float64(d.transDur)
		}
	}

	for _, sc := range d.residents() {
		d.safeUpdate(sc, dt)
	}

	if d.phase == PhaseTransitioning && d.blend >= 1 {
		d.finishTransition()
	}
}

// Render draws residents with their blend weights: the outgoing primary at
// 1-blend, the incoming secondary at blend.
func (d *Director) Render() {
	if d.primary != nil {
		d.safeRender(d.primary, float32(1-d.blend))
	}
	if d.secondary != nil {
		d.safeRender(d.secondary, float32(d.blend))
	}
}

// Close disposes all residents; the Director is unusable afterwards.
func (d *Director) Close() {
	if d.secondary != nil {
		d.secondary.Dispose()
		d.secondary = nil
	}
	if d.primary != nil {
		d.primary.Dispose()
		d.primary = nil
	}
	d.phase = PhaseIdle
	d.blend = 0
}

// --- introspection (host overlays and tests) ---

func (d *Director) Phase() Phase        { return d.phase }
func (d *Director) BlendRatio() float64 { return d.blend }
func (d *Director) Camera() *Camera     { return d.camera }

func (d *Director) ResidentCount() int {
	n := 0
	if d.primary != nil {
		n++
	}
	if d.secondary != nil {
		n++
	}
	return n
}

func (d *Director) PrimaryName() string {
	if d.primary == nil {
		return ""
	}
	return d.primary.Name()
}

// --- internals ---

func (d *Director) residents() []Scene {
	out := make([]Scene, 0, 2)
	if d.primary != nil {
		out = append(out, d.primary)
	}
	if d.secondary != nil {
		out = append(out, d.secondary)
	}
	return out
}

// finishTransition disposes the displaced scene exactly once, promotes the
// incoming one to primary, and resets the blend ratio.
func (d *Director) finishTransition() {
	old := d.primary
	d.primary = d.secondary
	d.secondary = nil
	d.blend = 0
	d.phase = PhaseSingleActive
	if old != nil {
		old.Dispose()
	}
}

func (d *Director) safeUpdate(sc Scene, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			d.logf("scene %q update panicked, skipping frame: %v", sc.Name(), r)
		}
	}()
	sc.Update(dt, d)
}

func (d *Director) safeRender(sc Scene, weight float32) {
	defer func() {
		if r := recover(); r != nil {
			d.logf("scene %q render panicked, skipping frame: %v", sc.Name(), r)
		}
	}()
	sc.Render(&Frame{
		Camera: d.camera,
		Weight: weight,
		Width:  d.width,
		Height: d.height,
		Env:    d,
	})
}
