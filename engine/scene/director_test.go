package scene

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/belisario-afk/dwdw-sub001/engine/palette"
)

// fakeScene records every contract call and implements all optional
// capabilities.
type fakeScene struct {
	name     string
	initErr  error
	inits    int
	updates  int
	disposes int
	weights  []float32
	resizes  [][2]int
	palettes []palette.Palette
	bars     []int

	panicUpdate bool
	panicRender bool
}

func (f *fakeScene) Name() string { return f.name }
func (f *fakeScene) Init(*BuildContext) error {
	f.inits++
	return f.initErr
}
func (f *fakeScene) Update(dt float64, env Env) {
	if f.panicUpdate {
		panic("broken shader")
	}
	f.updates++
}
func (f *fakeScene) Render(fr *Frame) {
	if f.panicRender {
		panic("broken draw")
	}
	f.weights = append(f.weights, fr.Weight)
}
func (f *fakeScene) Dispose()        { f.disposes++ }
func (f *fakeScene) Resize(w, h int) { f.resizes = append(f.resizes, [2]int{w, h}) }
func (f *fakeScene) SetPalette(p palette.Palette) {
	f.palettes = append(f.palettes, p)
}
func (f *fakeScene) OnPhrase(bar int, tempo float64) { f.bars = append(f.bars, bar) }

type testHarness struct {
	d      *Director
	now    time.Time
	scenes map[string]*fakeScene
	logs   []string
}

func newHarness(names ...string) *testHarness {
	h := &testHarness{scenes: map[string]*fakeScene{}}
	reg := NewRegistry()
	for _, n := range names {
		name := n
		sc := &fakeScene{name: name}
		h.scenes[name] = sc
		reg.Register(name, func() Scene { return sc })
	}
	h.d = NewDirector(reg, 800, 600)
	h.now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h.d.now = func() time.Time { return h.now }
	h.d.logf = func(format string, args ...any) {
		h.logs = append(h.logs, fmt.Sprintf(format, args...))
	}
	return h
}

func (h *testHarness) advance(dt time.Duration) {
	h.now = h.now.Add(dt)
	h.d.Update(dt.Seconds())
	h.d.Render()
}

func TestLoadSceneStateMachine(t *testing.T) {
	h := newHarness("Particles")

	if h.d.Phase() != PhaseIdle {
		t.Fatalf("initial phase = %v, want Idle", h.d.Phase())
	}
	if err := h.d.LoadScene("Particles"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if h.d.Phase() != PhaseSingleActive {
		t.Errorf("phase = %v, want SingleActive", h.d.Phase())
	}
	if h.d.ResidentCount() != 1 || h.d.PrimaryName() != "Particles" {
		t.Errorf("residents = %d primary = %q", h.d.ResidentCount(), h.d.PrimaryName())
	}
	if h.scenes["Particles"].inits != 1 {
		t.Errorf("inits = %d, want 1", h.scenes["Particles"].inits)
	}
}

func TestLoadSceneErrors(t *testing.T) {
	h := newHarness("Particles")
	h.scenes["Particles"].initErr = errors.New("no GPU")

	if err := h.d.LoadScene("Particles"); err == nil {
		t.Fatal("LoadScene succeeded, want init error")
	}
	if h.d.ResidentCount() != 0 || h.d.Phase() != PhaseIdle {
		t.Errorf("failed init left a resident (count=%d phase=%v)", h.d.ResidentCount(), h.d.Phase())
	}

	if err := h.d.LoadScene("Nope"); err == nil {
		t.Error("LoadScene of unknown name succeeded")
	}
}

func TestCrossfadeLifecycle(t *testing.T) {
	h := newHarness("Particles", "Fluid")
	if err := h.d.LoadScene("Particles"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if err := h.d.CrossfadeTo("Fluid", 2); err != nil {
		t.Fatalf("CrossfadeTo: %v", err)
	}
	if h.d.Phase() != PhaseTransitioning || h.d.ResidentCount() != 2 {
		t.Fatalf("phase=%v residents=%d, want Transitioning/2", h.d.Phase(), h.d.ResidentCount())
	}

	// Blend ratio tracks wall-clock time, monotone non-decreasing.
	var prev float64
	for i := 0; i < 3; i++ {
		h.advance(500 * time.Millisecond)
		b := h.d.BlendRatio()
		if b < prev {
			t.Fatalf("blend ratio decreased: %v -> %v", prev, b)
		}
		prev = b
	}
	if prev < 0.7 || prev > 0.8 {
		t.Errorf("blend after 1.5s of 2s = %v, want 0.75", prev)
	}

	// Resize mid-transition reaches both residents.
	h.d.Resize(1920, 1080)
	for _, name := range []string{"Particles", "Fluid"} {
		sc := h.scenes[name]
		if len(sc.resizes) != 1 || sc.resizes[0] != [2]int{1920, 1080} {
			t.Errorf("%s resizes = %v, want one 1920x1080", name, sc.resizes)
		}
	}

	// Completion: displaced scene disposed exactly once, new primary promoted.
	h.advance(600 * time.Millisecond)
	if h.d.Phase() != PhaseSingleActive || h.d.ResidentCount() != 1 {
		t.Fatalf("phase=%v residents=%d after completion", h.d.Phase(), h.d.ResidentCount())
	}
	if h.d.PrimaryName() != "Fluid" {
		t.Errorf("primary = %q, want Fluid", h.d.PrimaryName())
	}
	if h.d.BlendRatio() != 0 {
		t.Errorf("blend = %v after completion, want 0", h.d.BlendRatio())
	}
	if got := h.scenes["Particles"].disposes; got != 1 {
		t.Errorf("displaced scene disposed %d times, want exactly 1", got)
	}
	if got := h.scenes["Fluid"].disposes; got != 0 {
		t.Errorf("incoming scene disposed %d times, want 0", got)
	}

	// Scenario from the contract: Particles -> Fluid, then the cycle
	// continues at Tunnel.
	if next := h.d.NextSceneName(); next != "Tunnel" {
		t.Errorf("NextSceneName = %q, want Tunnel", next)
	}
}

func TestCrossfadeRejectedWhileTransitioning(t *testing.T) {
	h := newHarness("Particles", "Fluid", "Tunnel")
	if err := h.d.LoadScene("Particles"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if err := h.d.CrossfadeTo("Fluid", 5); err != nil {
		t.Fatalf("CrossfadeTo: %v", err)
	}

	if err := h.d.CrossfadeTo("Tunnel", 1); !errors.Is(err, ErrTransitionActive) {
		t.Fatalf("second CrossfadeTo error = %v, want ErrTransitionActive", err)
	}
	if h.d.ResidentCount() != 2 {
		t.Errorf("rejected crossfade changed residency: %d", h.d.ResidentCount())
	}
}

func TestCrossfadeWeights(t *testing.T) {
	h := newHarness("Particles", "Fluid")
	if err := h.d.LoadScene("Particles"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if err := h.d.CrossfadeTo("Fluid", 1); err != nil {
		t.Fatalf("CrossfadeTo: %v", err)
	}

	h.advance(250 * time.Millisecond)
	out := h.scenes["Particles"]
	in := h.scenes["Fluid"]
	lastOut := out.weights[len(out.weights)-1]
	lastIn := in.weights[len(in.weights)-1]
	if lastOut < 0.74 || lastOut > 0.76 {
		t.Errorf("outgoing weight = %v, want 0.75", lastOut)
	}
	if lastIn < 0.24 || lastIn > 0.26 {
		t.Errorf("incoming weight = %v, want 0.25", lastIn)
	}
}

func TestCrossfadeFromIdleLoads(t *testing.T) {
	h := newHarness("Terrain")
	if err := h.d.CrossfadeTo("Terrain", 2); err != nil {
		t.Fatalf("CrossfadeTo from idle: %v", err)
	}
	if h.d.Phase() != PhaseSingleActive || h.d.PrimaryName() != "Terrain" {
		t.Errorf("phase=%v primary=%q, want SingleActive/Terrain", h.d.Phase(), h.d.PrimaryName())
	}
}

func TestOnPhrasePrimaryOnly(t *testing.T) {
	h := newHarness("Particles", "Fluid")
	h.d.OnPhrase(1, 120) // no residents: no-op

	if err := h.d.LoadScene("Particles"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if err := h.d.CrossfadeTo("Fluid", 10); err != nil {
		t.Fatalf("CrossfadeTo: %v", err)
	}

	h.d.OnPhrase(4, 128)
	if got := h.scenes["Particles"].bars; len(got) != 1 || got[0] != 4 {
		t.Errorf("primary bars = %v, want [4]", got)
	}
	if got := h.scenes["Fluid"].bars; len(got) != 0 {
		t.Errorf("incoming scene received phrase events: %v", got)
	}
}

func TestSetPaletteFanOut(t *testing.T) {
	h := newHarness("Particles", "Fluid")
	if err := h.d.LoadScene("Particles"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if err := h.d.CrossfadeTo("Fluid", 10); err != nil {
		t.Fatalf("CrossfadeTo: %v", err)
	}

	p := palette.Fallback()
	h.d.SetPalette(p)
	for _, name := range []string{"Particles", "Fluid"} {
		if got := len(h.scenes[name].palettes); got != 1 {
			t.Errorf("%s received %d palettes, want 1", name, got)
		}
	}
	if h.d.Palette().Dominant != p.Dominant {
		t.Error("Director did not store the palette")
	}
}

func TestMacroPassThrough(t *testing.T) {
	h := newHarness()
	if got := h.d.GetMacro("neverSet", 0.4); got != 0.4 {
		t.Errorf("GetMacro default = %v, want 0.4", got)
	}
	h.d.SetMacro("speed", 2)
	if got := h.d.GetMacro("speed", 0); got != 2 {
		t.Errorf("speed = %v, want 2", got)
	}
}

func TestAccessibilityLimitIsStoredNotEnforced(t *testing.T) {
	h := newHarness()
	safe := true
	limit := 0.3
	h.d.SetAccessibility(AccessibilityPatch{EpilepsySafe: &safe, IntensityLimit: &limit})

	h.d.SetMacro("intensity", 1.0)
	if got := h.d.GetMacro("intensity", 0); got != 1.0 {
		t.Errorf("intensity = %v, want 1.0 (limit must not clamp the store)", got)
	}
	if a := h.d.Accessibility(); !a.EpilepsySafe || a.IntensityLimit != 0.3 {
		t.Errorf("accessibility not stored: %+v", a)
	}
}

func TestSettingsShallowMerge(t *testing.T) {
	h := newHarness()
	scale := 2.0
	h.d.SetQuality(QualityPatch{Scale: &scale})
	aa := 4
	h.d.SetQuality(QualityPatch{Antialias: &aa})
	if q := h.d.Quality(); q.Scale != 2 || q.Antialias != 4 {
		t.Errorf("quality = %+v, want Scale 2 Antialias 4", q)
	}

	bloom := 1.5
	h.d.SetPost(PostPatch{Bloom: &bloom})
	if h.d.Post().Bloom != 1.5 {
		t.Errorf("bloom = %v, want 1.5", h.d.Post().Bloom)
	}
}

func TestEffectivePixelRatioCap(t *testing.T) {
	h := newHarness()
	tests := []struct {
		scale, dpr, want float64
	}{
		{1, 1, 1},
		{2, 1, 2},
		{2, 2, 3}, // capped
		{0.5, 2, 1},
	}
	for _, tt := range tests {
		h.d.SetQuality(QualityPatch{Scale: &tt.scale})
		if got := h.d.EffectivePixelRatio(tt.dpr); got != tt.want {
			t.Errorf("scale %v dpr %v: ratio = %v, want %v", tt.scale, tt.dpr, got, tt.want)
		}
	}
}

func TestFaultedSceneIsSkippedNotFatal(t *testing.T) {
	h := newHarness("Particles", "Fluid")
	if err := h.d.LoadScene("Particles"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if err := h.d.CrossfadeTo("Fluid", 10); err != nil {
		t.Fatalf("CrossfadeTo: %v", err)
	}
	h.scenes["Particles"].panicUpdate = true
	h.scenes["Particles"].panicRender = true

	h.advance(16 * time.Millisecond) // must not panic the caller

	if got := h.scenes["Fluid"].updates; got == 0 {
		t.Error("healthy scene was not updated after the other faulted")
	}
	if len(h.scenes["Fluid"].weights) == 0 {
		t.Error("healthy scene was not rendered after the other faulted")
	}
	if len(h.logs) == 0 {
		t.Error("faulting scene produced no log entries")
	}
}

func TestCloseDisposesResidents(t *testing.T) {
	h := newHarness("Particles", "Fluid")
	if err := h.d.LoadScene("Particles"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if err := h.d.CrossfadeTo("Fluid", 10); err != nil {
		t.Fatalf("CrossfadeTo: %v", err)
	}

	h.d.Close()
	if h.d.ResidentCount() != 0 || h.d.Phase() != PhaseIdle {
		t.Errorf("Close left residents=%d phase=%v", h.d.ResidentCount(), h.d.Phase())
	}
	for name, sc := range h.scenes {
		if sc.disposes != 1 {
			t.Errorf("%s disposed %d times, want 1", name, sc.disposes)
		}
	}
}
