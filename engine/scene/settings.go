package scene

// maxPixelRatio caps the effective device pixel ratio after quality scaling.
const maxPixelRatio = 3.0

// Quality controls render resolution and antialiasing.
type Quality struct {
	Scale     float64 // multiplies the device pixel ratio
	Antialias int     // MSAA sample count, 0 = off
}

// Post holds post-processing strengths.
type Post struct {
	Bloom float64
}

// Accessibility settings are stored and forwarded; the core does not enforce
// IntensityLimit on macros (see macro.Limited for the opt-in clamp).
type Accessibility struct {
	EpilepsySafe   bool
	IntensityLimit float64
	ReducedMotion  bool
	HighContrast   bool
}

// Patch types shallow-merge into settings: nil fields keep current values.

type QualityPatch struct {
	Scale     *float64
	Antialias *int
}

type PostPatch struct {
	Bloom *float64
}

type AccessibilityPatch struct {
	EpilepsySafe   *bool
	IntensityLimit *float64
	ReducedMotion  *bool
	HighContrast   *bool
}

func (q Quality) merged(p QualityPatch) Quality {
	if p.Scale != nil {
		q.Scale = *p.Scale
	}
	if p.Antialias != nil {
		q.Antialias = *p.Antialias
	}
	return q
}

func (po Post) merged(p PostPatch) Post {
	if p.Bloom != nil {
		po.Bloom = *p.Bloom
	}
	return po
}

func (a Accessibility) merged(p AccessibilityPatch) Accessibility {
	if p.EpilepsySafe != nil {
		a.EpilepsySafe = *p.EpilepsySafe
	}
	if p.IntensityLimit != nil {
		a.IntensityLimit = *p.IntensityLimit
	}
	if p.ReducedMotion != nil {
		a.ReducedMotion = *p.ReducedMotion
	}
	if p.HighContrast != nil {
		a.HighContrast = *p.HighContrast
	}
	return a
}
