// Package visuals contains the five scene variants. Each scene owns its GPU
// geometry, program and uniform state exclusively; nothing here is shared
// across instances.
package visuals

import "github.com/belisario-afk/dwdw-sub001/engine/scene"

// DefaultRegistry registers the fixed capability set in cyclic order.
func DefaultRegistry() *scene.Registry {
	r := scene.NewRegistry()
	r.Register("Particles", func() scene.Scene { return &Particles{} })
	r.Register("Fluid", func() scene.Scene { return &Fluid{} })
	r.Register("Tunnel", func() scene.Scene { return &Tunnel{} })
	r.Register("Terrain", func() scene.Scene { return &Terrain{} })
	r.Register("Typography", func() scene.Scene { return &Typography{} })
	return r
}

// timeScale is the per-frame animation rate: the speed macro, slowed down
// when the host asked for reduced motion.
func timeScale(env scene.Env) float64 {
	s := env.Macro("speed", 1)
	if env.Accessibility().ReducedMotion {
		s *= 0.25
	}
	return s
}

// iterCap clamps a macro-driven loop bound to a per-shader hard limit.
func iterCap(v float64, min, max int32) int32 {
	n := int32(v)
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// flashLimit damps glow/flash uniforms when epilepsy-safe mode is on.
func flashLimit(env scene.Env, v float32) float32 {
	if env.Accessibility().EpilepsySafe && v > 0.5 {
		return 0.5
	}
	return v
}
