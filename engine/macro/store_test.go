package macro

import "testing"

func TestGetUnsetReturnsCallerDefault(t *testing.T) {
	s := NewStore()
	tests := []struct {
		key string
		def float64
	}{
		{"neverSet", 0.25},
		{"anotherUnknown", -3},
		{"wobble", 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := s.Get(tt.key, tt.def); got != tt.def {
				t.Errorf("Get(%q, %v) = %v, want %v", tt.key, tt.def, got, tt.def)
			}
			// Miss must not store the default.
			if got := s.Get(tt.key, tt.def+1); got != tt.def+1 {
				t.Errorf("default was stored for %q", tt.key)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	s := NewStore()
	tests := []struct {
		key  string
		want float64
	}{
		{"intensity", 0.7},
		{"bloom", 0.8},
		{"glitch", 0},
		{"speed", 1},
		{"raymarchSteps", 512},
		{"particleMillions", 0.5},
		{"fluidIters", 35},
	}
	for _, tt := range tests {
		if got := s.Get(tt.key, -1); got != tt.want {
			t.Errorf("default %s = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestSetClampsDeclaredRange(t *testing.T) {
	s := NewStore()
	tests := []struct {
		name string
		key  string
		set  float64
		want float64
	}{
		{"below min", "fluidIters", -10, 1},
		{"above max", "fluidIters", 500, 128},
		{"in range", "intensity", 1.0, 1.0},
		{"steps above cap", "raymarchSteps", 4096, 1024},
		{"undeclared passes through", "customKnob", 99, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Set(tt.key, tt.set)
			if got := s.Get(tt.key, 0); got != tt.want {
				t.Errorf("after Set(%q, %v): Get = %v, want %v", tt.key, tt.set, got, tt.want)
			}
		})
	}
}

func TestLimitedCapsOnReadOnly(t *testing.T) {
	s := NewStore()
	s.Set("intensity", 1.0)

	// The bare store never applies accessibility limits.
	if got := s.Get("intensity", 0); got != 1.0 {
		t.Fatalf("store intensity = %v, want 1.0", got)
	}

	l := &Limited{Store: s, Caps: map[string]float64{"intensity": 0.3}}
	if got := l.Get("intensity", 0); got != 0.3 {
		t.Errorf("limited intensity = %v, want 0.3", got)
	}
	// The wrapper does not rewrite the stored value.
	if got := s.Get("intensity", 0); got != 1.0 {
		t.Errorf("stored intensity mutated to %v", got)
	}
	// Uncapped keys pass through.
	l.Set("speed", 2)
	if got := l.Get("speed", 0); got != 2 {
		t.Errorf("limited speed = %v, want 2", got)
	}
}
