// Package macro holds the live-tunable numeric knobs visual scenes read every
// frame. Declared entries carry a default and a valid range enforced when
// written; undeclared keys pass through as free-form floats.
package macro

// Entry declares one known macro.
type Entry struct {
	Name     string
	Default  float64
	Min, Max float64
}

// Defaults seeds every new Store.
var Defaults = []Entry{
	{Name: "intensity", Default: 0.7, Min: 0, Max: 2},
	{Name: "bloom", Default: 0.8, Min: 0, Max: 3},
	{Name: "glitch", Default: 0, Min: 0, Max: 1},
	{Name: "speed", Default: 1, Min: 0, Max: 8},
	{Name: "raymarchSteps", Default: 512, Min: 16, Max: 1024},
	{Name: "particleMillions", Default: 0.5, Min: 0.01, Max: 4},
	{Name: "fluidIters", Default: 35, Min: 1, Max: 128},
}

// Store is a name->float registry. It is not safe for concurrent use; all
// access happens on the render thread.
type Store struct {
	entries map[string]Entry
	values  map[string]float64
}

func NewStore() *Store {
	s := &Store{
		entries: make(map[string]Entry, len(Defaults)),
		values:  make(map[string]float64, len(Defaults)),
	}
	for _, e := range Defaults {
		s.entries[e.Name] = e
		s.values[e.Name] = e.Default
	}
	return s
}

// Set writes a value, clamped to the declared range when the key is declared.
func (s *Store) Set(key string, v float64) {
	if e, ok := s.entries[key]; ok {
		if v < e.Min {
			v = e.Min
		} else if v > e.Max {
			v = e.Max
		}
	}
	s.values[key] = v
}

// Get returns the stored value, or def for keys never set. The default is not
// stored on the miss path.
func (s *Store) Get(key string, def float64) float64 {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Declare registers a new entry with its range; an existing value is clamped
// into the new range.
func (s *Store) Declare(e Entry) {
	s.entries[e.Name] = e
	if v, ok := s.values[e.Name]; ok {
		s.Set(e.Name, v)
	} else {
		s.values[e.Name] = e.Default
	}
}
