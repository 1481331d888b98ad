package macro

// Limited wraps a Store and caps selected keys on read. The core never
// enforces the accessibility intensity limit itself; hosts that want the cap
// read through this wrapper instead.
type Limited struct {
	Store *Store
	Caps  map[string]float64
}

// Get returns the underlying value, capped when a limit is declared for key.
func (l *Limited) Get(key string, def float64) float64 {
	v := l.Store.Get(key, def)
	if cap, ok := l.Caps[key]; ok && v > cap {
		return cap
	}
	return v
}

// Set passes through unchanged; limits apply on the read side only.
func (l *Limited) Set(key string, v float64) { l.Store.Set(key, v) }
