package scene

import (
	"errors"
	"fmt"
)

// Order is the fixed cyclic scene order used by NextAfter.
var Order = []string{"Particles", "Fluid", "Tunnel", "Terrain", "Typography"}

// ErrUnknownScene rejects a load of a name no loader was registered for.
var ErrUnknownScene = errors.New("scene: unknown scene")

// Loader constructs an uninitialized scene instance.
type Loader func() Scene

// Registry maps scene names to loaders.
type Registry struct {
	loaders map[string]Loader
}

func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

func (r *Registry) Register(name string, l Loader) {
	r.loaders[name] = l
}

// Load constructs a fresh scene for name. The instance is not initialized.
func (r *Registry) Load(name string) (Scene, error) {
	l, ok := r.loaders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return l(), nil
}

// Names lists registered scenes in cyclic order first, extras after.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.loaders))
	seen := make(map[string]bool, len(r.loaders))
	for _, n := range Order {
		if _, ok := r.loaders[n]; ok {
			out = append(out, n)
			seen[n] = true
		}
	}
	for n := range r.loaders {
		if !seen[n] {
			out = append(out, n)
		}
	}
	return out
}

// NextAfter returns the name following cur in the fixed cycle. Unknown or
// empty names restart the cycle.
func NextAfter(cur string) string {
	for i, n := range Order {
		if n == cur {
			return Order[(i+1)%len(Order)]
		}
	}
	return Order[0]
}
