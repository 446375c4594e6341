// Package easing holds the named curves that reshape animation progress.
//
// A curve maps progress in [0, 1] to a reshaped progress. The result is not
// bounded to [0, 1]; elastic curves overshoot on purpose.
package easing

import (
	"sort"
	"strings"
	"sync"
)

// Func reshapes linear progress.
type Func func(p float64) float64

// DefaultName is the curve used when a name is empty or unknown.
const DefaultName = "linear"

// Registry maps curve names to functions.
type Registry struct {
	mu     sync.RWMutex
	curves map[string]Func
}

// NewRegistry creates an empty registry. Lookup on an empty registry still
// falls back to Linear.
func NewRegistry() *Registry {
	r := new(Registry)
	r.curves = make(map[string]Func)
	return r
}

// Default returns a registry holding the library curves, the CSS timing
// functions and the standard curves. Standard names win when two sets
// define the same name.
func Default() *Registry {
	r := NewRegistry()
	for name, fn := range Library() {
		r.Register(name, fn)
	}
	for name, fn := range CSS() {
		r.Register(name, fn)
	}
	for name, fn := range Standard() {
		r.Register(name, fn)
	}
	return r
}

// Register adds or replaces a named curve.
func (r *Registry) Register(name string, fn Func) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.curves[name] = fn
	r.mu.Unlock()
}

// Lookup resolves a curve by name. Text of the form cubic-bezier(x1,y1,x2,y2)
// builds a bezier curve. Empty or unknown names resolve to Linear.
func (r *Registry) Lookup(name string) Func {
	if fn, ok := r.Find(name); ok {
		return fn
	}
	return Linear
}

// Find resolves a curve by name and reports whether it exists.
func (r *Registry) Find(name string) (Func, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	r.mu.RLock()
	fn, ok := r.curves[name]
	r.mu.RUnlock()
	if ok {
		return fn, true
	}

	if fn, err := ParseCubicBezier(name); err == nil {
		return fn, true
	}
	return nil, false
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.curves))
	for name := range r.curves {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
