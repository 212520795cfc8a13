package filter

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds named transmission curves. Populate it once at startup,
// then share it read-only across concurrent photometry calls. Add and Load
// are guarded for callers that populate from multiple goroutines.
type Registry struct {
	mu     sync.RWMutex
	curves map[string]*Curve
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{curves: make(map[string]*Curve)}
}

// Add stores a previously constructed curve under its own name.
func (r *Registry) Add(c *Curve) error {
	if c == nil {
		return fmt.Errorf("%w: nil curve", ErrMalformedFilter)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.curves[c.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFilter, c.Name())
	}

	r.curves[c.Name()] = c

	return nil
}

// Load validates, builds, and stores a curve from in-memory samples.
// Malformed curves fail here, at load time, never later at compute time.
func (r *Registry) Load(name string, wavelengths, transmission []float64, meta Meta) (*Curve, error) {
	c, err := NewCurve(name, wavelengths, transmission, meta)
	if err != nil {
		return nil, err
	}

	if err := r.Add(c); err != nil {
		return nil, err
	}

	return c, nil
}

// Get returns the curve stored under name.
func (r *Registry) Get(name string) (*Curve, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.curves[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}

	return c, nil
}

// Names returns the sorted names of all stored curves.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.curves))
	for name := range r.curves {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Len returns the number of stored curves.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.curves)
}
