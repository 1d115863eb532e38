package reports

import (
	"fmt"
	"sync"
)

// Factory builds a report module bound to a collector.
type Factory func(c Collector) Module

// Registry manages report module factories. Registration order is preserved
// so renderers list reports deterministically.
type Registry interface {
	Register(name string, factory Factory) error
	Create(name string, c Collector) (Module, error)
	Names() []string
}

type registry struct {
	mu        sync.RWMutex
	order     []string
	factories map[string]Factory
}

func NewRegistry() Registry {
	return &registry{factories: make(map[string]Factory)}
}

func (r *registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("report name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("report %q is already registered", name)
	}

	r.factories[name] = factory
	r.order = append(r.order, name)
	return nil
}

func (r *registry) Create(name string, c Collector) (Module, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("report %q is not registered", name)
	}
	return factory(c), nil
}

func (r *registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
