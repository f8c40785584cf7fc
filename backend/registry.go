package backend

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Factory opens a new instance of a backend.
type Factory func() Backend

var registry = struct {
	sync.RWMutex
	factories map[string]Factory
}{factories: make(map[string]Factory)}

// Register makes a backend available to Open under name. Backend packages
// call it from init. Registering a name again replaces its factory.
func Register(name string, factory Factory) {
	if name == "" || factory == nil {
		panic("backend: Register needs a name and a factory")
	}
	registry.Lock()
	registry.factories[name] = factory
	registry.Unlock()
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registry.RLock()
	defer registry.RUnlock()
	return slices.Sorted(maps.Keys(registry.factories))
}

// Open creates a new instance of the named backend. Unknown names fail
// with ErrBackendNotAvailable.
func Open(name string) (Backend, error) {
	registry.RLock()
	factory, ok := registry.factories[name]
	registry.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory(), nil
}
