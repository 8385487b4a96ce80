package provider

import (
	"fmt"
	"sort"
	"sync"
)

// CatalogFactory builds a configured catalog. Factories are registered by
// the catalog subpackages and invoked once the user's config is known.
type CatalogFactory func(settings map[string]string) (Catalog, error)

// Registry maps catalog names to factories so the active catalog can be
// chosen by configuration.
type Registry struct {
	mu         sync.RWMutex
	factories  map[string]CatalogFactory
	priorities map[string]int
}

// GlobalRegistry is the default registry instance.
var GlobalRegistry = NewRegistry()

// NewRegistry creates a new catalog registry.
func NewRegistry() *Registry {
	return &Registry{
		factories:  make(map[string]CatalogFactory),
		priorities: make(map[string]int),
	}
}

// Register adds a catalog factory to the registry.
func (r *Registry) Register(name string, factory CatalogFactory, priority int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("catalog %s already registered", name)
	}
	r.factories[name] = factory
	r.priorities[name] = priority
	return nil
}

// Build constructs the named catalog with the given settings.
func (r *Registry) Build(name string, settings map[string]string) (Catalog, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("catalog %s not registered", name)
	}
	catalog, err := factory(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to configure catalog %s: %w", name, err)
	}
	return catalog, nil
}

// List returns the registered catalog names, highest priority first.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if r.priorities[names[i]] != r.priorities[names[j]] {
			return r.priorities[names[i]] > r.priorities[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
