package plugin

import (
	"fmt"
	"sync"
)

// Registry manages plugin registration and lookup. Built-in plugins register
// themselves at init time; externally loaded plugins are added by the module
// loader before generation starts.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
	order   []string
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]*Plugin),
	}
}

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same ID already exists.
func (r *Registry) Register(p *Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid plugin: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[p.ID]; exists {
		return fmt.Errorf("plugin %s already registered", p.ID)
	}
	r.plugins[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

// Get retrieves a plugin by exact ID.
func (r *Registry) Get(id string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[id]
	return p, ok
}

// Resolve retrieves a plugin by exact ID or short-form match. Exact matches
// win; otherwise the first registered plugin whose short form matches is
// returned.
func (r *Registry) Resolve(id string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.plugins[id]; ok {
		return p, true
	}
	for _, full := range r.order {
		if MatchesID(id, full) {
			return r.plugins[full], true
		}
	}
	return nil, false
}

// Has checks if a plugin matching id (full or short form) exists.
func (r *Registry) Has(id string) bool {
	_, ok := r.Resolve(id)
	return ok
}

// List returns all registered plugins in registration order.
func (r *Registry) List() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Plugin, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.plugins[id])
	}
	return out
}

// Clear removes all plugins from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plugins = make(map[string]*Plugin)
	r.order = nil
}

// globalRegistry is the default plugin registry used throughout the application.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the global plugin registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a plugin to the global registry.
func Register(p *Plugin) error {
	return globalRegistry.Register(p)
}

// MustRegister adds a plugin to the global registry and panics on error.
// Intended for built-in plugin init functions.
func MustRegister(p *Plugin) {
	if err := globalRegistry.Register(p); err != nil {
		panic(err)
	}
}
