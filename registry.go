// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drawable

import (
	"errors"
	"sort"
	"sync"
)

// FactoryProvider produces an ImplFactory. Providers run when a caller
// asks for the backend, not at registration time, so a provider may
// perform device setup and return an error when that fails.
type FactoryProvider func() (ImplFactory, error)

// BackendEntry describes a registered surface backend.
type BackendEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: GPU backends
	//   - 10: pure software backends
	Priority int

	// Provider produces the backend's factory.
	Provider FactoryProvider

	// Available reports if the backend is usable on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered surface backends.
//
// The registry lets backend packages register themselves without changes
// to the core package: the software backend registers in its init, the
// wgpu backend registers once it is handed a device.
//
// Example registration:
//
//	func init() {
//	    drawable.RegisterBackend("software", 10, provider, nil)
//	}
//
// Example usage:
//
//	factory, err := drawable.FactoryByName("software")
//	// or auto-select the best available:
//	factory, err := drawable.DefaultFactory()
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*BackendEntry
}

// NewRegistry creates an empty registry. Most code should use the global
// registry via RegisterBackend and DefaultFactory.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*BackendEntry),
	}
}

// RegisterBackend adds a backend to the global registry.
//
// If available is nil the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func RegisterBackend(name string, priority int, provider FactoryProvider, available func() bool) {
	globalRegistry.Register(name, priority, provider, available)
}

// UnregisterBackend removes a backend from the global registry.
func UnregisterBackend(name string) {
	globalRegistry.Unregister(name)
}

// Backends returns all registered backend names sorted by priority
// (highest first).
func Backends() []string {
	return globalRegistry.List()
}

// AvailableBackends returns names of all available backends sorted by
// priority.
func AvailableBackends() []string {
	return globalRegistry.Available()
}

// Backend returns information about a specific backend.
func Backend(name string) (*BackendEntry, bool) {
	return globalRegistry.Get(name)
}

// DefaultFactory returns a factory from the best available backend.
func DefaultFactory() (ImplFactory, error) {
	return globalRegistry.DefaultFactory()
}

// FactoryByName returns the factory of a specific named backend.
func FactoryByName(name string) (ImplFactory, error) {
	return globalRegistry.FactoryByName(name)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, provider FactoryProvider, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*BackendEntry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &BackendEntry{
		Name:      name,
		Priority:  priority,
		Provider:  provider,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific backend.
func (r *Registry) Get(name string) (*BackendEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	return &entryCopy, true
}

// DefaultFactory returns a factory from the best available backend,
// trying each available backend in priority order.
func (r *Registry) DefaultFactory() (ImplFactory, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		factory, err := r.FactoryByName(name)
		if err == nil {
			return factory, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoBackendAvailable
}

// FactoryByName returns the factory of a specific backend.
func (r *Registry) FactoryByName(name string) (ImplFactory, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	return entry.Provider()
}

// sortedNames returns backend names sorted by priority (highest first).
// If onlyAvailable is true, filters to available backends only.
// Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no surface backends are
	// registered or available on the current system.
	ErrNoBackendAvailable = errors.New("drawable: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "drawable: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "drawable: backend unavailable: " + e.Name
}
