// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Errors returned by registry lookups.
var (
	// ErrNoBackend is returned when no registered backend is available.
	ErrNoBackend = errors.New("native: no backend available")

	// ErrUnknownBackend is returned when a named backend is not registered.
	ErrUnknownBackend = errors.New("native: unknown backend")
)

// Standard priorities.
const (
	PriorityBrowser  = 100
	PrioritySoftware = 10
)

// Factory creates a Backend.
type Factory func() (Backend, error)

// Entry describes a registered backend.
type Entry struct {
	Name      string
	Priority  int // higher is preferred
	Factory   Factory
	Available func() bool
}

// Registry holds named backends ordered by priority.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty registry.
// Most code should use the package-level functions.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds a backend to the global registry, replacing any entry
// with the same name. A nil available func means always available.
//
//	func init() {
//	    native.Register("raster", native.PrioritySoftware, newBackend, nil)
//	}
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) { globalRegistry.Unregister(name) }

// List returns all registered names, highest priority first.
func List() []string { return globalRegistry.List() }

// Available returns the names of available backends, highest priority first.
func Available() []string { return globalRegistry.Available() }

// Best creates the highest-priority available backend.
func Best() (Backend, error) { return globalRegistry.Best() }

// Lookup creates the named backend.
func Lookup(name string) (Backend, error) { return globalRegistry.Lookup(name) }

// Register adds a backend to r.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &Entry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from r.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// List returns all names in r, highest priority first.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(false)
}

// Available returns available names in r, highest priority first.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(true)
}

// Best creates the first available backend that constructs without error.
func (r *Registry) Best() (Backend, error) {
	r.mu.RLock()
	names := r.sortedNames(true)
	r.mu.RUnlock()

	var lastErr error
	for _, name := range names {
		b, err := r.Lookup(name)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoBackend, lastErr)
	}
	return nil, ErrNoBackend
}

// Lookup creates the named backend.
func (r *Registry) Lookup(name string) (Backend, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}
	if !e.Available() {
		return nil, fmt.Errorf("%w: %s is unavailable", ErrNoBackend, name)
	}
	b, err := e.Factory()
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s returned no backend", ErrNoBackend, name)
	}
	return b, nil
}

// sortedNames must be called with r.mu held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	type named struct {
		name     string
		priority int
	}
	list := make([]named, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		list = append(list, named{name, e.Priority})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority > list[j].priority
		}
		return list[i].name < list[j].name
	})

	names := make([]string, len(list))
	for i, n := range list {
		names[i] = n.name
	}
	return names
}
