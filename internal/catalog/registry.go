package catalog

import (
	"sort"
	"sync"
)

// Registry maps template keys ("<case id>/<variant>") to renderers or
// interactive demos. Registrations are owned: Unregister only removes a
// key if it still maps to the value being unregistered, so a replacement
// registered under the same key survives the old owner's cleanup.
type Registry[T comparable] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// NewRegistry returns an empty registry.
func NewRegistry[T comparable]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}

// Register maps key to v. Empty keys are ignored.
func (r *Registry[T]) Register(key string, v T) {
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = v
}

// Unregister removes key if it is still mapped to v.
func (r *Registry[T]) Unregister(key string, v T) {
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.entries[key]; ok && current == v {
		delete(r.entries, key)
	}
}

// Get returns the value for key.
func (r *Registry[T]) Get(key string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok
}

// Has reports whether key is registered.
func (r *Registry[T]) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry[T]) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
