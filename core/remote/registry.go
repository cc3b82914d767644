package remote

import (
	"sort"
	"sync"
)

// LinkRegistry is the set of stylesheet keys already inserted. It only grows.
type LinkRegistry struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewLinkRegistry creates an empty registry.
func NewLinkRegistry() *LinkRegistry {
	return &LinkRegistry{keys: make(map[string]struct{})}
}

// Claim registers key and reports whether the caller registered it first.
func (r *LinkRegistry) Claim(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.keys[key]; ok {
		return false
	}
	r.keys[key] = struct{}{}
	return true
}

// Has reports whether key was registered.
func (r *LinkRegistry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keys[key]
	return ok
}

// Keys returns a sorted snapshot of registered keys.
func (r *LinkRegistry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.keys))
	for k := range r.keys {
		keys = append(keys, k)
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered keys.
func (r *LinkRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}
