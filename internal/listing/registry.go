package listing

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry holds the load de-duplication and the in-flight change marker
// per entity. Every controller built with the same registry shares them, so
// two views of one entity issue a single list request and never run two
// changes at once.
type Registry struct {
	loads singleflight.Group

	mu      sync.Mutex
	pending map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pending: map[string]bool{}}
}

// acquire marks entity as having a change in flight. It reports false when
// one already is.
func (r *Registry) acquire(entity string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending[entity] {
		return false
	}
	r.pending[entity] = true
	return true
}

func (r *Registry) release(entity string) {
	r.mu.Lock()
	delete(r.pending, entity)
	r.mu.Unlock()
}

// Pending reports whether entity has a change in flight.
func (r *Registry) Pending(entity string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending[entity]
}

// loadKey scopes a shared load to the entity and its list parameters.
func loadKey(entity string, params map[string]string) string {
	if len(params) == 0 {
		return entity
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(entity)
	for i, k := range keys {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(k + "=" + params[k])
	}
	return b.String()
}
