// Package highlight holds the shared highlight state that lets the
// presentation layer visually emphasize the providers and plans the assistant
// just mentioned. It is an explicit collaborator injected where needed, not
// ambient global state: the assistant writes through Set/Clear and the API
// layer reads through Snapshot.
package highlight

import "sync"

// Registry is a concurrency-safe set of currently highlighted provider and
// plan identifiers. The zero value via New is empty and ready to use.
type Registry struct {
	mu        sync.RWMutex
	providers []string
	plans     []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Set replaces the highlighted providers and plans. Nil slices are stored as
// empty so readers never see nil.
func (r *Registry) Set(providers, plans []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers = append([]string(nil), providers...)
	r.plans = append([]string(nil), plans...)
}

// Clear removes all highlights.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers = nil
	r.plans = nil
}

// Snapshot returns copies of the current highlight lists. Never nil.
func (r *Registry) Snapshot() (providers, plans []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers = make([]string, len(r.providers))
	copy(providers, r.providers)
	plans = make([]string, len(r.plans))
	copy(plans, r.plans)
	return providers, plans
}

// IsProviderHighlighted reports whether a provider is currently highlighted.
func (r *Registry) IsProviderHighlighted(providerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.providers {
		if id == providerID {
			return true
		}
	}
	return false
}

// IsPlanHighlighted reports whether a plan is currently highlighted.
func (r *Registry) IsPlanHighlighted(planID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.plans {
		if id == planID {
			return true
		}
	}
	return false
}
