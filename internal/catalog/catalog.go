// Package catalog holds the static plan, provider, Q&A, and premium datasets
// and exposes the read-only lookup surface the rest of the service is built
// on. Datasets are loaded from JSON files, validated against embedded schemas,
// and swapped atomically on reload — readers always see a consistent snapshot.
package catalog

import (
	"strings"
	"sync"
)

// PlanOrder is the fixed display order used by list and comparison views.
// Plans not in this list (none today) would sort after it in file order.
var PlanOrder = []string{
	"CP-ADVANCE-01",
	"CP-HDHP-02",
	"CP-STANDARD-03",
	"CP-ADVANCE-PLUS-04",
	"CP-HIGH-05",
}

// dataset is one immutable snapshot of all four files. A reload builds a new
// dataset and swaps it under the write lock; it is never mutated in place.
type dataset struct {
	plans         []Plan
	plansByID     map[string]Plan
	providers     []Provider
	providersByID map[string]Provider
	qa            []QAEntry
	premiums      PremiumData
}

// Catalog is the concurrency-safe holder for the current dataset snapshot.
type Catalog struct {
	mu   sync.RWMutex
	data dataset

	dir string
}

// New builds a catalog from in-memory datasets. Production code loads from
// disk via Load; New exists for tests and embedded use.
func New(plans []Plan, providers []Provider, qa []QAEntry, premiums PremiumData) *Catalog {
	return &Catalog{data: newDataset(plans, providers, qa, premiums)}
}

// newDataset indexes the raw slices and orders plans by PlanOrder.
func newDataset(plans []Plan, providers []Provider, qa []QAEntry, premiums PremiumData) dataset {
	byID := make(map[string]Plan, len(plans))
	for _, p := range plans {
		byID[p.PlanID] = p
	}

	// Re-order plans to the fixed display order; anything unknown keeps its
	// file position after the ordered block.
	ordered := make([]Plan, 0, len(plans))
	seen := make(map[string]bool, len(PlanOrder))
	for _, id := range PlanOrder {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
			seen[id] = true
		}
	}
	for _, p := range plans {
		if !seen[p.PlanID] {
			ordered = append(ordered, p)
		}
	}

	provByID := make(map[string]Provider, len(providers))
	for _, p := range providers {
		provByID[p.ProviderID] = p
	}

	return dataset{
		plans:         ordered,
		plansByID:     byID,
		providers:     providers,
		providersByID: provByID,
		qa:            qa,
		premiums:      premiums,
	}
}

// ─── PLAN LOOKUPS ────────────────────────────────────────────────────────────

// Plans returns all plans in the fixed display order. The returned slice is a
// copy; callers may not mutate catalog state through it.
func (c *Catalog) Plans() []Plan {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Plan, len(c.data.plans))
	copy(out, c.data.plans)
	return out
}

// PlanByID looks up a plan by identifier.
func (c *Catalog) PlanByID(planID string) (Plan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.data.plansByID[planID]
	return p, ok
}

// ─── PROVIDER LOOKUPS ────────────────────────────────────────────────────────

// Providers returns all provider records in file order.
func (c *Catalog) Providers() []Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Provider, len(c.data.providers))
	copy(out, c.data.providers)
	return out
}

// ProviderByID looks up a provider by identifier.
func (c *Catalog) ProviderByID(providerID string) (Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.data.providersByID[providerID]
	return p, ok
}

// SearchProviders returns providers whose name, specialty, or city contains
// the query, case-insensitively. An empty query matches everyone.
func (c *Catalog) SearchProviders(query string) []Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Provider, 0, len(c.data.providers))
	for _, p := range c.data.providers {
		if q == "" ||
			strings.Contains(strings.ToLower(p.FullName), q) ||
			strings.Contains(strings.ToLower(p.Specialty), q) ||
			strings.Contains(strings.ToLower(p.Address.City), q) {
			out = append(out, p)
		}
	}
	return out
}

// ProvidersByPlan returns every provider that accepts the given plan.
func (c *Catalog) ProvidersByPlan(planID string) []Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Provider
	for _, p := range c.data.providers {
		for _, accepted := range p.PlansAccepted {
			if accepted == planID {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// PlansForProvider resolves a provider's accepted plan IDs to plan records.
// Unresolvable IDs are silently dropped; an unknown provider yields nil.
func (c *Catalog) PlansForProvider(providerID string) []Plan {
	c.mu.RLock()
	defer c.mu.RUnlock()

	prov, ok := c.data.providersByID[providerID]
	if !ok {
		return nil
	}
	var out []Plan
	for _, id := range prov.PlansAccepted {
		if p, ok := c.data.plansByID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// ─── Q&A CORPUS ──────────────────────────────────────────────────────────────

// QA returns the canned Q&A corpus in file order. Corpus order matters: the
// intent matcher's tie-break is first-encountered-wins.
func (c *Catalog) QA() []QAEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]QAEntry, len(c.data.qa))
	copy(out, c.data.qa)
	return out
}
