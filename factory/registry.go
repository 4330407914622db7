package factory

import "slices"

// ModelOption is one selectable model in a provider's catalog.
type ModelOption struct {
	// ID is the value handed to the backend.
	ID string `json:"id"`
	// Name is the display label.
	Name string `json:"name"`
}

// Provider describes one registry entry.
type Provider struct {
	Name      string        `json:"name"`
	Handler   Handler       `json:"-"`
	LLMModels []ModelOption `json:"llmModels"`
	STTModels []ModelOption `json:"sttModels"`
}

// clone returns p with its own copies of the model catalogs.
func (p Provider) clone() Provider {
	p.LLMModels = slices.Clone(p.LLMModels)
	p.STTModels = slices.Clone(p.STTModels)
	return p
}

// Entry pairs a provider id with its descriptor.
type Entry struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`
}

// Registry is an insertion-ordered, read-only table of providers.
type Registry struct {
	order   []string
	entries map[string]Provider
}

// NewRegistry builds a registry from entries in the given order. A repeated
// id keeps its first position and its last descriptor. Model catalogs are
// copied; later changes to the caller's slices do not reach the registry.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Provider, len(entries))}
	for _, e := range entries {
		if _, ok := r.entries[e.ID]; !ok {
			r.order = append(r.order, e.ID)
		}
		r.entries[e.ID] = e.Provider.clone()
	}
	return r
}

// Lookup returns a copy of the descriptor for id.
func (r *Registry) Lookup(id string) (Provider, bool) {
	p, ok := r.entries[id]
	if !ok {
		return Provider{}, false
	}
	return p.clone(), true
}

// IDs returns provider ids in registry order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// Len returns the number of providers.
func (r *Registry) Len() int { return len(r.order) }

// Entries returns a copy of every entry in registry order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Entry{ID: id, Provider: r.entries[id].clone()})
	}
	return out
}

// With returns a new registry with id set to p. An existing id keeps its
// position; a new id is appended. The receiver is not modified.
func (r *Registry) With(id string, p Provider) *Registry {
	return NewRegistry(append(r.Entries(), Entry{ID: id, Provider: p})...)
}
