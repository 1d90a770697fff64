package verb

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is an in-memory verb catalog keyed by id.
type Registry struct {
	mu    sync.RWMutex
	verbs map[int]Verb
}

// NewRegistry creates a registry holding the given verbs.
func NewRegistry(verbs ...Verb) (*Registry, error) {
	r := &Registry{verbs: make(map[int]Verb, len(verbs))}
	for _, v := range verbs {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a verb. Registering an identical verb twice is a no-op.
func (r *Registry) Register(v Verb) error {
	if v.ID <= 0 || strings.TrimSpace(v.Infinitive) == "" {
		return fmt.Errorf("%w: id=%d infinitive=%q", ErrInvalidInput, v.ID, v.Infinitive)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.verbs[v.ID]; ok {
		if existing == v {
			return nil
		}
		return fmt.Errorf("%w: cannot register %q with id %d (clashing with %q)", ErrVerbConflict, v.Infinitive, v.ID, existing.Infinitive)
	}
	r.verbs[v.ID] = v
	return nil
}

// Lookup returns the verb registered under id.
func (r *Registry) Lookup(id int) (Verb, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.verbs[id]
	if !ok {
		return Verb{}, fmt.Errorf("%w: id %d", ErrUnknownVerb, id)
	}
	return v, nil
}

// List returns all registered verbs ordered by id.
func (r *Registry) List() []Verb {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Verb, 0, len(r.verbs))
	for _, v := range r.verbs {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
