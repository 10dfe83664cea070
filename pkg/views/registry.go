package views

import (
	"fmt"

	"github.com/classsight/insight-engine/pkg/apperrors"
)

// Registry provides lookup over the fixed view catalog. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	ordered []Descriptor
	byName  map[string]*Descriptor
}

// NewRegistry builds the registry from the fixed catalog. It panics on a
// malformed catalog since that is a programmer error caught at startup.
func NewRegistry() *Registry {
	r := &Registry{
		ordered: catalog,
		byName:  make(map[string]*Descriptor, len(catalog)),
	}
	for i := range r.ordered {
		d := &r.ordered[i]
		if _, dup := r.byName[d.Name]; dup {
			panic(fmt.Sprintf("views: duplicate catalog entry %q", d.Name))
		}
		if len(d.PrimaryIntents) == 0 {
			panic(fmt.Sprintf("views: catalog entry %q has no primary intents", d.Name))
		}
		if d.Priority < 1 {
			panic(fmt.Sprintf("views: catalog entry %q has priority %d", d.Name, d.Priority))
		}
		r.byName[d.Name] = d
	}
	if _, ok := r.byName[DefaultViewName]; !ok {
		panic(fmt.Sprintf("views: default view %q missing from catalog", DefaultViewName))
	}
	return r
}

// Get returns the descriptor for name, or ErrUnknownView.
func (r *Registry) Get(name string) (*Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownView, name)
	}
	return d, nil
}

// All returns every descriptor in catalog order.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, len(r.ordered))
	for i := range r.ordered {
		out[i] = &r.ordered[i]
	}
	return out
}

// Default returns the fallback view used when no intent matches.
func (r *Registry) Default() *Descriptor {
	return r.byName[DefaultViewName]
}

// Len returns the number of catalog entries.
func (r *Registry) Len() int {
	return len(r.ordered)
}
