package cop

import (
	"fmt"
	"sort"
)

// Registry is the ordered set of known cops. A cop's position is its
// index: stable for the process and used to break correction ties.
type Registry struct {
	cops        []Cop
	byName      map[string]int
	departments map[string]bool
}

// NewRegistry indexes cops in the given order. Duplicate or malformed
// names are rejected.
func NewRegistry(cops ...Cop) (*Registry, error) {
	r := &Registry{
		cops:        make([]Cop, 0, len(cops)),
		byName:      make(map[string]int, len(cops)),
		departments: make(map[string]bool),
	}
	for _, c := range cops {
		name := c.Name()
		if !IsQualified(name) {
			return nil, fmt.Errorf("cop name %q is not Department/Name", name)
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("cop %q registered twice", name)
		}
		r.byName[name] = len(r.cops)
		r.cops = append(r.cops, c)
		r.departments[Department(name)] = true
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics; for static cop lists.
func MustRegistry(cops ...Cop) *Registry {
	r, err := NewRegistry(cops...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Len() int { return len(r.cops) }

// Cop returns the cop at index i.
func (r *Registry) Cop(i int) Cop { return r.cops[i] }

// Cops returns all cops in index order. Do not modify.
func (r *Registry) Cops() []Cop { return r.cops }

// Index returns the index of a fully qualified name.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.byName[name]
	return i, ok
}

// Has reports whether name is a registered cop.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// HasDepartment reports whether any registered cop lives in dept.
func (r *Registry) HasDepartment(dept string) bool { return r.departments[dept] }

// Names returns cop names sorted alphabetically.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cops))
	for _, c := range r.cops {
		out = append(out, c.Name())
	}
	sort.Strings(out)
	return out
}
