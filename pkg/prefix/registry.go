// Package prefix holds the prefix-to-namespace mapping discovered from a
// connected store. The registry is populated once at connection time and is
// read-only afterwards, so concurrent template expansions can share it
// without locking.
package prefix

import (
	"fmt"
	"sort"
	"sync"
)

// ConflictError is returned when a prefix is registered a second time with a
// different namespace IRI. Re-registering the identical pair is a no-op.
type ConflictError struct {
	Prefix   string
	Existing string
	Proposed string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("prefix %q already registered as <%s>, refusing <%s>", e.Prefix, e.Existing, e.Proposed)
}

// Is implements errors.Is support for ConflictError.
func (e *ConflictError) Is(target error) bool {
	_, ok := target.(*ConflictError)
	return ok
}

// UnknownPrefixError is returned when resolving a prefix that was never
// registered.
type UnknownPrefixError struct {
	Prefix string
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("unknown prefix %q", e.Prefix)
}

// Is implements errors.Is support for UnknownPrefixError.
func (e *UnknownPrefixError) Is(target error) bool {
	_, ok := target.(*UnknownPrefixError)
	return ok
}

// Registry maps short prefixes (cim, SN, xsd, ...) to namespace IRIs.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{namespaces: make(map[string]string)}
}

// FromMap builds a registry from an existing prefix map, e.g. the default
// namespace set shipped for stores without a namespaces endpoint.
func FromMap(namespaces map[string]string) *Registry {
	r := NewRegistry()
	for p, iri := range namespaces {
		r.namespaces[p] = iri
	}
	return r
}

// Register inserts a prefix. Registering the same pair twice is idempotent;
// registering the same prefix with a different IRI fails with ConflictError.
func (r *Registry) Register(prefix, iri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.namespaces[prefix]; ok {
		if existing == iri {
			return nil
		}
		return &ConflictError{Prefix: prefix, Existing: existing, Proposed: iri}
	}
	r.namespaces[prefix] = iri
	return nil
}

// Resolve returns the namespace IRI for a prefix.
func (r *Registry) Resolve(prefix string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	iri, ok := r.namespaces[prefix]
	if !ok {
		return "", &UnknownPrefixError{Prefix: prefix}
	}
	return iri, nil
}

// Has reports whether the prefix is registered.
func (r *Registry) Has(prefix string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.namespaces[prefix]
	return ok
}

// All returns a snapshot of the prefix map for template expansion. The
// snapshot is owned by the caller.
func (r *Registry) All() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.namespaces))
	for p, iri := range r.namespaces {
		out[p] = iri
	}
	return out
}

// Prefixes returns the registered prefixes in sorted order.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.namespaces))
	for p := range r.namespaces {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
