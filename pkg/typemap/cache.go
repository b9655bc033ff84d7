package typemap

import (
	"context"
	"sync"
)

// CachedResolver resolves the type map for a connected store at most once
// and serves the immutable result to every subsequent caller. Population is
// guarded so concurrent first use issues a single ontology round-trip; after
// that the map is read-only and shared without locking.
type CachedResolver struct {
	resolver   *Resolver
	predicates []string

	once sync.Once
	m    TypeMap
	err  error
}

// NewCachedResolver wraps a resolver with at-most-once population for a
// fixed predicate set, typically every predicate the query catalog projects.
func NewCachedResolver(resolver *Resolver, predicates []string) *CachedResolver {
	return &CachedResolver{resolver: resolver, predicates: predicates}
}

// TypeMap returns the cached map, populating it on first use. A population
// failure is sticky: the session is connected to a store whose ontology
// could not be read and every caller sees the same error.
func (c *CachedResolver) TypeMap(ctx context.Context) (TypeMap, error) {
	c.once.Do(func() {
		c.m, c.err = c.resolver.ResolveTypes(ctx, c.predicates)
	})
	return c.m, c.err
}
