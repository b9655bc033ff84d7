// Package typemap discovers the semantic type of queried predicates from the
// ontology itself rather than from a static schema. A resolver asks the
// store, in one batched call, which datatype each predicate declares and
// classifies the answer into the closed semantic-type set.
package typemap

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/statnett/cimsparql/pkg/rdf"
)

// OntologyClient is the introspection boundary to the store. For each
// requested predicate IRI the result maps the predicate to the datatype IRIs
// its ontology entries declare. A predicate present with no datatypes is an
// object property (a relation to another resource). A predicate missing from
// the map has no ontology entry at all.
type OntologyClient interface {
	DescribePredicateDatatypes(ctx context.Context, predicates []string) (map[string][]string, error)
}

// TypeMap maps predicate IRIs to their resolved semantic type.
type TypeMap map[string]rdf.SemanticType

// Lookup returns the semantic type for a predicate and whether it is known.
func (m TypeMap) Lookup(predicate string) (rdf.SemanticType, bool) {
	st, ok := m[predicate]
	return st, ok
}

// ResolutionError is returned when the ontology is unreachable, malformed,
// or yields conflicting datatypes for one predicate. Conflicts are never
// resolved by silently picking a winner.
type ResolutionError struct {
	Predicate string
	Reason    string
	Err       error
}

func (e *ResolutionError) Error() string {
	if e.Predicate != "" {
		return fmt.Sprintf("resolving datatype of <%s>: %s", e.Predicate, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("datatype resolution failed: %v", e.Err)
	}
	return "datatype resolution failed: " + e.Reason
}

// Unwrap returns the underlying error, if any.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support for ResolutionError.
func (e *ResolutionError) Is(target error) bool {
	_, ok := target.(*ResolutionError)
	return ok
}

// Resolver turns predicate sets into type maps via a single batched
// ontology round-trip. It holds no mutable state and is safe for concurrent
// use.
type Resolver struct {
	ontology OntologyClient
	logger   *slog.Logger
}

// NewResolver creates a resolver. A nil logger falls back to slog.Default.
func NewResolver(ontology OntologyClient, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{ontology: ontology, logger: logger}
}

// ResolveTypes resolves the semantic type of every predicate in the set.
//
// Predicates whose ontology entry declares a datatype are classified with
// the fixed XSD/CIM table. Object properties resolve to URIReference.
// Predicates absent from the ontology default to String; the fallback is
// logged as an observable event. Conflicting datatypes across ontology
// entries raise ResolutionError.
func (r *Resolver) ResolveTypes(ctx context.Context, predicates []string) (TypeMap, error) {
	if len(predicates) == 0 {
		return TypeMap{}, nil
	}

	// Deterministic request order keeps the batched query reproducible.
	sorted := append([]string(nil), predicates...)
	sort.Strings(sorted)

	described, err := r.ontology.DescribePredicateDatatypes(ctx, sorted)
	if err != nil {
		return nil, &ResolutionError{Reason: "ontology unreachable", Err: err}
	}

	out := make(TypeMap, len(sorted))
	for _, pred := range sorted {
		datatypes, inOntology := described[pred]
		if !inOntology {
			r.logger.Warn("predicate missing from ontology, defaulting to String",
				"predicate", pred)
			out[pred] = rdf.TypeString
			continue
		}
		if len(datatypes) == 0 {
			out[pred] = rdf.TypeURIReference
			continue
		}

		st, err := classifyAll(pred, datatypes)
		if err != nil {
			return nil, err
		}
		out[pred] = st
	}
	return out, nil
}

// classifyAll classifies every declared datatype and requires them to agree
// on a single semantic type.
func classifyAll(predicate string, datatypes []string) (rdf.SemanticType, error) {
	var (
		resolved rdf.SemanticType
		have     bool
	)
	for _, dt := range datatypes {
		st, ok := rdf.ClassifyDatatype(dt)
		if !ok {
			return 0, &ResolutionError{
				Predicate: predicate,
				Reason:    fmt.Sprintf("unclassifiable datatype <%s>", dt),
			}
		}
		if have && st != resolved {
			return 0, &ResolutionError{
				Predicate: predicate,
				Reason: fmt.Sprintf("conflicting datatypes: %s vs %s",
					resolved, st),
			}
		}
		resolved, have = st, true
	}
	return resolved, nil
}
