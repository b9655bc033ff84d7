package sparql

import (
	"context"
	"fmt"
	"strings"

	"github.com/statnett/cimsparql/pkg/rdf"
)

// DescribePredicateDatatypes implements the ontology introspection boundary
// of the datatype resolver. It issues one batched query asking, for each
// predicate, its declared CIM datatype and rdfs range, and sorts the
// answers into datatype declarations versus object-property relations.
//
// A CIM attribute declares cims:dataType pointing at a datatype class such
// as cim:ApparentPower; the class's value attribute carries the primitive
// (cim:Float, cim:Boolean, ...), which is what classification needs. An
// association declares only an rdfs:range pointing at another class. Ranges
// that are themselves XSD datatypes count as datatype declarations.
func (c *Client) DescribePredicateDatatypes(ctx context.Context, predicates []string) (map[string][]string, error) {
	if len(predicates) == 0 {
		return map[string][]string{}, nil
	}

	rs, err := c.Exec(ctx, describeQuery(predicates))
	if err != nil {
		return nil, fmt.Errorf("ontology introspection: %w", err)
	}

	out := make(map[string][]string)
	for _, row := range rs.Rows {
		pred := row.Get("predicate")
		if !pred.IsBound() {
			continue
		}
		// A predicate with no ontology entry at all binds neither
		// ?dataType nor ?range; it must stay absent from the map so the
		// resolver applies its logged String fallback.
		iri := pred.Value()
		dt, prim, rng := row.Get("dataType"), row.Get("primitive"), row.Get("range")
		if !dt.IsBound() && !rng.IsBound() {
			continue
		}
		if _, ok := out[iri]; !ok {
			out[iri] = []string{}
		}

		if dt.IsBound() {
			// Prefer the primitive behind the datatype class; plain
			// primitives like cim:Float have no value attribute and
			// classify directly.
			if prim.IsBound() {
				out[iri] = appendUnique(out[iri], prim.Value())
			} else {
				out[iri] = appendUnique(out[iri], dt.Value())
			}
			continue
		}
		if _, ok := rdf.ClassifyDatatype(rng.Value()); ok {
			out[iri] = appendUnique(out[iri], rng.Value())
		}
		// A non-datatype range is a relation: the predicate keeps an
		// empty datatype list and resolves to URIReference.
	}
	return out, nil
}

func describeQuery(predicates []string) string {
	var values strings.Builder
	for _, p := range predicates {
		fmt.Fprintf(&values, "<%s> ", p)
	}

	return fmt.Sprintf(`PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX cims: <http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#>
SELECT ?predicate ?dataType ?primitive ?range
WHERE {
  VALUES ?predicate { %s}
  OPTIONAL {
    ?predicate cims:dataType ?dataType .
    OPTIONAL {
      ?value rdfs:domain ?dataType .
      ?value cims:dataType ?primitive .
    }
  }
  OPTIONAL { ?predicate rdfs:range ?range . }
}`, values.String())
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
