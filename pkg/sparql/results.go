package sparql

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/statnett/cimsparql/pkg/rdf"
)

// Wire model for application/sparql-results+json.
// https://www.w3.org/TR/sparql11-results-json/
type resultJSON struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]bindingJSON `json:"bindings"`
	} `json:"results"`
}

type bindingJSON struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype"`
	Lang     string `json:"xml:lang"`
}

// DecodeResults parses a SPARQL JSON result document into a result set,
// preserving server row order. Variables a row leaves unbound are simply
// missing from its binding map.
func DecodeResults(r io.Reader) (*rdf.ResultSet, error) {
	var doc resultJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding sparql results: %w", err)
	}

	rs := &rdf.ResultSet{
		Variables: doc.Head.Vars,
		Rows:      make([]rdf.BindingRow, 0, len(doc.Results.Bindings)),
	}
	for _, binding := range doc.Results.Bindings {
		row := make(rdf.BindingRow, len(binding))
		for variable, b := range binding {
			term, err := decodeTerm(b)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", variable, err)
			}
			row[variable] = term
		}
		rs.Rows = append(rs.Rows, row)
	}
	return rs, nil
}

func decodeTerm(b bindingJSON) (rdf.Term, error) {
	switch b.Type {
	case "uri":
		return rdf.IRI(b.Value), nil
	case "literal", "typed-literal":
		if b.Datatype != "" {
			return rdf.TypedLiteral(b.Value, b.Datatype), nil
		}
		return rdf.Literal(b.Value), nil
	case "bnode":
		// Blank nodes are opaque references; treat them like IRIs.
		return rdf.IRI("_:" + b.Value), nil
	default:
		return rdf.Term{}, fmt.Errorf("unknown term type %q", b.Type)
	}
}
