package sparql

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultNamespaces is the built-in prefix set used for stores that do not
// expose a namespaces endpoint (Blazegraph, plain SPARQL endpoints).
func DefaultNamespaces() map[string]string {
	return map[string]string{
		"rdf":               "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":              "http://www.w3.org/2000/01/rdf-schema#",
		"owl":               "http://www.w3.org/2002/07/owl#",
		"xsd":               "http://www.w3.org/2001/XMLSchema#",
		"cim":               "http://iec.ch/TC57/2013/CIM-schema-cim16#",
		"cims":              "http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#",
		"md":                "http://iec.ch/TC57/61970-552/ModelDescription/1#",
		"entsoe":            "http://entsoe.eu/CIM/SchemaExtension/3/1#",
		"entsoeSecretariat": "http://entsoe.eu/Secretariat/ProfileExtension/1#",
		"SN":                "http://www.statnett.no/CIM-schema-cim15-extension#",
		"ALG":               "http://www.alstom.com/grid/CIM-schema-cim15-extension#",
	}
}

// Namespaces fetches the store's prefix map. RDF4J-compatible stores expose
// it on the /namespaces endpoint as CSV; other flavors fall back to the
// built-in defaults, which callers may extend through the registry.
func (c *Client) Namespaces(ctx context.Context) (map[string]string, error) {
	if c.cfg.RestAPI != RestAPIRDF4J {
		return DefaultNamespaces(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.NamespacesURL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching namespaces: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseNamespacesCSV(string(body))
}

// parseNamespacesCSV reads the two-column prefix,namespace document the
// RDF4J rest api returns, skipping the header line.
func parseNamespacesCSV(body string) (map[string]string, error) {
	out := make(map[string]string)
	lines := strings.Fields(body)
	if len(lines) == 0 {
		return out, nil
	}
	for _, line := range lines[1:] {
		prefix, namespace, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("malformed namespaces line %q", line)
		}
		out[prefix] = namespace
	}
	return out, nil
}
