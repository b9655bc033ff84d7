// Package sparql implements the query-executor collaborator: an HTTP client
// for RDF4J-compatible triple stores (GraphDB, Blazegraph, plain SPARQL
// endpoints) that runs select queries and returns raw bindings as RDF terms.
// Retries, circuit breaking and authentication live here; everything above
// this package is purely computational.
package sparql

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// RestAPI selects the store's REST flavor.
type RestAPI string

const (
	// RestAPIRDF4J covers GraphDB and any RDF4J-compatible server.
	RestAPIRDF4J RestAPI = "RDF4J"
	// RestAPIBlazegraph is the Blazegraph namespace layout.
	RestAPIBlazegraph RestAPI = "BLAZEGRAPH"
	// RestAPIDirect treats the server value as a complete SPARQL endpoint URL.
	RestAPIDirect RestAPI = "DIRECT_SPARQL_ENDPOINT"
)

// ServiceConfig describes one SPARQL service. The zero value is completed
// from the GRAPHDB_* environment variables by DefaultServiceConfig.
type ServiceConfig struct {
	Repo     string
	Protocol string
	Server   string
	Path     string
	User     string
	Password string
	Token    string
	RestAPI  RestAPI

	// Standard RDF4J request parameters.
	Distinct bool
	Infer    bool
	Limit    int
	Offset   int

	Timeout time.Duration
}

// DefaultServiceConfig builds a config from the conventional environment
// variables, matching how the service is addressed in CI and operations.
func DefaultServiceConfig() ServiceConfig {
	cfg := ServiceConfig{
		Repo:     envOr("GRAPHDB_REPO", "LATEST"),
		Protocol: "https",
		Server:   envOr("GRAPHDB_SERVER", "127.0.0.1:7200"),
		User:     os.Getenv("GRAPHDB_USER"),
		Password: os.Getenv("GRAPHDB_USER_PASSWD"),
		Token:    os.Getenv("GRAPHDB_TOKEN"),
		RestAPI:  RestAPI(envOr("SPARQL_REST_API", string(RestAPIRDF4J))),
		Timeout:  30 * time.Second,
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// URL returns the query endpoint for this service.
func (c ServiceConfig) URL() string {
	switch c.RestAPI {
	case RestAPIBlazegraph:
		return fmt.Sprintf("%s://%s/bigdata/namespace/%s/sparql", c.Protocol, c.Server, c.Repo)
	case RestAPIDirect:
		return c.Server
	default:
		base := fmt.Sprintf("%s://%s/", c.Protocol, c.Server)
		if c.Path != "" {
			base += c.Path + "/"
		}
		return base + "repositories/" + c.Repo
	}
}

// NamespacesURL returns the RDF4J namespaces endpoint.
func (c ServiceConfig) NamespacesURL() string {
	return c.URL() + "/namespaces"
}

// QueryValues renders the RDF4J request parameters.
func (c ServiceConfig) QueryValues() url.Values {
	v := url.Values{}
	if c.Distinct {
		v.Set("distinct", "true")
	}
	if c.Infer {
		v.Set("infer", "true")
	}
	if c.Limit > 0 {
		v.Set("limit", strconv.Itoa(c.Limit))
	}
	if c.Offset > 0 {
		v.Set("offset", strconv.Itoa(c.Offset))
	}
	return v
}
