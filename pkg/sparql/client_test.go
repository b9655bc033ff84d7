package sparql

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statnett/cimsparql/pkg/rdf"
)

const xsd = "http://www.w3.org/2001/XMLSchema#"

func directConfig(serverURL string) ServiceConfig {
	return ServiceConfig{
		Server:  serverURL,
		RestAPI: RestAPIDirect,
		Timeout: 5 * time.Second,
	}
}

func TestExecDecodesBindings(t *testing.T) {
	const doc = `{
	  "head": {"vars": ["mrid", "sn", "name"]},
	  "results": {"bindings": [
	    {
	      "mrid": {"type": "uri", "value": "urn:uuid:abc"},
	      "sn": {"type": "literal", "value": "120.5", "datatype": "http://www.w3.org/2001/XMLSchema#double"}
	    },
	    {
	      "name": {"type": "literal", "value": "OSLO1"}
	    }
	  ]}
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/sparql-query", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("x-correlation-id"))
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	c := NewClient(directConfig(srv.URL))
	rs, err := c.Exec(context.Background(), "select * where { ?s ?p ?o }")
	require.NoError(t, err)

	assert.Equal(t, []string{"mrid", "sn", "name"}, rs.Variables)
	require.Equal(t, 2, rs.Len())

	assert.Equal(t, rdf.KindIRI, rs.Rows[0].Get("mrid").Kind())
	sn := rs.Rows[0].Get("sn")
	assert.Equal(t, rdf.KindTypedLiteral, sn.Kind())
	assert.Equal(t, "120.5", sn.Value())
	assert.Equal(t, xsd+"double", sn.Datatype())

	// Row order and unbound variables survive decoding.
	assert.False(t, rs.Rows[0].Get("name").IsBound())
	assert.Equal(t, "OSLO1", rs.Rows[1].Get("name").Value())
}

func TestExecClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "malformed query", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(directConfig(srv.URL))
	_, err := c.Exec(context.Background(), "not sparql")

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestExecRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"head":{"vars":["s"]},"results":{"bindings":[]}}`))
	}))
	defer srv.Close()

	rc := RetryConfig{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffMultiplier: 1}
	c := NewClient(directConfig(srv.URL), WithRetry(rc))

	rs, err := c.Exec(context.Background(), "select * where { ?s ?p ?o }")
	require.NoError(t, err)
	assert.Equal(t, 0, rs.Len())
	assert.Equal(t, int32(3), calls.Load())
}

func TestServiceURLs(t *testing.T) {
	tests := []struct {
		name string
		cfg  ServiceConfig
		want string
	}{
		{
			name: "rdf4j",
			cfg:  ServiceConfig{Protocol: "https", Server: "graphdb.example.com", Repo: "abot_20250101", RestAPI: RestAPIRDF4J},
			want: "https://graphdb.example.com/repositories/abot_20250101",
		},
		{
			name: "rdf4j with path",
			cfg:  ServiceConfig{Protocol: "https", Server: "example.com", Path: "sparql", Repo: "r", RestAPI: RestAPIRDF4J},
			want: "https://example.com/sparql/repositories/r",
		},
		{
			name: "blazegraph",
			cfg:  ServiceConfig{Protocol: "https", Server: "example.com", Repo: "kb", RestAPI: RestAPIBlazegraph},
			want: "https://example.com/bigdata/namespace/kb/sparql",
		},
		{
			name: "direct",
			cfg:  ServiceConfig{Server: "http://localhost:8080/sparql", RestAPI: RestAPIDirect},
			want: "http://localhost:8080/sparql",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.URL())
		})
	}
}

func TestNamespaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/namespaces"))
		_, _ = w.Write([]byte("prefix,namespace\ncim,http://iec.ch/TC57/2013/CIM-schema-cim16#\nxsd,http://www.w3.org/2001/XMLSchema#\n"))
	}))
	defer srv.Close()

	u := strings.TrimPrefix(srv.URL, "http://")
	c := NewClient(ServiceConfig{Protocol: "http", Server: u, Repo: "LATEST", RestAPI: RestAPIRDF4J, Timeout: 5 * time.Second})

	ns, err := c.Namespaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://iec.ch/TC57/2013/CIM-schema-cim16#", ns["cim"])
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#", ns["xsd"])
}

func TestNamespacesFallbackForBlazegraph(t *testing.T) {
	c := NewClient(ServiceConfig{Protocol: "https", Server: "unreachable", Repo: "kb", RestAPI: RestAPIBlazegraph})
	ns, err := c.Namespaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultNamespaces(), ns)
}

func TestDescribePredicateDatatypes(t *testing.T) {
	const cim = "http://iec.ch/TC57/2013/CIM-schema-cim16#"
	doc := `{
	  "head": {"vars": ["predicate", "dataType", "primitive", "range"]},
	  "results": {"bindings": [
	    {
	      "predicate": {"type": "uri", "value": "` + cim + `RotatingMachine.ratedS"},
	      "dataType": {"type": "uri", "value": "` + cim + `ApparentPower"},
	      "primitive": {"type": "uri", "value": "` + cim + `Float"}
	    },
	    {
	      "predicate": {"type": "uri", "value": "` + cim + `ACDCTerminal.connected"},
	      "range": {"type": "uri", "value": "` + xsd + `boolean"}
	    },
	    {
	      "predicate": {"type": "uri", "value": "` + cim + `Terminal.TopologicalNode"},
	      "range": {"type": "uri", "value": "` + cim + `TopologicalNode"}
	    },
	    {
	      "predicate": {"type": "uri", "value": "` + cim + `Unknown.attr"}
	    }
	  ]}
	}`

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotQuery = string(body)
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	c := NewClient(directConfig(srv.URL))
	described, err := c.DescribePredicateDatatypes(context.Background(), []string{
		cim + "RotatingMachine.ratedS",
		cim + "ACDCTerminal.connected",
		cim + "Terminal.TopologicalNode",
		cim + "Unknown.attr",
	})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "VALUES ?predicate")
	assert.Equal(t, []string{cim + "Float"}, described[cim+"RotatingMachine.ratedS"],
		"datatype class reduces to its primitive")
	assert.Equal(t, []string{xsd + "boolean"}, described[cim+"ACDCTerminal.connected"])
	assert.Empty(t, described[cim+"Terminal.TopologicalNode"], "object property keeps an empty datatype list")
	_, present := described[cim+"Unknown.attr"]
	assert.False(t, present, "predicate without ontology data must stay absent")
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(&HTTPError{StatusCode: 400}))
	assert.False(t, IsRetryable(&HTTPError{StatusCode: 404}))
	assert.True(t, IsRetryable(&HTTPError{StatusCode: 429}))
	assert.True(t, IsRetryable(&HTTPError{StatusCode: 503}))
	assert.True(t, IsRetryable(errors.New("connection reset")))
}
