package sparql

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/statnett/cimsparql/pkg/rdf"
)

const correlationIDHeader = "x-correlation-id"

// HTTPError reports a non-2xx response from the store.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("store returned %d: %s", e.StatusCode, e.Body)
}

// Is implements errors.Is support for HTTPError.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Client sends SPARQL queries to a single configured service. It is safe
// for concurrent use.
type Client struct {
	cfg     ServiceConfig
	http    *http.Client
	logger  *slog.Logger
	retry   RetryConfig
	breaker *gobreaker.CircuitBreaker

	correlationID string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRetry overrides the retry policy.
func WithRetry(rc RetryConfig) Option {
	return func(c *Client) { c.retry = rc }
}

// WithCorrelationID tags every request with an x-correlation-id header so
// the queries of one model session can be traced together server-side.
func WithCorrelationID(id string) Option {
	return func(c *Client) { c.correlationID = id }
}

// NewClient creates a client for the service. A circuit breaker guards the
// endpoint: a run of failures short-circuits further calls until the store
// recovers.
func NewClient(cfg ServiceConfig, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: slog.Default(),
		retry:  DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.correlationID == "" {
		c.correlationID = uuid.NewString()
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    cfg.URL(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 3 && counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("sparql endpoint circuit state changed",
				"endpoint", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// Config returns the service configuration.
func (c *Client) Config() ServiceConfig {
	return c.cfg
}

// Exec posts a select query and returns its bindings in server order.
// Retryable failures (5xx, 429, transport errors) are retried with
// exponential backoff inside the breaker.
func (c *Client) Exec(ctx context.Context, query string) (*rdf.ResultSet, error) {
	started := time.Now()
	res, err := c.breaker.Execute(func() (any, error) {
		return c.execWithRetry(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("query executed",
		"endpoint", c.cfg.URL(),
		"rows", res.(*rdf.ResultSet).Len(),
		"elapsed", time.Since(started))
	return res.(*rdf.ResultSet), nil
}

func (c *Client) execWithRetry(ctx context.Context, query string) (*rdf.ResultSet, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.retry.Delay(attempt)):
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled during retry backoff: %w", ctx.Err())
			}
			c.logger.Debug("retrying query", "attempt", attempt, "endpoint", c.cfg.URL())
		}

		rs, err := c.exec(ctx, query)
		if err == nil {
			return rs, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("query failed after %d retries: %w", c.retry.MaxRetries, lastErr)
}

func (c *Client) exec(ctx context.Context, query string) (*rdf.ResultSet, error) {
	endpoint := c.cfg.URL()
	if params := c.cfg.QueryValues().Encode(); params != "" {
		endpoint += "?" + params
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/sparql-query")
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set(correlationIDHeader, c.correlationID)
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return DecodeResults(resp.Body)
}

func (c *Client) authorize(req *http.Request) {
	switch {
	case c.cfg.Token != "":
		req.Header.Set("Authorization", c.cfg.Token)
	case c.cfg.User != "":
		req.SetBasicAuth(c.cfg.User, c.cfg.Password)
	}
}
