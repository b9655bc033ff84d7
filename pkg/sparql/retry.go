package sparql

import (
	"errors"
	"math"
	"net/http"
	"time"
)

// RetryConfig holds the backoff policy for transient store failures.
type RetryConfig struct {
	// MaxRetries is the number of attempts after the first (default 3).
	MaxRetries int
	// InitialDelay before the first retry (default 1s).
	InitialDelay time.Duration
	// MaxDelay caps the exponential backoff (default 60s).
	MaxDelay time.Duration
	// BackoffMultiplier for exponential growth (default 2.0).
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default backoff policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialDelay:      time.Second,
		MaxDelay:          60 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Delay returns the backoff before the given retry attempt (1-based).
func (c RetryConfig) Delay(attempt int) time.Duration {
	delay := float64(c.InitialDelay) * math.Pow(c.BackoffMultiplier, float64(attempt-1))
	if delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}
	return time.Duration(delay)
}

// IsRetryable reports whether a query failure is worth retrying. Server
// errors and throttling are; client errors (bad query, auth) are not.
// Transport errors without a status code are treated as transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 || httpErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}
