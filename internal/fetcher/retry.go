package fetcher

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retrier handles retry logic with exponential backoff
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// RetrierOptions contains options for creating a Retrier
type RetrierOptions struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// NewRetrier creates a new Retrier with the given options
func NewRetrier(opts RetrierOptions) *Retrier {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 500 * time.Millisecond
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = 10 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}

	return &Retrier{
		maxRetries:      opts.MaxRetries,
		initialInterval: opts.InitialInterval,
		maxInterval:     opts.MaxInterval,
		multiplier:      opts.Multiplier,
	}
}

// Retry executes an operation with exponential backoff
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.Multiplier = r.multiplier
	b.Reset()

	wrapped := backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.maxRetries)), ctx)
	return backoff.Retry(operation, wrapped)
}

// ShouldRetryStatus returns true if the HTTP status code should be retried.
// Client errors, 404 in particular, are never retried: a missing ref is a
// signal the orchestrator acts on, not a transient fault.
func ShouldRetryStatus(statusCode int) bool {
	switch statusCode {
	case 429, 502, 503, 504:
		return true
	}
	return false
}
