package httpclient

import (
	"context"
	"math/rand/v2"
	"time"
)

// RetryConfig bounds how often and how patiently a failed call is retried.
// MaxRetries counts retries after the first attempt, so a call is made at
// most MaxRetries+1 times.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration

	// ShouldRetry decides per classified error whether another attempt is
	// worthwhile. Nil means DefaultShouldRetry.
	ShouldRetry func(error) bool
}

// DefaultRetryConfig mirrors the upstream providers' tolerances: three
// retries, 100ms base delay, 5s ceiling, retrying only connection-level
// and timeout failures.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		ShouldRetry: DefaultShouldRetry,
	}
}

// DefaultShouldRetry retries network and timeout failures. A non-2xx
// response is a definitive answer from the provider and is not retried.
func DefaultShouldRetry(err error) bool {
	return IsNetworkError(err) || IsTimeoutError(err)
}

// retryDelay computes the pause before retry number attempt (0-based):
// exponential growth from BaseDelay plus up to one BaseDelay of jitter,
// capped at MaxDelay.
func retryDelay(attempt int, cfg RetryConfig) time.Duration {
	d := cfg.BaseDelay << uint(attempt)
	if d <= 0 || d > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	if cfg.BaseDelay > 0 {
		d += rand.N(cfg.BaseDelay)
	}
	if d > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return d
}

// withRetry runs fn until it succeeds, a non-retryable error occurs, or
// attempts are exhausted. It returns the last observed error rather than a
// synthetic "retries exhausted" wrapper, so the caller still sees the
// original classification. No delay follows the final attempt.
func withRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	shouldRetry := cfg.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = DefaultShouldRetry
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}

		if attempt < cfg.MaxRetries {
			select {
			case <-time.After(retryDelay(attempt, cfg)):
			case <-ctx.Done():
				return lastErr
			}
		}
	}

	return lastErr
}
