// Package resilience wraps flaky operations: retry with backoff for
// network calls, a connectivity monitor, a storage wrapper that survives
// quota exhaustion, and recovery of corrupted stored values.
package resilience

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"strings"
	"time"

	"github.com/anhdng/songngu/internal/logger"
)

// Retry defaults.
const (
	DefaultMaxAttempts    = 3
	DefaultBaseDelay      = time.Second
	DefaultMaxDelay       = 10 * time.Second
	DefaultMultiplier     = 2.0
	DefaultMaxJitter      = time.Second
	DefaultAttemptTimeout = 10 * time.Second
)

// RetryConfig tunes Retry. Zero values select defaults.
type RetryConfig struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	Multiplier     float64
	MaxJitter      time.Duration
	AttemptTimeout time.Duration

	// RetryableCodes is an allow-list matched against CodedError codes.
	RetryableCodes []string

	// Offline reports whether the network is currently known-offline.
	// Any failure while offline is treated as retryable. Optional.
	Offline func() bool

	// rand is swapped in tests for a deterministic jitter source.
	rand func(n int64) int64
}

func (c *RetryConfig) fill() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = DefaultMaxDelay
	}
	if c.Multiplier <= 0 {
		c.Multiplier = DefaultMultiplier
	}
	if c.MaxJitter < 0 {
		c.MaxJitter = 0
	} else if c.MaxJitter == 0 {
		c.MaxJitter = DefaultMaxJitter
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = DefaultAttemptTimeout
	}
	if c.rand == nil {
		c.rand = rand.Int63n
	}
}

// retryableStatuses are the HTTP statuses safe to retry.
var retryableStatuses = map[int]bool{
	408: true, 429: true, 500: true, 502: true, 503: true, 504: true,
}

// retryableMessages are substrings marking transient transport failures.
var retryableMessages = []string{
	"network", "timeout", "timed out", "connection", "fetch", "cors",
	"temporarily unavailable",
}

// Retryable classifies err as transient under cfg's policy.
func Retryable(err error, cfg RetryConfig) bool {
	if err == nil {
		return false
	}
	if cfg.Offline != nil && cfg.Offline() {
		return true
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		for _, code := range cfg.RetryableCodes {
			if coded.Code == code {
				return true
			}
		}
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return retryableStatuses[httpErr.Status]
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range retryableMessages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// Retry runs op until it succeeds, fails terminally, or attempts run out.
//
// Each attempt gets its own timeout derived from ctx. Delay between
// attempts grows as base*multiplier^(attempt-1), capped at MaxDelay, plus
// random jitter. A non-retryable error propagates immediately; after the
// last attempt the last error is returned as is.
func Retry(ctx context.Context, log logger.Logger, op func(context.Context) error, cfg RetryConfig) error {
	cfg.fill()

	var lastErr error
	delay := cfg.BaseDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.AttemptTimeout)
		err := op(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}
		lastErr = err

		if !Retryable(err, cfg) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		wait := delay
		if cfg.MaxJitter > 0 {
			wait += time.Duration(cfg.rand(int64(cfg.MaxJitter)))
		}
		log.Warn("operation failed, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("wait", wait),
			logger.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return lastErr
}
