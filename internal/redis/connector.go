// Package redis establishes the Redis connection used by the redis store
// backend. Connection attempts go through the shared retry policy, so a
// briefly unavailable Redis at boot does not kill the process while an
// authentication error fails fast.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/resilience"
)

// ConnectOptions defines the Redis connection and its retry behavior.
type ConnectOptions struct {
	Addr           string        // Redis address (ex: "localhost:6379")
	User           string        // optional username
	Password       string        // optional password
	DB             int           // Redis DB number
	DialTimeout    time.Duration // per-dial timeout
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PoolSize       int
	ConnectTimeout time.Duration // total time allowed for connection attempts
	RetryInterval  time.Duration // initial wait between retries, doubles per attempt
	MaxWait        time.Duration // cap on the wait between retries
	PingTimeout    time.Duration // timeout for each ping attempt
}

// attemptBudget bounds retry attempts by the configured total timeout; the
// context deadline is what actually ends the wait.
func (o ConnectOptions) attemptBudget() int {
	return int(o.ConnectTimeout/o.RetryInterval) + 1
}

// Connect creates a Redis client and pings it until it answers or
// ConnectTimeout is exhausted. Transient failures (refused connections,
// timeouts) retry with backoff; anything else, like a rejected password,
// returns immediately.
func Connect(opts ConnectOptions, log logger.Logger) (*goredis.Client, error) {
	if opts.ConnectTimeout <= 0 || opts.RetryInterval <= 0 || opts.PingTimeout <= 0 {
		return nil, fmt.Errorf("invalid redis retry options: connect=%v retry=%v ping=%v",
			opts.ConnectTimeout, opts.RetryInterval, opts.PingTimeout)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	log.Info("connecting to redis",
		logger.String("addr", opts.Addr),
		logger.Duration("timeout", opts.ConnectTimeout))

	attempts := 0
	err := resilience.Retry(ctx, log, func(ctx context.Context) error {
		attempts++
		return client.Ping(ctx).Err()
	}, resilience.RetryConfig{
		MaxAttempts:    opts.attemptBudget(),
		BaseDelay:      opts.RetryInterval,
		MaxDelay:       opts.MaxWait,
		AttemptTimeout: opts.PingTimeout,
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unavailable at %s after %d attempts (timeout %v): %w",
			opts.Addr, attempts, opts.ConnectTimeout, err)
	}

	if attempts > 1 {
		log.Warn("connected to redis after retry",
			logger.String("addr", opts.Addr),
			logger.Int("attempts", attempts))
	} else {
		log.Info("connected to redis", logger.String("addr", opts.Addr))
	}
	return client, nil
}
