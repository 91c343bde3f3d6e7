// Package redis dials the shared Redis instance backing the verdict cache
// and the screening streams.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Options struct {
	Addr        string
	Password    string
	DB          int
	MaxAttempts int // defaults to 3
}

// Connect dials Redis and verifies the connection with a ping, backing off
// between attempts. The context bounds both the dialing and the backoff
// waits.
func Connect(ctx context.Context, opts Options, logger *zerolog.Logger) (*redis.Client, error) {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(1<<uint(attempt-1)) * 500 * time.Millisecond
			logger.Info().
				Str("addr", opts.Addr).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("retrying redis connection")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			logger.Info().Str("addr", opts.Addr).Msg("redis connected")
			return client, nil
		}

		logger.Warn().Err(lastErr).Str("addr", opts.Addr).Int("attempt", attempt).Msg("redis ping failed")
	}

	return nil, fmt.Errorf("redis unreachable at %s after %d attempts: %w", opts.Addr, opts.MaxAttempts, lastErr)
}
