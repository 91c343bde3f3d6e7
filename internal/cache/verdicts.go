// Package cache stores parsed verdicts in Redis keyed by image digest, so
// a participant re-uploading the same image does not trigger another paid
// vision call. Entries expire; Redis is an accelerator, not a store of
// record.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/findmymarket/screening-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "screening:verdict:"

type VerdictCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewVerdictCache(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *VerdictCache {
	return &VerdictCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Key derives the cache key from the image bytes, the subject description,
// and the image role. Each of the three changes the prompt, so each gets
// its own entry; a receipt screening never answers a product screening of
// the same image.
func Key(imageData []byte, subject string, role models.ImageRole) string {
	h := sha256.New()
	h.Write(imageData)
	h.Write([]byte{0})
	h.Write([]byte(subject))
	h.Write([]byte{0})
	h.Write([]byte(role))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached verdict for key, or false on miss. Redis errors
// are logged and treated as misses.
func (c *VerdictCache) Get(ctx context.Context, key string) (*models.Verdict, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("verdict cache read failed")
		}
		return nil, false
	}

	var v models.Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn().Err(err).Msg("discarding unreadable cache entry")
		return nil, false
	}

	return &v, true
}

// Set stores the verdict under key. Failures are logged, never surfaced.
func (c *VerdictCache) Set(ctx context.Context, key string, v models.Verdict) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to serialize verdict for cache")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("verdict cache write failed")
	}
}
