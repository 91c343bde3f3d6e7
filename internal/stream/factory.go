package stream

import (
	"context"
	"fmt"

	"github.com/findmymarket/screening-agent/internal/category"
	redisconn "github.com/findmymarket/screening-agent/internal/redis"
	"github.com/findmymarket/screening-agent/internal/screening"
	"github.com/findmymarket/screening-agent/internal/stream/redis"
	"github.com/rs/zerolog"
)

type StreamConfig struct {
	Provider    string // redis, kafka, sqs, etc
	RedisConfig *redis.RedisStreamConfig
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	screener *screening.Screener,
	categories *category.Table,
	logger *zerolog.Logger,
) (StreamConsumer, error) {

	// If provider is empty, fallback to the default configuration.
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := redisconn.Connect(ctx, redisconn.Options{
			Addr:        cfg.RedisConfig.RedisAddr,
			Password:    cfg.RedisConfig.RedisPassword,
			MaxAttempts: 5,
		}, logger)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(
			client,
			cfg.RedisConfig,
			screener,
			categories,
			logger,
		), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
