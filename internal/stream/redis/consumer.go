package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/findmymarket/screening-agent/internal/category"
	"github.com/findmymarket/screening-agent/internal/models"
	"github.com/findmymarket/screening-agent/internal/screening"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Consumer reads screening requests from a Redis stream, runs the screening
// pipeline, and publishes each result to the result stream.
type Consumer struct {
	client     *redis.Client
	cfg        *RedisStreamConfig
	screener   *screening.Screener
	categories *category.Table
	logger     *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *RedisStreamConfig, screener *screening.Screener, categories *category.Table, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:     client,
		cfg:        cfg,
		screener:   screener,
		categories: categories,
		logger:     logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.cfg.Stream).
		Str("group", c.cfg.Group).
		Str("consumer", c.cfg.ConsumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.ConsumerName,
			Streams:  []string{c.cfg.Stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var screenRequest models.ScreeningRequest
	if err := json.Unmarshal([]byte(payload), &screenRequest); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	sc, err := screening.Normalize(screenRequest, c.categories)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Invalid screening request")
		c.ack(ctx, msg.ID)
		return
	}

	result, err := c.screener.Screen(ctx, sc)
	if err != nil {
		// Classification failed; leave the message unacked so another
		// consumer can retry after the service recovers.
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Screening failed")
		return
	}

	c.publish(ctx, msg.ID, result)

	c.logger.Info().
		Str("id", msg.ID).
		Str("recommendation", string(result.Recommendation)).
		Float64("relevance_score", result.RelevanceScore).
		Msg("Screening complete")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) publish(ctx context.Context, sourceID string, result models.ScreeningResult) {
	if c.cfg.ResultStream == "" {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error().Err(err).Str("id", sourceID).Msg("Failed to serialize result")
		return
	}

	err = c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.ResultStream,
		Values: map[string]any{
			"source_id": sourceID,
			"payload":   string(data),
		},
	}).Err()
	if err != nil {
		c.logger.Error().Err(err).Str("id", sourceID).Msg("Failed to publish result")
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
