// Publishes a screening request file to the intake stream, for local
// testing of the streaming worker:
//
//	go run ./cmd/producer request.json
//
// The file holds one ScreeningRequest as JSON.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/findmymarket/screening-agent/internal/models"
	redisconn "github.com/findmymarket/screening-agent/internal/redis"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: producer <request.json>")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read request file")
	}

	// Validate the file is a well-formed request before publishing.
	var req models.ScreeningRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Fatal().Err(err).Msg("Request file is not valid JSON")
	}

	ctx := context.Background()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client, err := redisconn.Connect(ctx, redisconn.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	stream := os.Getenv("SCREENING_STREAM")
	if stream == "" {
		stream = "screening-requests"
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": string(data)},
	}).Result()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to publish request")
	}

	log.Info().Str("id", id).Str("stream", stream).Msg("Request published")
}
