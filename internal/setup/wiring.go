package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/findmymarket/screening-agent/internal/cache"
	"github.com/findmymarket/screening-agent/internal/category"
	"github.com/findmymarket/screening-agent/internal/crm"
	"github.com/findmymarket/screening-agent/internal/crm/hubspot"
	"github.com/findmymarket/screening-agent/internal/llm"
	"github.com/findmymarket/screening-agent/internal/llm/bedrock"
	"github.com/findmymarket/screening-agent/internal/llm/gpt"
	redisconn "github.com/findmymarket/screening-agent/internal/redis"
	"github.com/findmymarket/screening-agent/internal/screening"
	"github.com/rs/zerolog"
)

type Config struct {
	AWSRegion       string
	ClaudeModelID   string
	OpenAIKey       string
	OpenAIModelID   string
	DefaultProvider string
	HubSpotAPIKey   string
	RedisAddr       string
	RedisPassword   string
	CacheTTL        time.Duration
	MaxTokens       int
	Temperature     float64
	Retry           bool
}

type Dependencies struct {
	Screener   *screening.Screener
	Categories *category.Table
	Logger     *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:       getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:   getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
		HubSpotAPIKey:   getEnv("HUBSPOT_API_KEY", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CacheTTL:        time.Duration(getEnvFloat("VERDICT_CACHE_TTL_MINUTES", 60)) * time.Minute,
		MaxTokens:       int(getEnvFloat("SCREENING_MAX_TOKENS", 1500)),
		Temperature:     getEnvFloat("SCREENING_TEMPERATURE", 0),
		Retry:           getEnv("SCREENING_RETRY", "true") == "true",
	}
}

// Wire builds the screener and its collaborators. The vision client is
// required; HubSpot sync and the Redis verdict cache are enabled only when
// their credentials are configured.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createVisionClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}

	var syncer crm.ContactSyncer
	if cfg.HubSpotAPIKey != "" {
		hs, err := hubspot.NewClient(cfg.HubSpotAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create HubSpot client: %w", err)
		}
		syncer = hs
	} else {
		logger.Warn().Msg("HUBSPOT_API_KEY not set, CRM sync disabled")
	}

	var verdicts *cache.VerdictCache
	if cfg.RedisAddr != "" {
		client, err := redisconn.Connect(ctx, redisconn.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		verdicts = cache.NewVerdictCache(client, cfg.CacheTTL, logger)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, verdict cache disabled")
	}

	categories, err := category.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load category table: %w", err)
	}

	screener := screening.NewScreener(llmClient, syncer, verdicts, screening.Options{
		ModelID:     modelID(cfg),
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Retry:       cfg.Retry,
	}, logger)

	return &Dependencies{
		Screener:   screener,
		Categories: categories,
		Logger:     logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}

func createVisionClient(ctx context.Context, provider string, cfg *Config) (llm.VisionClient, error) {
	switch provider {
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}

func modelID(cfg *Config) string {
	if cfg.DefaultProvider == "openai" {
		return cfg.OpenAIModelID
	}
	return cfg.ClaudeModelID
}
