package llm

import (
	"context"
)

// VisionClient is an interface for invoking vision-capable LLM models
// This allows mocking in tests without making real API calls
type VisionClient interface {
	InvokeModel(ctx context.Context, request VisionRequest) (*VisionResponse, error)
	InvokeModelWithRetry(ctx context.Context, request VisionRequest) (*VisionResponse, error)
}
