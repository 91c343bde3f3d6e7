package gpt

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/findmymarket/screening-agent/internal/llm"
	"github.com/openai/openai-go"
)

func (c *Client) InvokeModel(ctx context.Context, request llm.VisionRequest) (*llm.VisionResponse, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s",
		request.MediaType, base64.StdEncoding.EncodeToString(request.ImageData))

	message := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
				openai.TextContentPart(request.Prompt),
			}),
		},
		MaxCompletionTokens: openai.Int(int64(request.MaxTokens)),
		Temperature:         openai.Float(request.Temperature),
		Model:               openai.ChatModel(c.ModelID),
	}

	output, err := c.Client.Chat.Completions.New(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gpt model: %w", err)
	}

	if len(output.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	response := output.Choices[0]
	return &llm.VisionResponse{
		Content:    response.Message.Content,
		StopReason: fmt.Sprint(response.FinishReason),
	}, nil
}

// InvokeModelWithRetry relies on the SDK's built-in retries.
func (c *Client) InvokeModelWithRetry(ctx context.Context, request llm.VisionRequest) (*llm.VisionResponse, error) {
	return c.InvokeModel(ctx, request)
}
