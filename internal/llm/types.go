package llm

type VisionRequest struct {
	Prompt      string
	ImageData   []byte
	MediaType   string
	MaxTokens   int
	Temperature float64
}

type VisionResponse struct {
	Content    string
	StopReason string
}
