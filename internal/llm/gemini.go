package llm

import (
	"context"
	"fmt"
	"strings"

	"diet-planner/internal/config"
	"diet-planner/internal/shared"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiClient is a client for the Google Gemini API.
type geminiClient struct {
	cfg   *config.Config
	model string
	opts  []option.ClientOption
}

// NewGeminiClient creates a new Gemini API client.
// The underlying SDK client is opened per request because the key is only read then.
func NewGeminiClient(cfg *config.Config, opts ...option.ClientOption) TextGenerator {
	return &geminiClient{
		cfg:   cfg,
		model: modelOrDefault(cfg, DefaultGeminiModel),
		opts:  opts,
	}
}

// GenerateContent sends a prompt to the Gemini model and returns the generated text.
func (c *geminiClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	apiKey, err := c.cfg.Credential(config.ProviderGemini)
	if err != nil {
		return ContentResponse{}, err
	}

	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, c.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return ContentResponse{}, serviceError(config.ProviderGemini, "failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SetTemperature(Temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, serviceError(config.ProviderGemini, "failed to generate content: %w", err)
	}

	text, err := candidateText(resp)
	if err != nil {
		return ContentResponse{}, &shared.ServiceError{Provider: config.ProviderGemini, Err: err}
	}

	usage := shared.TokenUsage{Model: c.model}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return ContentResponse{Content: text, Usage: usage}, nil
}

func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("generated content is not text")
	}
	return sb.String(), nil
}
