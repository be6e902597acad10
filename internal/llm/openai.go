package llm

import (
	"context"

	"diet-planner/internal/config"
	"diet-planner/internal/shared"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openAIClient is a client for the OpenAI chat completions API.
type openAIClient struct {
	cfg   *config.Config
	model string
}

// NewOpenAIClient creates a new OpenAI API client.
func NewOpenAIClient(cfg *config.Config) TextGenerator {
	return &openAIClient{
		cfg:   cfg,
		model: modelOrDefault(cfg, DefaultOpenAIModel),
	}
}

// GenerateContent sends a prompt to the OpenAI model and returns the generated text.
func (c *openAIClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	apiKey, err := c.cfg.Credential(config.ProviderOpenAI)
	if err != nil {
		return ContentResponse{}, err
	}

	// One attempt per submission; the SDK would otherwise retry on its own.
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if c.cfg.OpenAIURL != "" {
		opts = append(opts, option.WithBaseURL(c.cfg.OpenAIURL))
	}
	client := openai.NewClient(opts...)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(Temperature),
	})
	if err != nil {
		return ContentResponse{}, serviceError(config.ProviderOpenAI, "chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return ContentResponse{}, serviceError(config.ProviderOpenAI, "no content generated")
	}

	return ContentResponse{
		Content: completion.Choices[0].Message.Content,
		Usage: shared.TokenUsage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
			Model:            c.model,
		},
	}, nil
}
