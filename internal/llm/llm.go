package llm

import (
	"context"
	"fmt"

	"diet-planner/internal/config"
	"diet-planner/internal/shared"
)

// Temperature is the sampling temperature used for every plan request.
const Temperature = 0.5

// Default models per provider, used when LLM_MODEL is not set.
const (
	DefaultGroqModel   = "meta-llama/llama-4-scout-17b-16e-instruct"
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// NewTextGenerator builds the client for the provider selected in cfg.
func NewTextGenerator(cfg *config.Config) (TextGenerator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGroq:
		return NewGroqClient(cfg), nil
	case config.ProviderGemini:
		return NewGeminiClient(cfg), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLMProvider)
	}
}

func modelOrDefault(cfg *config.Config, def string) string {
	if cfg.LLMModel != "" {
		return cfg.LLMModel
	}
	return def
}

func serviceError(provider string, format string, args ...any) error {
	return &shared.ServiceError{Provider: provider, Err: fmt.Errorf(format, args...)}
}
