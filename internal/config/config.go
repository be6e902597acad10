package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"strconv"
	"strings"

	"diet-planner/internal/shared"

	"github.com/joho/godotenv"
)

// Supported completion providers.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// credentialKeys maps each provider to the environment variable holding its API key.
var credentialKeys = map[string]string{
	ProviderGroq:   "GROQ_API_KEY",
	ProviderGemini: "GEMINI_API_KEY",
	ProviderOpenAI: "OPENAI_API_KEY",
}

// Config holds the configuration for the application.
// API keys are deliberately absent: they are looked up per request with Credential.
type Config struct {
	LLMProvider string
	LLMModel    string // empty selects the provider default
	GroqAPIURL  string
	OpenAIURL   string

	Port         string
	ExportSecret []byte

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	provider := strings.ToLower(os.Getenv("LLM_PROVIDER"))
	if provider == "" {
		provider = ProviderGroq
	}
	if _, ok := credentialKeys[provider]; !ok {
		return nil, fmt.Errorf("LLM_PROVIDER must be one of groq, gemini, openai, got %q", provider)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	secret := []byte(os.Getenv("EXPORT_SECRET"))
	if len(secret) == 0 {
		// Export links then only survive for the lifetime of the process.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate export secret: %w", err)
		}
	}

	allowed, err := parseUserIDs(os.Getenv("TELEGRAM_ALLOW_USER_IDS"))
	if err != nil {
		return nil, err
	}

	return &Config{
		LLMProvider:            provider,
		LLMModel:               os.Getenv("LLM_MODEL"),
		GroqAPIURL:             os.Getenv("GROQ_API_URL"),
		OpenAIURL:              os.Getenv("OPENAI_BASE_URL"),
		Port:                   port,
		ExportSecret:           secret,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowed,
	}, nil
}

// Credential reads the API key of provider from the process environment.
// It is called at request time so a missing key only fails that request.
func (c *Config) Credential(provider string) (string, error) {
	key, ok := credentialKeys[provider]
	if !ok {
		return "", fmt.Errorf("unknown provider %q", provider)
	}
	value := os.Getenv(key)
	if value == "" {
		return "", &shared.ConfigurationError{Key: key}
	}
	return value, nil
}

// ValidateTelegram reports whether the bot settings are complete.
func (c *Config) ValidateTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	if len(c.TelegramAllowedUserIDs) == 0 {
		return fmt.Errorf("TELEGRAM_ALLOW_USER_IDS environment variable not set")
	}
	return nil
}

func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
