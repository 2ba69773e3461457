package llm

import (
	"context"
	"fmt"
	"time"
)

// Message is one conversation turn sent to the model.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRequest carries the system instruction, prior turns and the new
// user turn.
type CompletionRequest struct {
	SystemPrompt string
	History      []Message
	UserMessage  string
}

// LLMProvider interface untuk multiple AI providers
type LLMProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	GetProviderName() string
}

// APIError is a non-success HTTP answer from a provider. Transport failures
// are returned as plain errors.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm api error (status %d): %s", e.StatusCode, e.Message)
}

// ProviderType untuk factory
type ProviderType string

const (
	ProviderYandex   ProviderType = "yandex"
	ProviderOpenAI   ProviderType = "openai"
	ProviderGroq     ProviderType = "groq"
	ProviderDeepSeek ProviderType = "deepseek"
)

// ProviderConfig untuk create provider
type ProviderConfig struct {
	Type ProviderType

	// Credentials
	YandexAPIKey   string
	YandexFolderID string
	OpenAIKey      string

	// Model configs
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// NewProvider factory untuk create LLM provider
func NewProvider(cfg *ProviderConfig) (LLMProvider, error) {
	switch cfg.Type {
	case ProviderYandex:
		if cfg.YandexAPIKey == "" || cfg.YandexFolderID == "" {
			return nil, fmt.Errorf("YANDEX_API_KEY and YANDEX_FOLDER_ID are required")
		}
		return NewYandexProvider(cfg), nil

	case ProviderOpenAI, ProviderGroq, ProviderDeepSeek:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for provider %s", cfg.Type)
		}
		return NewOpenAIProvider(cfg), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}

// defaultBaseURL returns the OpenAI-compatible endpoint for hosted vendors.
func defaultBaseURL(t ProviderType) string {
	switch t {
	case ProviderGroq:
		return "https://api.groq.com/openai/v1"
	case ProviderDeepSeek:
		return "https://api.deepseek.com/v1"
	default:
		return ""
	}
}

func defaultModel(t ProviderType) string {
	switch t {
	case ProviderYandex:
		return "yandexgpt-lite"
	case ProviderGroq:
		return "llama-3.1-8b-instant"
	case ProviderDeepSeek:
		return "deepseek-chat"
	default:
		return "gpt-4o-mini"
	}
}

func (cfg *ProviderConfig) applyDefaults() {
	if cfg.Model == "" {
		cfg.Model = defaultModel(cfg.Type)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL(cfg.Type)
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
}
