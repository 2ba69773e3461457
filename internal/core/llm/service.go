package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/config"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// User-facing answers for failed generation calls.
const (
	MsgAuthFailed  = "❌ Ошибка авторизации. Проверьте API-ключ."
	MsgBadRequest  = "❌ Ошибка параметров. Проверьте folder_id."
	MsgUnavailable = "❌ Не удалось получить ответ. Попробуйте позже."
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
)

// Result is the outcome of a generation call. OK is false when Text is one of
// the fixed failure messages.
type Result struct {
	Text string
	OK   bool
}

// Service wraps LLM provider untuk dependency injection
type Service struct {
	provider    LLMProvider
	maxAttempts int
	retryDelay  time.Duration
}

// NewService creates LLM service with provider from config
func NewService(cfg *config.Config) (*Service, error) {
	provider, err := NewProvider(ProviderConfigFrom(cfg))
	if err != nil {
		return nil, err
	}

	utils.LogInfo("🤖 LLM provider ready", map[string]interface{}{
		"provider": provider.GetProviderName(),
		"model":    cfg.LLMModel,
	})

	return NewServiceWithProvider(provider), nil
}

// NewStartupService is NewService with the startup policy applied. A provider
// named in LLM_PROVIDER must be fully configured. With LLM_PROVIDER unset a
// keyless Yandex provider is used: the knowledge base keeps working and the
// model fallback answers with the auth failure message.
func NewStartupService(cfg *config.Config) (*Service, error) {
	svc, err := NewService(cfg)
	if err == nil {
		return svc, nil
	}
	if cfg.LLMProviderSet {
		return nil, fmt.Errorf("LLM_PROVIDER=%s: %w", cfg.LLMProvider, err)
	}
	utils.LogWarn("⚠️ LLM provider not configured", map[string]interface{}{"error": err.Error()})
	return NewServiceWithProvider(NewYandexProvider(ProviderConfigFrom(cfg))), nil
}

// ProviderConfigFrom maps application config onto provider settings.
func ProviderConfigFrom(cfg *config.Config) *ProviderConfig {
	return &ProviderConfig{
		Type:           ProviderType(cfg.LLMProvider),
		YandexAPIKey:   cfg.YandexAPIKey,
		YandexFolderID: cfg.YandexFolderID,
		OpenAIKey:      cfg.OpenAIKey,
		Model:          cfg.LLMModel,
		BaseURL:        cfg.LLMBaseURL,
		Temperature:    cfg.LLMTemperature,
		MaxTokens:      cfg.LLMMaxTokens,
		Timeout:        cfg.LLMTimeout,
	}
}

// NewServiceWithProvider creates service with custom provider (for testing)
func NewServiceWithProvider(provider LLMProvider) *Service {
	return &Service{
		provider:    provider,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

// WithRetryDelay overrides the pause between attempts.
func (s *Service) WithRetryDelay(d time.Duration) *Service {
	s.retryDelay = d
	return s
}

// Generate asks the provider for an answer. It never returns an error: a 401
// or 400 status maps to a fixed message straight away, any other failure is
// retried and, once attempts run out, mapped to MsgUnavailable.
func (s *Service) Generate(ctx context.Context, req CompletionRequest) Result {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		text, err := s.provider.Complete(ctx, req)
		if err == nil {
			return Result{Text: text, OK: true}
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusUnauthorized:
				utils.LogError("LLM auth failed", apiErr, nil)
				return Result{Text: MsgAuthFailed}
			case http.StatusBadRequest:
				utils.LogError("LLM rejected request", apiErr, nil)
				return Result{Text: MsgBadRequest}
			}
		}

		utils.LogWarn("LLM attempt failed", map[string]interface{}{
			"attempt": attempt,
			"max":     s.maxAttempts,
			"error":   err.Error(),
		})

		if attempt == s.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return Result{Text: MsgUnavailable}
		case <-time.After(s.retryDelay):
		}
	}

	return Result{Text: MsgUnavailable}
}

// GetProviderName returns current provider name
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
