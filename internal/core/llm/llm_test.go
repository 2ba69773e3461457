package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/config"
)

func newYandexServer(t *testing.T, handler http.HandlerFunc) (*YandexProvider, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	p := NewYandexProvider(&ProviderConfig{
		Type:           ProviderYandex,
		YandexAPIKey:   "secret",
		YandexFolderID: "folder-1",
		BaseURL:        srv.URL,
		Timeout:        2 * time.Second,
	})
	return p, &calls
}

func TestYandexProvider_Success(t *testing.T) {
	var got yandexRequest
	p, _ := newYandexServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Api-Key secret", r.Header.Get("Authorization"))
		assert.Equal(t, "folder-1", r.Header.Get("x-folder-id"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"result":{"alternatives":[{"message":{"role":"assistant","text":"Мы открыты до 22:00"},"status":"ALTERNATIVE_STATUS_FINAL"}]}}`))
	})

	text, err := p.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "system",
		History:      []Message{{Role: RoleUser, Text: "привет"}, {Role: RoleAssistant, Text: "здравствуйте"}},
		UserMessage:  "когда вы работаете?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Мы открыты до 22:00", text)

	assert.Equal(t, "gpt://folder-1/yandexgpt-lite", got.ModelURI)
	assert.False(t, got.CompletionOptions.Stream)
	assert.Equal(t, 1000, got.CompletionOptions.MaxTokens)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, RoleSystem, got.Messages[0].Role)
	assert.Equal(t, "когда вы работаете?", got.Messages[3].Text)
}

func TestYandexProvider_StatusBecomesAPIError(t *testing.T) {
	p, _ := newYandexServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	})

	_, err := p.Complete(context.Background(), CompletionRequest{UserMessage: "hi"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "bad key", apiErr.Message)
}

func TestService_AuthFailureIsNotRetried(t *testing.T) {
	p, calls := newYandexServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	svc := NewServiceWithProvider(p).WithRetryDelay(0)

	res := svc.Generate(context.Background(), CompletionRequest{UserMessage: "hi"})
	assert.False(t, res.OK)
	assert.Equal(t, MsgAuthFailed, res.Text)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestService_BadRequestIsNotRetried(t *testing.T) {
	p, calls := newYandexServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	svc := NewServiceWithProvider(p).WithRetryDelay(0)

	res := svc.Generate(context.Background(), CompletionRequest{UserMessage: "hi"})
	assert.Equal(t, MsgBadRequest, res.Text)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestService_ExhaustsThreeAttempts(t *testing.T) {
	p, calls := newYandexServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc := NewServiceWithProvider(p).WithRetryDelay(0)

	res := svc.Generate(context.Background(), CompletionRequest{UserMessage: "hi"})
	assert.False(t, res.OK)
	assert.Equal(t, MsgUnavailable, res.Text)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestService_RecoversOnSecondAttempt(t *testing.T) {
	var n int32
	p, _ := newYandexServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"result":{"alternatives":[{"message":{"text":"ok"}}]}}`))
	})
	svc := NewServiceWithProvider(p).WithRetryDelay(0)

	res := svc.Generate(context.Background(), CompletionRequest{UserMessage: "hi"})
	assert.True(t, res.OK)
	assert.Equal(t, "ok", res.Text)
}

func TestService_CancelledContextStopsWaiting(t *testing.T) {
	p, calls := newYandexServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	svc := NewServiceWithProvider(p).WithRetryDelay(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	res := svc.Generate(ctx, CompletionRequest{UserMessage: "hi"})
	assert.Equal(t, MsgUnavailable, res.Text)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestOpenAIProvider_MapsStatusCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(&ProviderConfig{Type: ProviderOpenAI, OpenAIKey: "k", BaseURL: srv.URL})
	_, err := p.Complete(context.Background(), CompletionRequest{UserMessage: "hi"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestOpenAIProvider_SendsHistory(t *testing.T) {
	var body struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"ответ"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(&ProviderConfig{Type: ProviderGroq, OpenAIKey: "k", BaseURL: srv.URL})
	assert.Equal(t, "Groq", p.GetProviderName())

	text, err := p.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "sys",
		History:      []Message{{Role: RoleAssistant, Text: "earlier"}},
		UserMessage:  "now",
	})
	require.NoError(t, err)
	assert.Equal(t, "ответ", text)
	assert.Equal(t, "llama-3.1-8b-instant", body.Model)
	require.Len(t, body.Messages, 3)
	assert.Equal(t, "assistant", body.Messages[1].Role)
	assert.Equal(t, "now", body.Messages[2].Content)
}

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(&ProviderConfig{Type: ProviderYandex})
	assert.Error(t, err)

	_, err = NewProvider(&ProviderConfig{Type: "bard"})
	assert.Error(t, err)

	p, err := NewProvider(&ProviderConfig{Type: ProviderDeepSeek, OpenAIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "DeepSeek", p.GetProviderName())
}

func TestNewStartupService(t *testing.T) {
	// default provider without credentials degrades to a keyless Yandex client
	svc, err := NewStartupService(&config.Config{LLMProvider: "yandex"})
	require.NoError(t, err)
	assert.Equal(t, "Yandex GPT", svc.GetProviderName())

	_, err = NewStartupService(&config.Config{LLMProvider: "bard", LLMProviderSet: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_PROVIDER=bard")

	_, err = NewStartupService(&config.Config{LLMProvider: "openai", LLMProviderSet: true})
	assert.Error(t, err)

	_, err = NewStartupService(&config.Config{LLMProvider: "yandex", LLMProviderSet: true, YandexAPIKey: "k"})
	assert.Error(t, err)

	svc, err = NewStartupService(&config.Config{LLMProvider: "groq", LLMProviderSet: true, OpenAIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "Groq", svc.GetProviderName())
}

func TestBuildVenuePrompt(t *testing.T) {
	prompt := BuildVenuePrompt("D-Space", "", "Часы работы: 10:00-22:00")
	assert.Contains(t, prompt, "«D-Space»")
	assert.Contains(t, prompt, "\n\nЧасы работы: 10:00-22:00")
}
