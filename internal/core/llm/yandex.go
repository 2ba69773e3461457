package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const yandexCompletionURL = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"

type YandexProvider struct {
	apiKey      string
	folderID    string
	model       string
	url         string
	temperature float32
	maxTokens   int
	client      *http.Client
}

func NewYandexProvider(cfg *ProviderConfig) *YandexProvider {
	cfg.applyDefaults()

	url := cfg.BaseURL
	if url == "" {
		url = yandexCompletionURL
	}

	return &YandexProvider{
		apiKey:      cfg.YandexAPIKey,
		folderID:    cfg.YandexFolderID,
		model:       cfg.Model,
		url:         url,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (p *YandexProvider) GetProviderName() string {
	return "Yandex GPT"
}

// Yandex Foundation Models request/response structures
type yandexRequest struct {
	ModelURI          string                  `json:"modelUri"`
	CompletionOptions yandexCompletionOptions `json:"completionOptions"`
	Messages          []Message               `json:"messages"`
}

type yandexCompletionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type yandexResponse struct {
	Result struct {
		Alternatives []struct {
			Message Message `json:"message"`
			Status  string  `json:"status"`
		} `json:"alternatives"`
	} `json:"result"`
}

type yandexErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func (p *YandexProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]Message, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		messages = append(messages, Message{Role: RoleSystem, Text: req.SystemPrompt})
	}
	messages = append(messages, req.History...)
	messages = append(messages, Message{Role: RoleUser, Text: req.UserMessage})

	reqBody := yandexRequest{
		ModelURI: fmt.Sprintf("gpt://%s/%s", p.folderID, p.model),
		CompletionOptions: yandexCompletionOptions{
			Stream:      false,
			Temperature: p.temperature,
			MaxTokens:   p.maxTokens,
		},
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Api-Key "+p.apiKey)
	httpReq.Header.Set("x-folder-id", p.folderID)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("yandex request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	var yResp yandexResponse
	if err := json.Unmarshal(body, &yResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(yResp.Result.Alternatives) == 0 {
		return "", fmt.Errorf("no alternatives in Yandex response")
	}

	return yResp.Result.Alternatives[0].Message.Text, nil
}

func errorMessage(body []byte) string {
	var e yandexErrorResponse
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Error.Message != "" {
			return e.Error.Message
		}
		if e.Message != "" {
			return e.Message
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
