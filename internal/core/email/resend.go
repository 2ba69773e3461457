package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendBaseURL = "https://api.resend.com"

// ResendProvider sends through the Resend API.
type ResendProvider struct {
	apiKey     string
	from       Sender
	baseURL    string
	httpClient *http.Client
}

func NewResendProvider(apiKey string, from Sender) *ResendProvider {
	return &ResendProvider{
		apiKey:     apiKey,
		from:       from,
		baseURL:    resendBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL points the provider at another API host.
func (p *ResendProvider) WithBaseURL(url string) *ResendProvider {
	p.baseURL = url
	return p
}

type resendEmailRequest struct {
	From    string            `json:"from"`
	To      []string          `json:"to"`
	ReplyTo []string          `json:"reply_to,omitempty"`
	Subject string            `json:"subject"`
	HTML    string            `json:"html,omitempty"`
	Text    string            `json:"text,omitempty"`
	Tags    []resendTag       `json:"tags,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// resendTag values may only hold ASCII letters, digits, '_' and '-'.
type resendTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// resendPayload maps a staff message onto the Resend schema.
func (p *ResendProvider) resendPayload(msg Message) resendEmailRequest {
	from := p.from.Email
	if p.from.Name != "" {
		from = fmt.Sprintf("%s <%s>", p.from.Name, p.from.Email)
	}
	req := resendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	if p.from.ReplyTo != "" {
		req.ReplyTo = []string{p.from.ReplyTo}
	}
	if msg.Tag != "" {
		req.Tags = []resendTag{{Name: "category", Value: msg.Tag}}
	}
	if p.from.Name != "" {
		req.Headers = map[string]string{venueHeader: p.from.Name}
	}
	return req
}

func (p *ResendProvider) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(p.resendPayload(msg))
	if err != nil {
		return fmt.Errorf("resend: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("resend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend: send %q: %w", msg.Subject, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(detail))
	}
	return nil
}

func (p *ResendProvider) GetProviderName() string {
	return "resend"
}
