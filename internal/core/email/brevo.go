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

const brevoBaseURL = "https://api.brevo.com"

// BrevoProvider sends through the Brevo transactional API.
type BrevoProvider struct {
	apiKey     string
	from       Sender
	baseURL    string
	httpClient *http.Client
}

func NewBrevoProvider(apiKey string, from Sender) *BrevoProvider {
	return &BrevoProvider{
		apiKey:     apiKey,
		from:       from,
		baseURL:    brevoBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL points the provider at another API host.
func (p *BrevoProvider) WithBaseURL(url string) *BrevoProvider {
	p.baseURL = url
	return p
}

type brevoEmailRequest struct {
	Sender      brevoContact      `json:"sender"`
	To          []brevoContact    `json:"to"`
	ReplyTo     *brevoContact     `json:"replyTo,omitempty"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent,omitempty"`
	TextContent string            `json:"textContent,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// brevoPayload maps a staff message onto the Brevo schema.
func (p *BrevoProvider) brevoPayload(msg Message) brevoEmailRequest {
	req := brevoEmailRequest{
		Sender:      brevoContact{Email: p.from.Email, Name: p.from.Name},
		To:          []brevoContact{{Email: msg.To}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
		TextContent: msg.Text,
	}
	if p.from.ReplyTo != "" {
		req.ReplyTo = &brevoContact{Email: p.from.ReplyTo, Name: p.from.Name}
	}
	if msg.Tag != "" {
		req.Tags = []string{msg.Tag}
	}
	if p.from.Name != "" {
		req.Headers = map[string]string{venueHeader: p.from.Name}
	}
	return req
}

func (p *BrevoProvider) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(p.brevoPayload(msg))
	if err != nil {
		return fmt.Errorf("brevo: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v3/smtp/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("brevo: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("brevo: send %q: %w", msg.Subject, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo API error (status %d): %s", resp.StatusCode, string(detail))
	}
	return nil
}

func (p *BrevoProvider) GetProviderName() string {
	return "brevo"
}
