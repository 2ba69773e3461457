package email

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"
)

// Provider delivers one message.
type Provider interface {
	Send(ctx context.Context, msg Message) error
	GetProviderName() string
}

// Sender is who staff e-mails come from and where replies go.
type Sender struct {
	Email   string
	Name    string
	ReplyTo string
}

// Message is one outgoing staff e-mail.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
	// Tag groups messages by event in the provider dashboard, e.g. "booking".
	Tag string
}

// venueHeader carries the sender name so staff mail filters can route it.
const venueHeader = "X-Venue"

// Service wraps the email provider
type Service struct {
	provider Provider
}

// NewService creates a new email service with the specified provider
func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
	}
}

// NewServiceFromConfig picks a provider by name. An empty name or "none"
// returns nil: e-mail is optional.
func NewServiceFromConfig(name, brevoKey, resendKey string, from Sender) (*Service, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return nil, nil
	case "brevo":
		if brevoKey == "" || from.Email == "" {
			return nil, fmt.Errorf("BREVO_API_KEY and EMAIL_FROM are required for brevo")
		}
		return NewService(NewBrevoProvider(brevoKey, from)), nil
	case "resend":
		if resendKey == "" || from.Email == "" {
			return nil, fmt.Errorf("RESEND_API_KEY and EMAIL_FROM are required for resend")
		}
		return NewService(NewResendProvider(resendKey, from)), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", name)
	}
}

// Send delivers msg through the configured provider.
func (s *Service) Send(ctx context.Context, msg Message) error {
	if s == nil || s.provider == nil {
		return fmt.Errorf("no email provider configured")
	}
	if msg.To == "" {
		return fmt.Errorf("email recipient is empty")
	}
	return s.provider.Send(ctx, msg)
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	if s == nil || s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}

// Field is one labelled line of a template email.
type Field struct {
	Label string
	Value string
}

// TemplateData feeds BuildHTML.
type TemplateData struct {
	Title   string
	Message string
	Fields  []Field
	Footer  string
}

// BuildHTML creates a simple HTML email. All values are escaped.
func BuildHTML(data TemplateData) string {
	title := data.Title
	if title == "" {
		title = "Уведомление"
	}
	footer := data.Footer
	if footer == "" {
		footer = "Отправлено " + time.Now().Format("02.01.2006 15:04")
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #6C3FC5; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { padding: 10px; text-align: center; font-size: 12px; color: #666; }
        td.label { color: #666; padding-right: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>`)
	b.WriteString(html.EscapeString(title))
	b.WriteString(`</h1>
        </div>
        <div class="content">
`)
	if data.Message != "" {
		b.WriteString("            <p>")
		b.WriteString(html.EscapeString(data.Message))
		b.WriteString("</p>\n")
	}
	if len(data.Fields) > 0 {
		b.WriteString("            <table>\n")
		for _, f := range data.Fields {
			fmt.Fprintf(&b, "                <tr><td class=\"label\">%s</td><td>%s</td></tr>\n",
				html.EscapeString(f.Label), html.EscapeString(f.Value))
		}
		b.WriteString("            </table>\n")
	}
	b.WriteString(`        </div>
        <div class="footer">
            <p>`)
	b.WriteString(html.EscapeString(footer))
	b.WriteString(`</p>
        </div>
    </div>
</body>
</html>`)
	return b.String()
}

// BuildText is the plain-text alternative of BuildHTML.
func BuildText(data TemplateData) string {
	var b strings.Builder
	if data.Title != "" {
		b.WriteString(data.Title)
		b.WriteString("\n\n")
	}
	if data.Message != "" {
		b.WriteString(data.Message)
		b.WriteString("\n\n")
	}
	for _, f := range data.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	if data.Footer != "" {
		b.WriteString("\n-- \n")
		b.WriteString(data.Footer)
		b.WriteString("\n")
	}
	return b.String()
}
