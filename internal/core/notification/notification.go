package notification

import (
	"context"
	"sync"
	"time"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/email"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// Notification represents a notification message for venue staff
type Notification struct {
	// Kind tags the e-mail in the provider dashboard, e.g. "booking".
	Kind    string
	Subject string
	Title   string
	Message string
	Fields  []email.Field
}

// EmailService interface for sending emails
type EmailService interface {
	Send(ctx context.Context, msg email.Message) error
	GetProviderName() string
}

// Service delivers staff notifications from a background worker so the
// request that triggered them never waits on the mail provider.
type Service struct {
	emailService EmailService
	adminEmail   string
	footer       string
	sendTimeout  time.Duration

	queue   chan Notification
	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewService creates a new notification service. buffer bounds the number
// of pending notifications; extra ones are dropped with a warning.
func NewService(emailSvc EmailService, adminEmail, venueName string, buffer int) *Service {
	if buffer <= 0 {
		buffer = 32
	}
	return &Service{
		emailService: emailSvc,
		adminEmail:   adminEmail,
		footer:       "Отправлено ассистентом «" + venueName + "»",
		sendTimeout:  20 * time.Second,
		queue:        make(chan Notification, buffer),
	}
}

// Start launches the delivery worker.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.run(ctx)
	utils.LogInfo("🚀 Notification worker started", map[string]interface{}{
		"provider": s.emailService.GetProviderName(),
		"to":       s.adminEmail,
	})
}

// Stop closes the queue and waits until pending notifications are sent.
func (s *Service) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.queue)
	s.mu.Unlock()

	s.wg.Wait()
	utils.LogInfo("✅ Notification worker stopped", nil)
}

// Enqueue schedules n for delivery. It reports false when the service is
// nil, stopped or full.
func (s *Service) Enqueue(n Notification) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	select {
	case s.queue <- n:
		return true
	default:
		utils.LogWarn("⚠️ Notification queue full, dropping", map[string]interface{}{"subject": n.Subject})
		return false
	}
}

func (s *Service) run(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-s.queue:
			if !ok {
				return
			}
			s.deliver(ctx, n)
		}
	}
}

func (s *Service) deliver(ctx context.Context, n Notification) {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	data := email.TemplateData{
		Title:   n.Title,
		Message: n.Message,
		Fields:  n.Fields,
		Footer:  s.footer,
	}
	msg := email.Message{
		To:      s.adminEmail,
		Subject: n.Subject,
		HTML:    email.BuildHTML(data),
		Text:    email.BuildText(data),
		Tag:     n.Kind,
	}
	if err := s.emailService.Send(sendCtx, msg); err != nil {
		utils.LogError("❌ Failed to send staff email", err, map[string]interface{}{
			"subject":  n.Subject,
			"kind":     n.Kind,
			"provider": s.emailService.GetProviderName(),
		})
		return
	}
	utils.LogInfo("✅ Staff email sent", map[string]interface{}{"subject": n.Subject})
}
