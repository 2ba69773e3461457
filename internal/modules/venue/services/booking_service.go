package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/email"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/export"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/notification"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// BookingInput is the public booking form.
type BookingInput struct {
	Name      string `json:"name" form:"name"`
	Phone     string `json:"phone" form:"phone"`
	Date      string `json:"date" form:"date"`
	Guests    string `json:"guests" form:"guests"`
	EventType string `json:"event_type" form:"event_type"`
}

// Notifier receives staff notifications. *notification.Service satisfies it.
type Notifier interface {
	Enqueue(n notification.Notification) bool
}

type BookingService struct {
	repo     repositories.BookingRepo
	exporter *export.Service
	notifier Notifier
}

func NewBookingService(repo repositories.BookingRepo, exporter *export.Service) *BookingService {
	return &BookingService{repo: repo, exporter: exporter}
}

// WithNotifier makes Create alert staff about every stored booking.
func (s *BookingService) WithNotifier(n Notifier) *BookingService {
	s.notifier = n
	return s
}

// Create validates the form and stores the booking. All fields are required
// and guests must be a positive number.
func (s *BookingService) Create(in BookingInput) (*models.Booking, error) {
	b := &models.Booking{
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Date:      strings.TrimSpace(in.Date),
		EventType: strings.TrimSpace(in.EventType),
	}
	guests := strings.TrimSpace(in.Guests)
	if b.Name == "" || b.Phone == "" || b.Date == "" || guests == "" || b.EventType == "" {
		return nil, fmt.Errorf("%w: name, phone, date, guests and event_type are required", repositories.ErrInvalid)
	}
	n, err := strconv.Atoi(guests)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: guests must be a positive number", repositories.ErrInvalid)
	}
	b.Guests = n

	if err := s.repo.Create(b); err != nil {
		return nil, err
	}
	utils.LogInfo("📅 New booking", map[string]interface{}{"booking_id": b.ID.String(), "date": b.Date, "guests": b.Guests})
	if s.notifier != nil {
		s.notifier.Enqueue(bookingNotification(b))
	}
	return b, nil
}

func bookingNotification(b *models.Booking) notification.Notification {
	return notification.Notification{
		Kind:    "booking",
		Subject: fmt.Sprintf("Новая бронь: %s, %s", b.Date, b.Name),
		Title:   "Новая заявка на бронирование",
		Fields: []email.Field{
			{Label: "Имя", Value: b.Name},
			{Label: "Телефон", Value: b.Phone},
			{Label: "Дата", Value: b.Date},
			{Label: "Гостей", Value: strconv.Itoa(b.Guests)},
			{Label: "Тип события", Value: b.EventType},
		},
	}
}

func (s *BookingService) List() ([]models.Booking, error) {
	bookings, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// Export renders all bookings as a table in the given format.
func (s *BookingService) Export(format export.Format) ([]byte, error) {
	bookings, err := s.List()
	if err != nil {
		return nil, err
	}

	table := export.NewTable("Бронирования", []string{"Дата создания", "Имя", "Телефон", "Дата", "Гостей", "Тип события"})
	table.Sheet = "Бронирования"
	table.Style.ColumnWidths = map[int]float64{0: 20, 1: 24, 2: 18, 3: 14, 4: 10, 5: 24}
	table.Style.Landscape = true
	for _, b := range bookings {
		table.AddRow(b.CreatedAt.Format("2006-01-02 15:04"), b.Name, b.Phone, b.Date, b.Guests, b.EventType)
	}
	return s.exporter.Export(table, format)
}
