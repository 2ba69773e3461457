package services

import (
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
)

// DefaultStatsPeriod is used when the dashboard asks for no period.
const DefaultStatsPeriod = "last_7_days"

// Stats is the admin dashboard summary for one period.
type Stats struct {
	Period          string                 `json:"period"`
	Range           analytics.DateRange    `json:"range"`
	Cards           []analytics.StatCard   `json:"cards"`
	Sources         analytics.PieChartData `json:"sources"`
	QuestionsPerDay analytics.ChartData    `json:"questions_per_day"`
	BookingsPerDay  analytics.ChartData    `json:"bookings_per_day"`
	// Questions the knowledge base could not answer, most frequent first.
	Unanswered []analytics.Bucket `json:"unanswered"`
}

type StatsService struct {
	logs     repositories.ChatLogRepo
	bookings repositories.BookingRepo
	now      func() time.Time
}

func NewStatsService(logs repositories.ChatLogRepo, bookings repositories.BookingRepo) *StatsService {
	return &StatsService{logs: logs, bookings: bookings, now: time.Now}
}

// Compute aggregates the conversation log and bookings over period.
func (s *StatsService) Compute(period string) (*Stats, error) {
	if period == "" {
		period = DefaultStatsPeriod
	}
	rng, err := analytics.GetDateRange(period, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrInvalid, err)
	}
	prev := rng.Previous()

	entries, err := s.logs.List()
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.List()
	if err != nil {
		return nil, err
	}

	allLogs := analytics.NewAggregator(entries, func(e models.LogEntry) time.Time { return e.Timestamp })
	allBookings := analytics.NewAggregator(bookings, func(b models.Booking) time.Time { return b.CreatedAt })

	logs, prevLogs := allLogs.Within(rng), allLogs.Within(prev)
	books, prevBooks := allBookings.Within(rng), allBookings.Within(prev)
	answered := func(e models.LogEntry) bool {
		return e.Source == models.SourceKnowledgeBase || e.Source == models.SourceSuggestionMap
	}
	guests := func(b models.Booking) float64 { return float64(b.Guests) }

	const vsPrev = "к прошлому периоду"
	cards := []analytics.StatCard{
		analytics.ToStatCard(analytics.StatCardConfig{Title: "Вопросов", Format: "number", Icon: "💬", ChangeLabel: vsPrev},
			float64(logs.Count()), float64(prevLogs.Count())),
		analytics.ToStatCard(analytics.StatCardConfig{Title: "Ответов из базы", Format: "percentage", Icon: "📚", ChangeLabel: vsPrev},
			analytics.Percent(logs.Where(answered).Count(), logs.Count()),
			analytics.Percent(prevLogs.Where(answered).Count(), prevLogs.Count())),
		analytics.ToStatCard(analytics.StatCardConfig{Title: "Бронирований", Format: "number", Icon: "📅", ChangeLabel: vsPrev},
			float64(books.Count()), float64(prevBooks.Count())),
		analytics.ToStatCard(analytics.StatCardConfig{Title: "Гостей", Format: "number", Icon: "👥", ChangeLabel: vsPrev},
			books.Sum(guests), prevBooks.Sum(guests)),
	}

	unanswered := logs.
		Where(func(e models.LogEntry) bool { return !answered(e) }).
		CountBy(func(e models.LogEntry) string { return e.Question }, 10)

	return &Stats{
		Period:          period,
		Range:           rng,
		Cards:           cards,
		Sources:         analytics.ToPieChartData(logs.CountBy(func(e models.LogEntry) string { return e.Source }, 0)),
		QuestionsPerDay: analytics.ToLineChartData(logs.Daily(rng), "Вопросы"),
		BookingsPerDay:  analytics.ToBarChartData(books.Daily(rng), "Бронирования"),
		Unanswered:      unanswered,
	}, nil
}
