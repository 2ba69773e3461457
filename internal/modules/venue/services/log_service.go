package services

import (
	"bytes"
	"sort"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/export"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
)

// LogService is the admin view over the conversation log.
type LogService struct {
	repo     repositories.ChatLogRepo
	exporter *export.Service
}

func NewLogService(repo repositories.ChatLogRepo, exporter *export.Service) *LogService {
	return &LogService{repo: repo, exporter: exporter}
}

// Recent returns entries newest first; limit <= 0 means all.
func (s *LogService) Recent(limit int) ([]models.LogEntry, error) {
	entries, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	return entries, nil
}

// ExportJSON returns the log in its file format, oldest first.
func (s *LogService) ExportJSON() ([]byte, error) {
	entries, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	return filestore.Encode(entries)
}

// ExportTable renders the log as XLSX, CSV or PDF, newest first.
func (s *LogService) ExportTable(format export.Format) ([]byte, error) {
	entries, err := s.Recent(0)
	if err != nil {
		return nil, err
	}

	table := export.NewTable("Журнал диалогов", []string{"Время", "Пользователь", "Вопрос", "Ответ", "Источник"})
	table.Sheet = "Логи"
	table.Style.ColumnWidths = map[int]float64{0: 20, 1: 16, 2: 40, 3: 80, 4: 16}
	table.Style.Landscape = true
	for _, e := range entries {
		table.AddRow(e.Timestamp.Format("2006-01-02 15:04:05"), e.UserID, e.Question, e.Answer, e.Source)
	}

	var buf bytes.Buffer
	if err := s.exporter.ExportToWriter(table, format, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
