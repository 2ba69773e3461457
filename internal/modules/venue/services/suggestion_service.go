package services

import (
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// SuggestionInput is the admin form for a follow-up prompt.
type SuggestionInput struct {
	Topic    string `json:"topic" form:"topic"`
	Text     string `json:"text" form:"text"`
	Question string `json:"question" form:"question"`
	Answer   string `json:"answer" form:"answer"`
}

type SuggestionService struct {
	repo repositories.SuggestionRepo
}

func NewSuggestionService(repo repositories.SuggestionRepo) *SuggestionService {
	return &SuggestionService{repo: repo}
}

func (s *SuggestionService) All() *filestore.OrderedMap[[]models.SuggestionItem] {
	return s.repo.All()
}

// ForTopic returns the topic's items, falling back to the default topic
// when the topic is unknown or empty.
func (s *SuggestionService) ForTopic(topic string) []models.SuggestionItem {
	items, _ := s.repo.Items(topic)
	if len(items) == 0 {
		items, _ = s.repo.Items(models.DefaultTopic)
	}
	if items == nil {
		items = []models.SuggestionItem{}
	}
	return items
}

// Answer returns the canned answer for a trigger phrase.
func (s *SuggestionService) Answer(question string) (string, error) {
	question = utils.NormalizeQuestion(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", repositories.ErrInvalid)
	}
	_, item, ok := s.repo.FindByQuestion(question)
	if !ok {
		return "", fmt.Errorf("answer for %q %w", question, repositories.ErrNotFound)
	}
	return item.Answer, nil
}

func (s *SuggestionService) Add(admin string, in SuggestionInput) error {
	topic := repositories.NormalizeTopic(in.Topic)
	item := models.SuggestionItem{
		Text:     strings.TrimSpace(in.Text),
		Question: utils.NormalizeQuestion(in.Question),
		Answer:   strings.TrimSpace(in.Answer),
	}
	if topic == "" || item.Text == "" || item.Question == "" || item.Answer == "" {
		return fmt.Errorf("%w: topic, text, question and answer are required", repositories.ErrInvalid)
	}
	if err := s.repo.Add(topic, item); err != nil {
		return err
	}
	audit(admin, "suggestion.add", map[string]interface{}{"topic": topic, "text": item.Text})
	return nil
}

func (s *SuggestionService) Delete(admin, topic, text string) error {
	topic = repositories.NormalizeTopic(topic)
	if err := s.repo.Delete(topic, text); err != nil {
		return err
	}
	audit(admin, "suggestion.delete", map[string]interface{}{"topic": topic, "text": text})
	return nil
}
