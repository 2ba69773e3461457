package services

import (
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
)

type FeedbackService struct {
	repo repositories.FeedbackRepo
}

func NewFeedbackService(repo repositories.FeedbackRepo) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Submit records a rating of an answer.
func (s *FeedbackService) Submit(question, feedback string) error {
	fb := &models.Feedback{
		Question: strings.TrimSpace(question),
		Feedback: strings.TrimSpace(feedback),
	}
	if fb.Feedback == "" {
		return fmt.Errorf("%w: feedback is required", repositories.ErrInvalid)
	}
	return s.repo.Create(fb)
}

func (s *FeedbackService) List() ([]models.Feedback, error) {
	return s.repo.List()
}
