package repositories

import (
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
)

type FeedbackRepo interface {
	Create(fb *models.Feedback) error
	List() ([]models.Feedback, error)
}

type feedbackRepo struct {
	file *appendFile[models.Feedback]
}

func NewFeedbackRepo(files *filestore.Files, path string) FeedbackRepo {
	return &feedbackRepo{file: newAppendFile[models.Feedback](files, path, false)}
}

func (r *feedbackRepo) Create(fb *models.Feedback) error {
	if fb.Timestamp.IsZero() {
		fb.Timestamp = time.Now()
	}
	if _, err := r.file.append(*fb); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepo) List() ([]models.Feedback, error) {
	return r.file.list()
}
