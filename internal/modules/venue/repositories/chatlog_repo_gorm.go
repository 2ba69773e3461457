package repositories

import (
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
)

type chatLogRepoGorm struct {
	db *gorm.DB
}

// NewChatLogRepoGorm stores the conversation log in venue_chat_logs.
func NewChatLogRepoGorm(db *gorm.DB) ChatLogRepo {
	return &chatLogRepoGorm{db: db}
}

func (r *chatLogRepoGorm) Append(entry *models.LogEntry) error {
	return r.db.Create(entry).Error
}

func (r *chatLogRepoGorm) List() ([]models.LogEntry, error) {
	var entries []models.LogEntry
	err := r.db.Order(`"timestamp" ASC`).Find(&entries).Error
	return entries, err
}
