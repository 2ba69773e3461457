package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// ChatLogRepo records every resolved chat exchange.
type ChatLogRepo interface {
	Append(entry *models.LogEntry) error
	List() ([]models.LogEntry, error)
}

type chatLogRepo struct {
	file        *appendFile[models.LogEntry]
	files       *filestore.Files
	path        string
	backupEvery int
}

// NewChatLogRepo writes the log without per-write backups; instead a copy
// is saved every backupEvery entries.
func NewChatLogRepo(files *filestore.Files, path string, backupEvery int) ChatLogRepo {
	return &chatLogRepo{
		file:        newAppendFile[models.LogEntry](files, path, false),
		files:       files,
		path:        path,
		backupEvery: backupEvery,
	}
}

func (r *chatLogRepo) Append(entry *models.LogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	n, err := r.file.append(*entry)
	if err != nil {
		return fmt.Errorf("failed to save log entry: %w", err)
	}

	if r.backupEvery > 0 && n%r.backupEvery == 0 {
		backup, err := r.files.Backup(r.path)
		if err != nil {
			utils.LogError("failed to back up conversation log", err, nil)
		} else {
			utils.LogInfo("🔄 Conversation log backed up", map[string]interface{}{"backup": backup, "entries": n})
		}
	}
	return nil
}

func (r *chatLogRepo) List() ([]models.LogEntry, error) {
	return r.file.list()
}
