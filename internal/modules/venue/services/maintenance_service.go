package services

import (
	"context"
	"errors"
	"time"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/upload"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// MaintenanceService runs the periodic housekeeping: snapshots of every
// data file, pruning of old backups and eviction of idle conversations.
type MaintenanceService struct {
	files     *filestore.Files
	paths     []string
	retention int
	history   *History
	idleTTL   time.Duration
	offsite   *upload.Service
}

func NewMaintenanceService(files *filestore.Files, paths []string, retention int, history *History, idleTTL time.Duration) *MaintenanceService {
	return &MaintenanceService{
		files:     files,
		paths:     paths,
		retention: retention,
		history:   history,
		idleTTL:   idleTTL,
	}
}

// WithOffsite copies every scheduled snapshot to off-site storage. A nil
// service disables the copies.
func (s *MaintenanceService) WithOffsite(svc *upload.Service) *MaintenanceService {
	s.offsite = svc
	return s
}

// Snapshot backs up every existing data file. Missing files are skipped.
func (s *MaintenanceService) Snapshot() ([]string, error) {
	var (
		created []string
		errs    []error
	)
	for _, path := range s.paths {
		backup, err := s.files.Backup(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if backup != "" {
			created = append(created, backup)
		}
	}
	return created, errors.Join(errs...)
}

// Prune keeps the newest retention backups per data file.
func (s *MaintenanceService) Prune() (int, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	total := 0
	var errs []error
	for _, path := range s.paths {
		n, err := s.files.PruneBackups(path, s.retention)
		total += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

// CopyOffsite uploads snapshot files when off-site storage is configured
// and returns how many were stored.
func (s *MaintenanceService) CopyOffsite(ctx context.Context, paths []string) (int, error) {
	if s.offsite == nil || len(paths) == 0 {
		return 0, nil
	}
	results, err := s.offsite.UploadFiles(ctx, paths)
	return len(results), err
}

func (s *MaintenanceService) EvictIdle() int {
	if s.history == nil || s.idleTTL <= 0 {
		return 0
	}
	return s.history.EvictIdle(s.idleTTL)
}

// Register adds the backup and eviction jobs to sched.
func (s *MaintenanceService) Register(sched *scheduler.Scheduler, backupSchedule string) error {
	if err := sched.AddJob("backup", backupSchedule, func() error {
		created, err := s.Snapshot()
		if err != nil {
			return err
		}
		uploaded, err := s.CopyOffsite(context.Background(), created)
		if err != nil {
			utils.LogError("off-site backup copy failed", err, map[string]interface{}{"uploaded": uploaded})
		}
		pruned, err := s.Prune()
		utils.LogInfo("💾 Scheduled backup finished", map[string]interface{}{
			"created":  len(created),
			"uploaded": uploaded,
			"pruned":   pruned,
		})
		return err
	}); err != nil {
		return err
	}

	return sched.AddJob("history-eviction", "@every 10m", func() error {
		if n := s.EvictIdle(); n > 0 {
			utils.LogInfo("🧹 Evicted idle conversations", map[string]interface{}{"users": n})
		}
		return nil
	})
}
