package scheduler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// Scheduler runs named maintenance jobs (backups, pruning, history
// eviction) on cron expressions. Five-field expressions and the optional
// leading seconds field are both accepted.
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID
	jobsMux sync.RWMutex
}

// NewScheduler creates a new scheduler
func NewScheduler() *Scheduler {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &Scheduler{
		cron: cron.New(cron.WithParser(parser)),
		jobs: make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	utils.LogInfo("⏰ Scheduler started", map[string]interface{}{"jobs": s.Jobs()})
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	utils.LogInfo("⏰ Scheduler stopped", nil)
}

// AddJob registers job under name, replacing a previous job with that name.
func (s *Scheduler) AddJob(name, schedule string, job func() error) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}

	entryID, err := s.cron.AddFunc(schedule, wrap(name, job))
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	return nil
}

// RemoveJob removes a job from the scheduler
func (s *Scheduler) RemoveJob(name string) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}
}

// Jobs returns the registered job names, sorted.
func (s *Scheduler) Jobs() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func wrap(name string, job func() error) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				utils.LogError("scheduled job panicked", fmt.Errorf("%v", r), map[string]interface{}{"job": name})
			}
		}()
		if err := job(); err != nil {
			utils.LogError("scheduled job failed", err, map[string]interface{}{"job": name})
			return
		}
		utils.LogInfo("scheduled job done", map[string]interface{}{"job": name})
	}
}
