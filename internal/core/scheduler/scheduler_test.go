package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddReplaceRemove(t *testing.T) {
	s := NewScheduler()

	require.NoError(t, s.AddJob("backup", "0 3 * * *", func() error { return nil }))
	require.NoError(t, s.AddJob("backup", "0 4 * * *", func() error { return nil }))
	require.NoError(t, s.AddJob("evict", "*/10 * * * * *", func() error { return nil }))
	assert.Equal(t, []string{"backup", "evict"}, s.Jobs())

	s.RemoveJob("backup")
	assert.Equal(t, []string{"evict"}, s.Jobs())
}

func TestScheduler_RejectsBadSchedule(t *testing.T) {
	s := NewScheduler()
	err := s.AddJob("broken", "every day", func() error { return nil })
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 4)
	require.NoError(t, s.AddJob("tick", "@every 1s", func() error {
		ran <- struct{}{}
		return errors.New("logged, not fatal")
	}))

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestWrap_RecoversPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		wrap("boom", func() error { panic("boom") })()
	})
}
