package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/interview"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
)

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	s.RunOnce(t.Context())

	// A failing job does not stop the others.
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestScheduler_StartRunsImmediatelyAndOnInterval(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(t.Context())
	s.Start(t.Context())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler()
	s.Stop()
}

type fakePruner struct{ calls int }

func (f *fakePruner) PruneRevoked() int {
	f.calls++
	return 2
}

type fakeLeaveService struct {
	leave.LeaveService
	releasedAt []time.Time
	err        error
}

func (f *fakeLeaveService) ReleaseFinishedSubstitutions(ctx context.Context, now time.Time) (int, error) {
	f.releasedAt = append(f.releasedAt, now)
	return 1, f.err
}

type fakeInterviewService struct {
	interview.InterviewService
	endedAt []time.Time
}

func (f *fakeInterviewService) EndPastInterviews(ctx context.Context, now time.Time) (int, error) {
	f.endedAt = append(f.endedAt, now)
	return 1, nil
}

func TestMaintenanceJobs(t *testing.T) {
	pruner := &fakePruner{}
	leaves := &fakeLeaveService{}
	interviews := &fakeInterviewService{}
	jobs := NewMaintenanceJobs(pruner, leaves, interviews)
	fixed := time.Date(2025, time.November, 6, 0, 0, 0, 0, time.UTC)
	jobs.now = func() time.Time { return fixed }

	s := NewScheduler()
	jobs.RegisterJobs(s)
	s.RunOnce(t.Context())

	assert.Equal(t, 1, pruner.calls)
	assert.Equal(t, []time.Time{fixed}, leaves.releasedAt)
	assert.Equal(t, []time.Time{fixed}, interviews.endedAt)

	leaves.err = errors.New("repository unavailable")
	assert.ErrorIs(t, jobs.ReleaseFinishedSubstitutions(t.Context()), leaves.err)
}
