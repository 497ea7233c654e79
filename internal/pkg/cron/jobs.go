package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/interview"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
)

// TokenPruner forgets revoked tokens that can no longer verify.
type TokenPruner interface {
	PruneRevoked() int
}

// MaintenanceJobs keeps in-memory state tidy while the server runs.
type MaintenanceJobs struct {
	tokens           TokenPruner
	leaveService     leave.LeaveService
	interviewService interview.InterviewService
	now              func() time.Time
}

func NewMaintenanceJobs(tokens TokenPruner, leaveService leave.LeaveService, interviewService interview.InterviewService) *MaintenanceJobs {
	return &MaintenanceJobs{
		tokens:           tokens,
		leaveService:     leaveService,
		interviewService: interviewService,
		now:              time.Now,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("prune_revoked_tokens", 15*time.Minute, j.PruneRevokedTokens)
	scheduler.AddJob("release_finished_substitutions", time.Hour, j.ReleaseFinishedSubstitutions)
	scheduler.AddJob("end_past_interviews", 10*time.Minute, j.EndPastInterviews)
}

func (j *MaintenanceJobs) PruneRevokedTokens(ctx context.Context) error {
	if pruned := j.tokens.PruneRevoked(); pruned > 0 {
		slog.Info("cron: pruned revoked tokens", "count", pruned)
	}
	return nil
}

func (j *MaintenanceJobs) ReleaseFinishedSubstitutions(ctx context.Context) error {
	released, err := j.leaveService.ReleaseFinishedSubstitutions(ctx, j.now())
	if err != nil {
		return err
	}
	if released > 0 {
		slog.Info("cron: released finished substitutions", "count", released)
	}
	return nil
}

func (j *MaintenanceJobs) EndPastInterviews(ctx context.Context) error {
	ended, err := j.interviewService.EndPastInterviews(ctx, j.now())
	if err != nil {
		return err
	}
	if ended > 0 {
		slog.Info("cron: ended past interviews", "count", ended)
	}
	return nil
}
