package leave

import (
	"context"
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
)

type LeaveService interface {
	SuggestSubstitutes(ctx context.Context, staffID string) (matching.SuggestionResponse, error)
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveApplicationResponse, error)
	ListMine(ctx context.Context, staffID string) ([]LeaveApplicationResponse, error)
	List(ctx context.Context, filter LeaveApplicationFilter) ([]LeaveApplicationResponse, error)
	Approve(ctx context.Context, req DecideLeaveRequest) (LeaveApplicationResponse, error)
	Reject(ctx context.Context, req DecideLeaveRequest) (LeaveApplicationResponse, error)

	// ReleaseFinishedSubstitutions gives back the load of substitutes whose
	// approved cover ended before now and returns how many were released.
	ReleaseFinishedSubstitutions(ctx context.Context, now time.Time) (int, error)
}
