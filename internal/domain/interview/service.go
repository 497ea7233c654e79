package interview

import (
	"context"
	"time"
)

type InterviewService interface {
	Schedule(ctx context.Context, req ScheduleInterviewRequest) (InterviewResponse, error)
	List(ctx context.Context, filter InterviewFilter) ([]InterviewResponse, error)
	Get(ctx context.Context, id string) (InterviewResponse, error)

	SetMarkingScheme(ctx context.Context, req SetMarkingSchemeRequest) (InterviewResponse, error)
	AssignMarks(ctx context.Context, req AssignMarksRequest) (InterviewResponse, error)

	SubmitShortlist(ctx context.Context, req SubmitShortlistRequest) (InterviewResponse, error)
	ApproveShortlist(ctx context.Context, req DecideShortlistRequest) (InterviewResponse, error)
	RejectShortlist(ctx context.Context, req DecideShortlistRequest) (InterviewResponse, error)

	// EndPastInterviews marks upcoming interviews that have started as ended
	// and returns how many changed.
	EndPastInterviews(ctx context.Context, now time.Time) (int, error)
}
