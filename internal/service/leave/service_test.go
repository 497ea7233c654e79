package leave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/notification"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/fixtures"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/sse"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
	"github.com/tscs-kln/tscs-backend-go/internal/repository/memory"
	matchingsvc "github.com/tscs-kln/tscs-backend-go/internal/service/matching"
	notificationsvc "github.com/tscs-kln/tscs-backend-go/internal/service/notification"
)

type leaveTestEnv struct {
	svc             leave.LeaveService
	applicationRepo leave.LeaveApplicationRepository
	staffRepo       staff.StaffRepository
	substituteRepo  staff.SubstituteRepository
	notifications   notification.Service
}

func setupLeaveService(t *testing.T) leaveTestEnv {
	t.Helper()

	env := leaveTestEnv{
		applicationRepo: memory.NewLeaveApplicationRepository(),
		staffRepo:       memory.NewStaffRepository(),
		substituteRepo:  memory.NewSubstituteRepository(fixtures.GetDefaultSubstitutes()...),
		notifications:   notificationsvc.NewNotificationService(memory.NewNotificationRepository(), sse.NewHub()),
	}
	require.NoError(t, fixtures.SeedDepartment(context.Background(), fixtures.Repositories{
		Users:             memory.NewUserRepository(),
		Staff:             env.staffRepo,
		Registrations:     memory.NewRegistrationRepository(),
		LeaveApplications: env.applicationRepo,
		JobDescriptions:   memory.NewJobDescriptionRepository(),
	}, "seed-password"))

	ranker := matchingsvc.NewInstrumentedRanker(matchingsvc.NewMatcher(matching.ScoringPairs), matching.RosterSubstitutes)
	env.svc = NewLeaveService(env.applicationRepo, env.staffRepo, env.substituteRepo, ranker, env.notifications)
	return env
}

func validApplication() leave.ApplyLeaveRequest {
	return leave.ApplyLeaveRequest{
		StaffID:      "STAFF001",
		StartDate:    "2025-11-03",
		EndDate:      "2025-11-05",
		Reason:       "Conference",
		SubstituteID: "SUB003",
	}
}

func substituteLoad(t *testing.T, repo staff.SubstituteRepository, id string) int {
	t.Helper()
	sub, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return sub.CurrentLoad
}

func TestLeaveService_SuggestSubstitutes_OnlyMatching(t *testing.T) {
	env := setupLeaveService(t)

	resp, err := env.svc.SuggestSubstitutes(context.Background(), "STAFF001")

	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, "SUB001", resp.Candidates[0].ID)
	assert.Equal(t, 2, resp.Candidates[0].MatchScore)
	assert.Equal(t, "SUB003", resp.Candidates[1].ID)
	assert.Equal(t, 1, resp.Candidates[1].MatchScore)
	require.NotNil(t, resp.BestMatch)
	assert.Equal(t, "SUB001", resp.BestMatch.ID)
	assert.Equal(t, []string{"Marketing Management", "Brand Management"}, resp.MatchedSubjects)
}

func TestLeaveService_SuggestSubstitutes_NoMatches(t *testing.T) {
	env := setupLeaveService(t)
	ctx := context.Background()

	created, err := env.staffRepo.Create(ctx, staff.StaffMember{
		Email:             "finance@kln.ac.lk",
		PreferredSubjects: []string{"Corporate Finance"},
	})
	require.NoError(t, err)

	resp, err := env.svc.SuggestSubstitutes(ctx, created.ID)

	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
	assert.Nil(t, resp.BestMatch)
}

func TestLeaveService_SuggestSubstitutes_UnknownStaff(t *testing.T) {
	env := setupLeaveService(t)

	_, err := env.svc.SuggestSubstitutes(context.Background(), "STAFF404")

	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestLeaveService_Apply_Success(t *testing.T) {
	env := setupLeaveService(t)

	resp, err := env.svc.Apply(context.Background(), validApplication())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2025-11-03", resp.StartDate)
	assert.Equal(t, "2025-11-05", resp.EndDate)
	assert.Equal(t, 3, resp.Days)
	require.NotNil(t, resp.SubstituteName)
	assert.Equal(t, "S.K. Fernando", *resp.SubstituteName)

	// Manual choice is kept even though SUB001 ranks higher
	assert.Equal(t, "SUB003", resp.SubstituteID)
	assert.Equal(t, 3, substituteLoad(t, env.substituteRepo, "SUB003"))
}

func TestLeaveService_Apply_Errors(t *testing.T) {
	env := setupLeaveService(t)
	ctx := context.Background()

	t.Run("end before start", func(t *testing.T) {
		req := validApplication()
		req.EndDate = "2025-11-01"
		_, err := env.svc.Apply(ctx, req)
		var validationErrs validator.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Contains(t, validationErrs.ToMap(), "end_date")
	})

	t.Run("missing substitute", func(t *testing.T) {
		req := validApplication()
		req.SubstituteID = ""
		_, err := env.svc.Apply(ctx, req)
		var validationErrs validator.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Contains(t, validationErrs.ToMap(), "substitute_id")
	})

	t.Run("unknown substitute", func(t *testing.T) {
		req := validApplication()
		req.SubstituteID = "SUB404"
		_, err := env.svc.Apply(ctx, req)
		assert.ErrorIs(t, err, staff.ErrSubstituteNotFound)
	})

	t.Run("unknown staff", func(t *testing.T) {
		req := validApplication()
		req.StaffID = "STAFF404"
		_, err := env.svc.Apply(ctx, req)
		assert.ErrorIs(t, err, staff.ErrStaffNotFound)
	})

	t.Run("substitute is applicant", func(t *testing.T) {
		req := validApplication()
		req.SubstituteID = "STAFF001"
		_, err := env.svc.Apply(ctx, req)
		assert.ErrorIs(t, err, leave.ErrSubstituteIsApplicant)
	})
}

func TestLeaveService_ListMine(t *testing.T) {
	env := setupLeaveService(t)
	ctx := context.Background()

	_, err := env.svc.Apply(ctx, validApplication())
	require.NoError(t, err)

	mine, err := env.svc.ListMine(ctx, "STAFF001")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "LV001", mine[0].ID)
	require.NotNil(t, mine[0].StaffName)
	assert.Equal(t, "K.M. Silva", *mine[0].StaffName)

	other, err := env.svc.ListMine(ctx, "STAFF002")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLeaveService_List_ByStatus(t *testing.T) {
	env := setupLeaveService(t)
	ctx := context.Background()

	_, err := env.svc.Apply(ctx, validApplication())
	require.NoError(t, err)

	pending := "pending"
	list, err := env.svc.List(ctx, leave.LeaveApplicationFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "pending", list[0].Status)

	all, err := env.svc.List(ctx, leave.LeaveApplicationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLeaveService_Approve_RaisesSubstituteLoad(t *testing.T) {
	env := setupLeaveService(t)
	ctx := context.Background()

	applied, err := env.svc.Apply(ctx, validApplication())
	require.NoError(t, err)

	resp, err := env.svc.Approve(ctx, leave.DecideLeaveRequest{ApplicationID: applied.ID, DecidedBy: "coordinator-1"})

	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.DecidedBy)
	assert.Equal(t, "coordinator-1", *resp.DecidedBy)
	assert.Equal(t, 4, substituteLoad(t, env.substituteRepo, "SUB003"))
}

func TestLeaveService_Decide_OnlyPending(t *testing.T) {
	env := setupLeaveService(t)
	ctx := context.Background()

	_, err := env.svc.Approve(ctx, leave.DecideLeaveRequest{ApplicationID: "LV001", DecidedBy: "coordinator-1"})
	assert.ErrorIs(t, err, leave.ErrLeaveApplicationAlreadyProcessed)

	applied, err := env.svc.Apply(ctx, validApplication())
	require.NoError(t, err)

	resp, err := env.svc.Reject(ctx, leave.DecideLeaveRequest{ApplicationID: applied.ID, DecidedBy: "hod-1"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, 3, substituteLoad(t, env.substituteRepo, "SUB003"))

	_, err = env.svc.Approve(ctx, leave.DecideLeaveRequest{ApplicationID: applied.ID, DecidedBy: "hod-1"})
	assert.ErrorIs(t, err, leave.ErrLeaveApplicationAlreadyProcessed)
}

func TestLeaveService_Decide_ConcurrentDecisionsCountOnce(t *testing.T) {
	env := setupLeaveService(t)
	ctx := t.Context()

	for range 50 {
		applied, err := env.svc.Apply(ctx, validApplication())
		require.NoError(t, err)
		before := substituteLoad(t, env.substituteRepo, "SUB003")

		decisions := []func(context.Context, leave.DecideLeaveRequest) (leave.LeaveApplicationResponse, error){
			env.svc.Approve, env.svc.Approve, env.svc.Reject,
		}
		results := make([]string, len(decisions))
		var wg sync.WaitGroup
		for i, decideFn := range decisions {
			wg.Add(1)
			go func() {
				defer wg.Done()
				resp, err := decideFn(ctx, leave.DecideLeaveRequest{ApplicationID: applied.ID, DecidedBy: "coordinator"})
				if err != nil {
					assert.ErrorIs(t, err, leave.ErrLeaveApplicationAlreadyProcessed)
					return
				}
				results[i] = resp.Status
			}()
		}
		wg.Wait()

		var winner string
		wins := 0
		for _, status := range results {
			if status != "" {
				winner = status
				wins++
			}
		}
		require.Equal(t, 1, wins)

		stored, err := env.applicationRepo.GetByID(ctx, applied.ID)
		require.NoError(t, err)
		assert.Equal(t, winner, string(stored.Status))

		want := before
		if stored.Status == leave.LeaveApplicationStatusApproved {
			want++
		}
		assert.Equal(t, want, substituteLoad(t, env.substituteRepo, "SUB003"))
	}
}

func TestLeaveService_Decide_NotFound(t *testing.T) {
	env := setupLeaveService(t)

	_, err := env.svc.Reject(context.Background(), leave.DecideLeaveRequest{ApplicationID: "LV404", DecidedBy: "hod-1"})

	assert.ErrorIs(t, err, leave.ErrLeaveApplicationNotFound)
}

func TestDecide_NotifiesApplicant(t *testing.T) {
	env := setupLeaveService(t)
	ctx := t.Context()

	approved, err := env.svc.Apply(ctx, validApplication())
	require.NoError(t, err)
	_, err = env.svc.Approve(ctx, leave.DecideLeaveRequest{ApplicationID: approved.ID, DecidedBy: "coordinator"})
	require.NoError(t, err)

	rejected, err := env.svc.Apply(ctx, validApplication())
	require.NoError(t, err)
	_, err = env.svc.Reject(ctx, leave.DecideLeaveRequest{ApplicationID: rejected.ID, DecidedBy: "coordinator"})
	require.NoError(t, err)

	list, err := env.notifications.GetNotifications(ctx, "STAFF001", false)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, notification.TypeLeaveRejected, list.Notifications[0].Type)
	assert.Equal(t, rejected.ID, list.Notifications[0].Data["application_id"])
	assert.Equal(t, notification.TypeLeaveApproved, list.Notifications[1].Type)
	assert.Equal(t, "Your leave from 2025-11-03 to 2025-11-05 has been approved", list.Notifications[1].Message)
}

func TestReleaseFinishedSubstitutions(t *testing.T) {
	env := setupLeaveService(t)
	ctx := t.Context()

	created, err := env.svc.Apply(ctx, validApplication())
	require.NoError(t, err)
	_, err = env.svc.Approve(ctx, leave.DecideLeaveRequest{ApplicationID: created.ID, DecidedBy: "coordinator"})
	require.NoError(t, err)
	require.Equal(t, 4, substituteLoad(t, env.substituteRepo, "SUB003"))

	pending, err := env.svc.Apply(ctx, validApplication())
	require.NoError(t, err)

	t.Run("last day of leave keeps the substitute", func(t *testing.T) {
		released, err := env.svc.ReleaseFinishedSubstitutions(ctx, time.Date(2025, time.November, 5, 15, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 0, released)
		assert.Equal(t, 4, substituteLoad(t, env.substituteRepo, "SUB003"))
	})

	t.Run("day after releases once", func(t *testing.T) {
		now := time.Date(2025, time.November, 6, 1, 0, 0, 0, time.UTC)
		released, err := env.svc.ReleaseFinishedSubstitutions(ctx, now)
		require.NoError(t, err)
		// The seeded LV001 was released already.
		assert.Equal(t, 1, released)
		assert.Equal(t, 3, substituteLoad(t, env.substituteRepo, "SUB003"))
		assert.Equal(t, 2, substituteLoad(t, env.substituteRepo, "SUB001"))

		stored, err := env.applicationRepo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.SubstituteReleasedAt)
		assert.True(t, stored.SubstituteReleasedAt.Equal(now))

		released, err = env.svc.ReleaseFinishedSubstitutions(ctx, now.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 0, released)
		assert.Equal(t, 3, substituteLoad(t, env.substituteRepo, "SUB003"))
	})

	t.Run("pending leave is ignored", func(t *testing.T) {
		stored, err := env.applicationRepo.GetByID(ctx, pending.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.SubstituteReleasedAt)
	})
}
