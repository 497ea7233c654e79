package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
)

func TestStaffRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewStaffRepository()

	created, err := repo.Create(ctx, staff.StaffMember{
		Name:              "K.M. Silva",
		Email:             "km.silva@kln.ac.lk",
		PreferredSubjects: []string{"Marketing Management", "Brand Management"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.PreferredSubjects, got.PreferredSubjects)

	byEmail, err := repo.GetByEmail(ctx, "KM.SILVA@kln.ac.lk")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestStaffRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewStaffRepository()

	_, err := repo.Create(ctx, staff.StaffMember{ID: "STAFF001", Email: "km.silva@kln.ac.lk"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, staff.StaffMember{ID: "STAFF009", Email: "Km.Silva@kln.ac.lk"})
	assert.ErrorIs(t, err, staff.ErrStaffEmailExists)
}

func TestStaffRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStaffRepository()
	_, err := repo.Create(ctx, staff.StaffMember{
		ID:                "STAFF001",
		Email:             "km.silva@kln.ac.lk",
		PreferredSubjects: []string{"Marketing Management"},
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "STAFF001")
	require.NoError(t, err)
	got.PreferredSubjects[0] = "changed"

	again, err := repo.GetByID(ctx, "STAFF001")
	require.NoError(t, err)
	assert.Equal(t, "Marketing Management", again.PreferredSubjects[0])
}

func TestStaffRepository_SwapMentor(t *testing.T) {
	ctx := context.Background()
	repo := NewStaffRepository()
	_, err := repo.Create(ctx, staff.StaffMember{ID: "STAFF002", Email: "rp.fernando@kln.ac.lk"})
	require.NoError(t, err)

	previous, err := repo.SwapMentor(ctx, "STAFF002", "M002")
	require.NoError(t, err)
	assert.Nil(t, previous)

	previous, err = repo.SwapMentor(ctx, "STAFF002", "M003")
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, "M002", *previous)

	got, err := repo.GetByID(ctx, "STAFF002")
	require.NoError(t, err)
	require.NotNil(t, got.MentorID)
	assert.Equal(t, "M003", *got.MentorID)

	_, err = repo.SwapMentor(ctx, "missing", "M002")
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestLeaveApplicationRepository_UpdateIfStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveApplicationRepository()
	created, err := repo.Create(ctx, leave.LeaveApplication{StaffID: "STAFF001", SubstituteID: "SUB001", Status: leave.LeaveApplicationStatusPending})
	require.NoError(t, err)

	approve := func(a *leave.LeaveApplication) error {
		a.Status = leave.LeaveApplicationStatusApproved
		return nil
	}

	updated, err := repo.UpdateIfStatus(ctx, created.ID, leave.LeaveApplicationStatusPending, approve)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveApplicationStatusApproved, updated.Status)

	_, err = repo.UpdateIfStatus(ctx, created.ID, leave.LeaveApplicationStatusPending, approve)
	assert.ErrorIs(t, err, ErrStatusChanged)

	// A failing mutation leaves the row untouched
	_, err = repo.UpdateIfStatus(ctx, created.ID, leave.LeaveApplicationStatusApproved, func(a *leave.LeaveApplication) error {
		a.Status = leave.LeaveApplicationStatusRejected
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveApplicationStatusApproved, stored.Status)

	_, err = repo.UpdateIfStatus(ctx, "missing", leave.LeaveApplicationStatusPending, approve)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestMentorRepository_ListKeepsSeedOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMentorRepository(
		staff.Mentor{ID: "M002", Name: "Dr. R. Fernando"},
		staff.Mentor{ID: "M001", Name: "Dr. T. Mahanama"},
		staff.Mentor{ID: "M003", Name: "Dr. S. Perera"},
	)

	mentors, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, mentors, 3)
	assert.Equal(t, "M002", mentors[0].ID)
	assert.Equal(t, "M001", mentors[1].ID)
	assert.Equal(t, "M003", mentors[2].ID)
}

func TestMentorRepository_AdjustAssignments(t *testing.T) {
	ctx := context.Background()
	repo := NewMentorRepository(staff.Mentor{ID: "M003", CurrentAssignments: 1})

	require.NoError(t, repo.AdjustAssignments(ctx, "M003", 1))
	m, err := repo.GetByID(ctx, "M003")
	require.NoError(t, err)
	assert.Equal(t, 2, m.CurrentAssignments)

	assert.Error(t, repo.AdjustAssignments(ctx, "M003", -3))
	m, err = repo.GetByID(ctx, "M003")
	require.NoError(t, err)
	assert.Equal(t, 2, m.CurrentAssignments)

	assert.ErrorIs(t, repo.AdjustAssignments(ctx, "M999", 1), ErrNoRows)
}

func TestSubstituteRepository_AdjustLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewSubstituteRepository(staff.SubstituteStaff{ID: "SUB002", CurrentLoad: 1})

	require.NoError(t, repo.AdjustLoad(ctx, "SUB002", 1))
	s, err := repo.GetByID(ctx, "SUB002")
	require.NoError(t, err)
	assert.Equal(t, 2, s.CurrentLoad)

	_, err = repo.GetByID(ctx, "SUB404")
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestRegistrationRepository_ListByStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistrationRepository()

	pendingReq, err := repo.Create(ctx, staff.RegistrationRequest{Name: "N.P. Jayawardena"})
	require.NoError(t, err)
	assert.Equal(t, staff.RegistrationStatusPending, pendingReq.Status)

	rejected, err := repo.Create(ctx, staff.RegistrationRequest{Name: "S.K. Fernando"})
	require.NoError(t, err)
	_, err = repo.UpdateIfStatus(ctx, rejected.ID, staff.RegistrationStatusPending, func(r *staff.RegistrationRequest) error {
		r.Status = staff.RegistrationStatusRejected
		return nil
	})
	require.NoError(t, err)

	_, err = repo.UpdateIfStatus(ctx, rejected.ID, staff.RegistrationStatusPending, func(r *staff.RegistrationRequest) error {
		r.Status = staff.RegistrationStatusApproved
		return nil
	})
	assert.ErrorIs(t, err, ErrStatusChanged)

	pending := staff.RegistrationStatusPending
	list, err := repo.List(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pendingReq.ID, list[0].ID)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLeaveApplicationRepository_GetByStaffID(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveApplicationRepository()

	first, err := repo.Create(ctx, leave.LeaveApplication{StaffID: "STAFF001", Status: leave.LeaveApplicationStatusPending})
	require.NoError(t, err)
	_, err = repo.Create(ctx, leave.LeaveApplication{StaffID: "STAFF002", Status: leave.LeaveApplicationStatusPending})
	require.NoError(t, err)

	mine, err := repo.GetByStaffID(ctx, "STAFF001")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	_, err = repo.UpdateIfStatus(ctx, first.ID, leave.LeaveApplicationStatusPending, func(a *leave.LeaveApplication) error {
		a.Status = leave.LeaveApplicationStatusApproved
		return nil
	})
	require.NoError(t, err)
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveApplicationStatusApproved, got.Status)
	assert.Equal(t, first.SubmittedAt, got.SubmittedAt)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	created, err := repo.Create(ctx, user.User{Email: "coordinator@kln.ac.lk", Role: user.RoleCoordinator})
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "Coordinator@KLN.ac.lk")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "nobody@kln.ac.lk")
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = repo.Create(ctx, user.User{Email: "coordinator@kln.ac.lk"})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}
