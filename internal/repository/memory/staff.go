package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
)

type staffRepositoryImpl struct {
	members *table[staff.StaffMember]
}

func NewStaffRepository() staff.StaffRepository {
	return &staffRepositoryImpl{members: newTable(cloneStaffMember)}
}

// Create implements staff.StaffRepository.
func (r *staffRepositoryImpl) Create(ctx context.Context, member staff.StaffMember) (staff.StaffMember, error) {
	if member.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return staff.StaffMember{}, err
		}
		member.ID = id.String()
	}
	now := time.Now()
	member.CreatedAt, member.UpdatedAt = now, now
	inserted := r.members.insertUnique(member.ID, member, func(existing staff.StaffMember) bool {
		return strings.EqualFold(existing.Email, member.Email)
	})
	if !inserted {
		return staff.StaffMember{}, staff.ErrStaffEmailExists
	}
	return cloneStaffMember(member), nil
}

// GetByID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.StaffMember, error) {
	return r.members.get(id)
}

// GetByEmail implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByEmail(ctx context.Context, email string) (staff.StaffMember, error) {
	return r.members.find(func(m staff.StaffMember) bool {
		return strings.EqualFold(m.Email, email)
	})
}

// List implements staff.StaffRepository.
func (r *staffRepositoryImpl) List(ctx context.Context) ([]staff.StaffMember, error) {
	return r.members.list(nil), nil
}

// SwapMentor implements staff.StaffRepository. The read of the previous
// mentor and the write happen under one lock.
func (r *staffRepositoryImpl) SwapMentor(ctx context.Context, staffID string, mentorID string) (*string, error) {
	var previous *string
	err := r.members.update(staffID, func(m *staff.StaffMember) error {
		previous = cloneStringPtr(m.MentorID)
		m.MentorID = &mentorID
		m.UpdatedAt = time.Now()
		return nil
	})
	return previous, err
}

// SetHasJobDescription implements staff.StaffRepository.
func (r *staffRepositoryImpl) SetHasJobDescription(ctx context.Context, staffID string, has bool) error {
	return r.members.update(staffID, func(m *staff.StaffMember) error {
		m.HasJobDescription = has
		m.UpdatedAt = time.Now()
		return nil
	})
}

func cloneStaffMember(m staff.StaffMember) staff.StaffMember {
	m.Phone = cloneStringPtr(m.Phone)
	m.PreferredSubjects = cloneStrings(m.PreferredSubjects)
	m.MentorID = cloneStringPtr(m.MentorID)
	m.MentorName = cloneStringPtr(m.MentorName)
	return m
}
