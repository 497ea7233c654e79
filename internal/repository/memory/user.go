package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
)

type userRepositoryImpl struct {
	users *table[user.User]
}

func NewUserRepository() user.UserRepository {
	return &userRepositoryImpl{users: newTable(cloneUser)}
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return user.User{}, err
		}
		u.ID = id.String()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	inserted := r.users.insertUnique(u.ID, u, func(existing user.User) bool {
		return strings.EqualFold(existing.Email, u.Email)
	})
	if !inserted {
		return user.User{}, user.ErrUserEmailExists
	}
	return cloneUser(u), nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.users.get(id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.users.find(func(u user.User) bool {
		return strings.EqualFold(u.Email, email)
	})
}

func cloneUser(u user.User) user.User {
	u.PasswordHash = cloneStringPtr(u.PasswordHash)
	u.StaffID = cloneStringPtr(u.StaffID)
	u.MentorID = cloneStringPtr(u.MentorID)
	return u
}
