package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/auth"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/jwt"
	"github.com/tscs-kln/tscs-backend-go/internal/repository/memory"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

// SignIn implements auth.AuthService.
func (a *AuthServiceImpl) SignIn(ctx context.Context, req auth.SignInRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// The role picked on the sign-in form must be the account's role
	if userData.Role != user.Role(req.Role) {
		slog.Warn("sign-in role mismatch", "user_id", userData.ID, "requested_role", req.Role)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role, jwt.ProfileClaims{
		StaffID:  userData.StaffID,
		MentorID: userData.MentorID,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		Role:                 string(userData.Role),
		Name:                 userData.Name,
	}, nil
}

// SignOut implements auth.AuthService.
func (a *AuthServiceImpl) SignOut(ctx context.Context, tokenID string, expiresAt int64) error {
	if tokenID == "" {
		return auth.ErrInvalidToken
	}
	if !a.Service.IsTokenRevoked(tokenID) {
		a.Service.RevokeToken(tokenID, expiresAt)
	}
	return nil
}
