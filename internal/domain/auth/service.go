package auth

import (
	"context"
)

type AuthService interface {
	SignIn(ctx context.Context, req SignInRequest) (TokenResponse, error)
	SignOut(ctx context.Context, tokenID string, expiresAt int64) error
}
