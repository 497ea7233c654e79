package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/auth"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	SignIn(w http.ResponseWriter, r *http.Request)
	SignOut(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// SignIn implements AuthHandler.
func (a *AuthHandlerImpl) SignIn(w http.ResponseWriter, r *http.Request) {
	var signInReq auth.SignInRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&signInReq); err != nil {
		slog.Error("SignIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := signInReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Call service
	tokenResponse, err := a.authService.SignIn(r.Context(), signInReq)
	if err != nil {
		slog.Warn("SignIn failed", "email", signInReq.Email, "role", signInReq.Role, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signed in successfully", tokenResponse)
}

// SignOut implements AuthHandler.
func (a *AuthHandlerImpl) SignOut(w http.ResponseWriter, r *http.Request) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.SignOut(r.Context(), token.JwtID(), token.Expiration().Unix()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signed out successfully", nil)
}
