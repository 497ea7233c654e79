package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/auth"
)

// claimString reads a string claim from the verified token.
func claimString(r *http.Request, key string) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", auth.ErrInvalidToken
	}
	return value, nil
}

// statusParam returns the ?status= filter, nil when absent.
func statusParam(r *http.Request) *string {
	status := r.URL.Query().Get("status")
	if status == "" {
		return nil
	}
	return &status
}

// recipientID resolves the notification recipient of the caller: the staff
// profile for temporary staff, the mentor profile for mentors and the user
// account otherwise.
func recipientID(r *http.Request) (string, error) {
	for _, key := range []string{"staff_id", "mentor_id", "user_id"} {
		if id, err := claimString(r, key); err == nil {
			return id, nil
		}
	}
	return "", auth.ErrInvalidToken
}
