package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/auth"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/response"
)

// RevocationChecker reports whether the token with the given jti was signed out.
type RevocationChecker interface {
	IsTokenRevoked(tokenID string) bool
}

// AuthRequired rejects requests without a valid, unrevoked access token. It
// must run after jwtauth.Verifier.
func AuthRequired(revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if revoked.IsTokenRevoked(token.JwtID()) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
