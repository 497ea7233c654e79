package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/response"
)

func roleFromContext(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return user.Role(role), true
}

// RequirePermission allows only roles granted the permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := roleFromContext(r)
			if !ok || !user.HasPermission(role, permission) {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaffProfile requires a temporary staff account linked to a staff record
func RequireStaffProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrStaffProfileRequired)
			return
		}

		role, _ := claims["role"].(string)
		staffID, ok := claims["staff_id"].(string)
		if role != string(user.RoleStaff) || !ok || staffID == "" {
			response.HandleError(w, user.ErrStaffProfileRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
