package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hrstack/hrms-backend-go/internal/domain/user"
	"github.com/hrstack/hrms-backend-go/internal/handler/http/response"
)

// RequireAdmin allows only the admin role through.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hasRole(r, user.RoleAdmin) {
			response.HandleError(w, user.ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireHR allows hr and admin through.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hasRole(r, user.RoleHR) && !hasRole(r, user.RoleAdmin) {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func hasRole(r *http.Request, want user.Role) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return false
	}
	role, ok := claims["role"].(string)
	return ok && user.Role(role) == want
}
