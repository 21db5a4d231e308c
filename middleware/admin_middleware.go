package middleware

import (
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/aamoria/wellness-api/auth"
	"github.com/aamoria/wellness-api/logger"
	"github.com/aamoria/wellness-api/response"
	"github.com/aamoria/wellness-api/utils"
)

// RequireAdmin wraps next so it only runs for callers whose validated token
// carries the admin role.
func RequireAdmin(log *logger.Logger) func(http.HandlerFunc) http.HandlerFunc {
	mwLog := log.With("middleware", "RequireAdmin")
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			subject, ok := utils.GetSubject(r)
			if !ok || subject == "" {
				response.Status(w, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
				return
			}
			claims := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			custom, _ := claims.CustomClaims.(*auth.CustomClaims)
			if !custom.IsAdmin() {
				mwLog.Warn("Non-admin caller on admin route", "subject", subject, "path", r.URL.Path)
				response.Status(w, http.StatusForbidden, "forbidden", "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}
