package utils

import (
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/aamoria/wellness-api/auth"
)

func GetSubject(r *http.Request) (string, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok {
		return "", false
	}
	return claims.RegisteredClaims.Subject, true
}

// GetAdminActor names the caller for audit fields: the token email when
// present, otherwise its subject.
func GetAdminActor(r *http.Request) string {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok {
		return ""
	}
	if custom, ok := claims.CustomClaims.(*auth.CustomClaims); ok && custom.Email != "" {
		return custom.Email
	}
	return claims.RegisteredClaims.Subject
}
