package middleware

import (
	"context"
	"net/http"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/aamoria/wellness-api/auth"
	"github.com/aamoria/wellness-api/logger"
	"github.com/aamoria/wellness-api/response"
)

// EnsureValidToken validates a bearer token (or the auth_token cookie) when
// one is present. Requests without credentials pass through unauthenticated;
// RequireAdmin decides per route.
func EnsureValidToken(s auth.Settings, log *logger.Logger) (func(http.Handler) http.Handler, error) {
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(s.SecretKey), nil
	}
	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		s.Issuer,
		[]string{s.Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &auth.CustomClaims{}
		}),
		validator.WithAllowedClockSkew(30*time.Second),
	)
	if err != nil {
		return nil, err
	}

	mwLog := log.With("middleware", "EnsureValidToken")
	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		mwLog.Info("Rejected token", "path", r.URL.Path, "error", err)
		response.Status(w, http.StatusUnauthorized, "unauthorized", "Failed to validate JWT.")
	}

	mw := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithCredentialsOptional(true),
		jwtmiddleware.WithTokenExtractor(jwtmiddleware.MultiTokenExtractor(
			jwtmiddleware.AuthHeaderTokenExtractor,
			jwtmiddleware.CookieTokenExtractor("auth_token"),
		)),
	)
	return mw.CheckJWT, nil
}
