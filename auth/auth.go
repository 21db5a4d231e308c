package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

// Settings describe how admin tokens are signed and which claims they carry.
type Settings struct {
	SecretKey string
	Issuer    string
	Audience  string
	TTL       time.Duration
}

// CustomClaims are the non-registered claims of an admin token. They are
// decoded by the request validator, so Validate runs on every request.
type CustomClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

func (c *CustomClaims) Validate(ctx context.Context) error {
	if c.Role == "" {
		return fmt.Errorf("token has no role")
	}
	return nil
}

func (c *CustomClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// CreateAdminToken signs an HS256 token for an admin identified by subject.
func CreateAdminToken(s Settings, subject, email string) (string, error) {
	if s.SecretKey == "" {
		return "", fmt.Errorf("auth: JWT secret key not set")
	}
	if subject == "" {
		return "", fmt.Errorf("auth: subject is required")
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"iss":  s.Issuer,
		"aud":  []string{s.Audience},
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
		"role": RoleAdmin,
	}
	if email != "" {
		claims["email"] = email
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.SecretKey))
}

// VerifyToken parses tokenString with the same settings used to sign it.
func VerifyToken(s Settings, tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithAudience(s.Audience),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
