package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aamoria/wellness-api/logger"
	"github.com/aamoria/wellness-api/quiz"
)

type Environment struct {
	IsDevelopment  bool
	Port           string
	DBDriver       string
	DBURL          string
	JWTSecretKey   string
	JWTIssuer      string
	JWTAudience    string
	AdminTokenTTL  time.Duration
	AllowedOrigins []string
	LogMode        string
	QuizWeighting  quiz.Weighting
}

// LoadDotEnv reads .env outside hosted environments. A missing file is not an error.
func LoadDotEnv() error {
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") != "" {
		return nil
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func Load(log *logger.Logger) (Environment, error) {
	env := Environment{
		Port:          getEnv("PORT", "8080", log),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres", log)),
		DBURL:         getEnv("DB_URL", "", log),
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", "", log),
		JWTIssuer:     getEnv("JWT_ISSUER", "wellness-api", log),
		JWTAudience:   getEnv("JWT_AUDIENCE", "wellness-admin", log),
		AdminTokenTTL: time.Duration(getEnvAsInt("ADMIN_TOKEN_TTL_HOURS", 24, log)) * time.Hour,
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS",
			"http://localhost:3000", log)),
		LogMode: getEnv("LOG_MODE", "dev", log),
	}
	env.IsDevelopment = env.LogMode != "prod" && env.LogMode != "production"

	switch env.DBDriver {
	case "postgres", "sqlite":
	default:
		return env, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
	if env.DBURL == "" {
		if env.DBDriver != "sqlite" {
			return env, fmt.Errorf("DB_URL is required for %s", env.DBDriver)
		}
		env.DBURL = "wellness.db"
	}

	w, err := quiz.ParseWeighting(getEnv("QUIZ_WEIGHTING", "authored", log))
	if err != nil {
		return env, err
	}
	env.QuizWeighting = w
	return env, nil
}

// RequireJWTSecret reports a missing signing key for commands that need one.
func (e Environment) RequireJWTSecret() error {
	if e.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY not set")
	}
	return nil
}

func getEnv(key, defaultVal string, log *logger.Logger) string {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		log.Debug("Environment variable not found, using default", "env_var", key, "default", defaultVal)
		return defaultVal
	}
	return strings.TrimSpace(val)
}

func getEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		log.Warn("Environment variable could not be parsed as int, using default", "env_var", key, "provided", raw, "default", defaultVal)
		return defaultVal
	}
	return i
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
