package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	CatalogCacheMemory = "memory"
	CatalogCacheRedis  = "redis"

	defaultMaxUploadBytes = 10 << 20
	defaultPort           = "8080"
)

// Config holds application configuration.
type Config struct {
	Port                  string   `validate:"required,numeric,min=1,max=5"`
	Env                   string   `validate:"oneof=dev local staging production"`
	CORSAllowOrigin       []string `validate:"dive,required"`
	ScoringAPIURL         string   `validate:"required,url"`
	ScoringTimeoutSeconds int      `validate:"min=1,max=600"`
	SessionTTLMinutes     int      `validate:"min=1"`
	MaxUploadBytes        int64    `validate:"min=1024"`
	CatalogCache          string   `validate:"oneof=memory redis"`
	CatalogTTLMinutes     int      `validate:"min=0"`
	RedisURL              string   `validate:"required_if=CatalogCache redis,omitempty,url"`

	// ResumeSubmitExtractedText submits the uploaded resume's own text
	// instead of the upload marker.
	ResumeSubmitExtractedText bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	return Config{
		Port:                      NormalizePort(getEnv("PORT", defaultPort)),
		Env:                       normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:           splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ScoringAPIURL:             strings.TrimRight(getEnv("SCORING_API_URL", "http://localhost:8000"), "/"),
		ScoringTimeoutSeconds:     getEnvInt("SCORING_TIMEOUT_SECONDS", 60),
		SessionTTLMinutes:         getEnvInt("SESSION_TTL_MINUTES", 120),
		MaxUploadBytes:            int64(getEnvInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
		CatalogCache:              strings.ToLower(strings.TrimSpace(getEnv("CATALOG_CACHE", CatalogCacheMemory))),
		CatalogTTLMinutes:         getEnvInt("CATALOG_TTL_MINUTES", 30),
		RedisURL:                  getEnv("REDIS_URL", ""),
		ResumeSubmitExtractedText: getEnvBool("RESUME_SUBMIT_EXTRACTED_TEXT", false),
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	port := NormalizePort(c.Port)
	if port == "" {
		port = defaultPort
	}
	return ":" + port
}

// NormalizePort accepts both "8080" and ":8080" and returns the bare number.
func NormalizePort(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), ":")
}

func (c Config) ScoringTimeout() time.Duration {
	return time.Duration(c.ScoringTimeoutSeconds) * time.Second
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c Config) CatalogTTL() time.Duration {
	return time.Duration(c.CatalogTTLMinutes) * time.Minute
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt falls back to def when the value is missing or malformed;
// Validate catches out-of-range numbers.
func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
