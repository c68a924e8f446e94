package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"curriculum-backend/internal/shared/telemetry"
)

const (
	CatalogBuiltin  = "builtin"
	CatalogFile     = "file"
	CatalogPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	CatalogSource   string
	CatalogFile     string
	DatabaseURL     string
	RateLimitRPS    float64
	RateLimitBurst  int
	// TrustedProxies may set X-Forwarded-For; empty trusts none.
	TrustedProxies  []string
	// AdvisorEndpoint and AdvisorTimeout drive the remote client used by the CLI.
	AdvisorEndpoint string
	AdvisorTimeout  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Config{
		Port:            getEnv("PORT", "5000"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5500,http://127.0.0.1:5500")),
		CatalogSource:   normalizeCatalogSource(getEnv("CATALOG_SOURCE", CatalogBuiltin)),
		CatalogFile:     getEnv("CATALOG_FILE", ""),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RateLimitRPS:    getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:  getInt("RATE_LIMIT_BURST", 20),
		TrustedProxies:  splitAndTrim(os.Getenv("TRUSTED_PROXIES")),
		AdvisorEndpoint: getEnv("ADVISOR_ENDPOINT", "http://127.0.0.1:5000"),
		AdvisorTimeout:  getDuration("ADVISOR_TIMEOUT", 10*time.Second),
	}

	if cfg.CatalogSource == CatalogPostgres && cfg.DatabaseURL == "" {
		telemetry.Warn("config.invalid", map[string]any{"reason": "CATALOG_SOURCE=postgres requires DATABASE_URL"})
	}
	if cfg.CatalogSource == CatalogFile && cfg.CatalogFile == "" {
		telemetry.Warn("config.invalid", map[string]any{"reason": "CATALOG_SOURCE=file requires CATALOG_FILE"})
	}
	return cfg
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "error": err})
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "error": err})
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "error": err})
		return def
	}
	return val
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
	default:
		return "dev"
	}
}

func normalizeCatalogSource(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "file", "yaml":
		return CatalogFile
	case "postgres", "pg", "db":
		return CatalogPostgres
	default:
		return CatalogBuiltin
	}
}
