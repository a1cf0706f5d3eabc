package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port              string
	CORSAllowOrigin   []string
	LocalStoreDir     string
	DatabaseURL       string
	ClassifierURL     string
	ClassifierTimeout time.Duration
	ClassifyThreshold float64
	MarkerBoost       bool
	Preprocess        bool
	FAERSBaseURL      string
	Env               string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LocalStoreDir:     getEnv("LOCAL_STORE_DIR", "./data"),
		DatabaseURL:       dbURL,
		ClassifierURL:     getEnv("CLASSIFIER_URL", ""),
		ClassifierTimeout: getDuration("CLASSIFIER_TIMEOUT", 15*time.Second),
		ClassifyThreshold: getFloat("CLASSIFY_THRESHOLD", 0.5),
		MarkerBoost:       getBool("MARKER_BOOST", true),
		Preprocess:        getBool("PREPROCESS", true),
		FAERSBaseURL:      getEnv("FAERS_BASE_URL", "https://api.fda.gov"),
		Env:               env,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val <= 0 || val >= 1 {
		log.Printf("ignoring invalid %s=%q", key, raw)
		return def
	}
	return val
}

func getBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("ignoring invalid %s=%q", key, raw)
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("ignoring invalid %s=%q", key, raw)
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
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
