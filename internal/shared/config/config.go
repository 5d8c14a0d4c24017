package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	DatabaseURL     string

	// Humanizer selects the text transformation strategy: "live" or "mock".
	Humanizer string

	// Provider settings for the live humanization service.
	ProviderBaseURL string
	ProviderAPIKey  string
	ProviderTimeout time.Duration
	PollMaxAttempts int
	PollBaseDelay   time.Duration
	PollDelayStep   time.Duration
	PollMaxDelay    time.Duration

	// GuestStoreDir is the directory for the embedded guest credit store.
	GuestStoreDir string

	// Rate limit for the humanize endpoint, tokens per second with a burst.
	HumanizeRate      float64
	HumanizeRateBurst int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		Env:             env,
		DatabaseURL:     os.Getenv("DATABASE_URL"),

		Humanizer: normalizeHumanizer(getEnv("HUMANIZER", "live")),

		ProviderBaseURL: getEnv("UNDETECTABLE_API_BASE", "https://humanize.undetectable.ai"),
		ProviderAPIKey:  providerAPIKey(),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 30*time.Second),
		PollMaxAttempts: getEnvInt("POLL_MAX_ATTEMPTS", 30),
		PollBaseDelay:   getEnvDuration("POLL_BASE_DELAY", 5*time.Second),
		PollDelayStep:   getEnvDuration("POLL_DELAY_STEP", 2*time.Second),
		PollMaxDelay:    getEnvDuration("POLL_MAX_DELAY", 10*time.Second),

		GuestStoreDir: getEnv("GUEST_STORE_DIR", "./data/guest-credits"),

		HumanizeRate:      getEnvFloat("HUMANIZE_RATE", 0.5),
		HumanizeRateBurst: getEnvInt("HUMANIZE_RATE_BURST", 3),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}
}

// ValidateProvider ensures provider credentials are present when the live
// humanizer is selected. Called once at bootstrap so a missing key fails fast
// instead of surfacing on the first user request.
func (c Config) ValidateProvider() error {
	if c.Humanizer != "live" {
		return nil
	}
	if strings.TrimSpace(c.ProviderAPIKey) == "" {
		return fmt.Errorf("missing provider credentials: set UNDETECTABLE_API_KEY")
	}
	return nil
}

// providerAPIKey resolves the provider API key, preferring the server-side
// variable and falling back to the legacy client-exposed name.
func providerAPIKey() string {
	if v := strings.TrimSpace(os.Getenv("UNDETECTABLE_API_KEY")); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("NEXT_PUBLIC_UNDETECTABLE_API_KEY"))
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val <= 0 {
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
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

func normalizeHumanizer(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mock":
		return "mock"
	default:
		return "live"
	}
}
