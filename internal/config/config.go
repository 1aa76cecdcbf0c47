package config

import (
	"errors"
	"os"
	"strconv"
)

const (
	defaultModel     = "gpt-4o-mini"
	defaultMaxRounds = 10
	// devSessionSecret is public; it must never sign production cookies
	devSessionSecret = "game-design-team-dev-secret"
)

// ErrInsecureSessionSecret is returned by Validate when production runs without SESSION_SECRET
var ErrInsecureSessionSecret = errors.New("SESSION_SECRET must be set in production")

// Config holds the application configuration
// Note: there is no server-side LLM key. Every generation run uses the
// credential the user enters in the form (or sends in X-API-Key).
type Config struct {
	// Environment
	Environment string
	Port        string

	// Generation
	DefaultModel string // Model shared by every participant of a run
	MaxRounds    int    // Group chat round ceiling
	// Reasoning effort for gpt-5 and o-series models (minimal, low, medium, high)
	ReasoningEffort string

	// Sessions
	SessionSecret string // Key used to authenticate session cookies
	SessionDir    string // Directory for server-side session files (empty = os temp dir)

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		DefaultModel:      getEnv("DEFAULT_MODEL", defaultModel),
		MaxRounds:         getEnvInt("MAX_ROUNDS", defaultMaxRounds),
		ReasoningEffort:   getEnv("REASONING_EFFORT", "low"),
		SessionSecret:     getEnv("SESSION_SECRET", devSessionSecret),
		SessionDir:        getEnv("SESSION_DIR", ""),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate reports settings that are unsafe for the current environment
func (c *Config) Validate() error {
	if c.IsProduction() && (c.SessionSecret == "" || c.SessionSecret == devSessionSecret) {
		return ErrInsecureSessionSecret
	}
	return nil
}
