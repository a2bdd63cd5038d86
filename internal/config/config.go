// Package config loads and validates all environment variables at startup.
// Every other package receives typed values — nothing reads os.Getenv
// directly.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the fully-parsed application configuration.
type Config struct {
	// ── Server ────────────────────────────────────────────────────────────────
	Port    string // default "8080"
	Env     string // "development" | "staging" | "production"
	BaseURL string // e.g. "https://shop.clearpathhealth.com"

	// ── Catalog data ──────────────────────────────────────────────────────────
	DataDir   string // directory holding plans.json, providers.json, qa.json, premiums.json
	WatchData bool   // reload datasets when files change; default true

	// ── Redis (session store) ─────────────────────────────────────────────────
	RedisAddr     string // default "localhost:6379"
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration // default 24h

	// ── Assistant webhook ─────────────────────────────────────────────────────
	// Optional. When WebhookURL is empty every chat message is answered from
	// the local corpus regardless of mode.
	WebhookURL     string
	WebhookAuthKey string        // shared secret sent as X-App-Auth
	WebhookTimeout time.Duration // default 10s
	UseWebhook     bool          // environment default; per-session override wins
}

// Load reads all environment variables and returns a validated Config.
// It automatically loads a .env file from the working directory when present,
// so plain `go run ./cmd/api` works in development without any wrapper.
// Real environment variables always take precedence over .env values.
func Load() (*Config, error) {
	loadDotEnv(".env")

	c := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		DataDir:        getEnv("DATA_DIR", "data"),
		WatchData:      getEnvAsBool("WATCH_DATA", true),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		SessionTTL:     getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		WebhookURL:     os.Getenv("WEBHOOK_URL"),
		WebhookAuthKey: os.Getenv("WEBHOOK_AUTH_KEY"),
		WebhookTimeout: getEnvAsDuration("WEBHOOK_TIMEOUT", 10*time.Second),
		UseWebhook:     isTruthy(os.Getenv("USE_WEBHOOK")),
	}

	return c, c.validate()
}

func (c *Config) validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("DATA_DIR must not be empty"))
	}
	if c.RedisAddr == "" {
		errs = append(errs, fmt.Errorf("REDIS_ADDR must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive"))
	}
	if c.WebhookTimeout <= 0 {
		errs = append(errs, fmt.Errorf("WEBHOOK_TIMEOUT must be positive"))
	}

	// A webhook without its shared secret would be rejected by the remote
	// side on every call — catch the misconfiguration at startup.
	if c.WebhookURL != "" && c.WebhookAuthKey == "" {
		errs = append(errs, fmt.Errorf("WEBHOOK_AUTH_KEY is required when WEBHOOK_URL is set"))
	}

	return errors.Join(errs...)
}

// isTruthy implements the webhook toggle's historical parse: "true", "yes",
// and "1" (any case) enable it, everything else disables it.
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// ─── DOT-ENV LOADER ──────────────────────────────────────────────────────────

// loadDotEnv reads key=value pairs from path and sets them in the environment,
// but only for keys that are not already set. This means real env vars (e.g.
// from Docker / Railway / your shell) always win over the file.
// Missing file, blank lines, and #-comments are all silently ignored.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return // file absent — that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		// Strip optional surrounding quotes: KEY="value" or KEY='value'
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		// Only set if the key isn't already present in the environment.
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	// A plain integer is treated as seconds.
	if value, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(value) * time.Second
	}
	// Fall back to Go duration syntax: "30s", "5m", "1h", etc.
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
