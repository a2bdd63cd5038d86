package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want data", cfg.DataDir)
	}
	if !cfg.WatchData {
		t.Error("WatchData = false, want true by default")
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.WebhookTimeout != 10*time.Second {
		t.Errorf("WebhookTimeout = %v, want 10s", cfg.WebhookTimeout)
	}
	if cfg.UseWebhook {
		t.Error("UseWebhook = true, want false by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("WATCH_DATA", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("WEBHOOK_URL", "https://assistant.example.com/hook")
	t.Setenv("WEBHOOK_AUTH_KEY", "secret")
	t.Setenv("WEBHOOK_TIMEOUT", "30")
	t.Setenv("USE_WEBHOOK", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.WatchData {
		t.Error("WatchData = true, want false")
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.RedisDB)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
	// A bare integer timeout is read as seconds.
	if cfg.WebhookTimeout != 30*time.Second {
		t.Errorf("WebhookTimeout = %v, want 30s", cfg.WebhookTimeout)
	}
	if !cfg.UseWebhook {
		t.Error("UseWebhook = false, want true")
	}
}

func TestLoad_WebhookURLRequiresAuthKey(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "https://assistant.example.com/hook")
	t.Setenv("WEBHOOK_AUTH_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() error = nil, want validation failure")
	}
	if !strings.Contains(err.Error(), "WEBHOOK_AUTH_KEY") {
		t.Errorf("error %q does not mention WEBHOOK_AUTH_KEY", err)
	}
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"1", true},
		{" true ", true},
		{"false", false},
		{"0", false},
		{"on", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isTruthy(tt.input); got != tt.want {
			t.Errorf("isTruthy(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset uses default", "", 5 * time.Second},
		{"bare integer is seconds", "45", 45 * time.Second},
		{"go duration syntax", "2m30s", 2*time.Minute + 30*time.Second},
		{"garbage uses default", "soon", 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_DURATION", tt.value)
			}
			if got := getEnvAsDuration("TEST_DURATION", 5*time.Second); got != tt.want {
				t.Errorf("getEnvAsDuration = %v, want %v", got, tt.want)
			}
		})
	}
}
