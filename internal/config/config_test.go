package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.EmailProvider != "stub" {
		t.Errorf("expected default email provider stub, got %s", cfg.EmailProvider)
	}
	if cfg.SettingsCacheTTL != 60*time.Second {
		t.Errorf("expected 60s settings cache TTL, got %s", cfg.SettingsCacheTTL)
	}
	if cfg.GoogleCalendarID != "primary" {
		t.Errorf("expected default calendar id primary, got %s", cfg.GoogleCalendarID)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("SETTINGS_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Errorf("expected normalized provider sendgrid, got %s", cfg.EmailProvider)
	}
	if !cfg.RedisTLS {
		t.Error("expected redis TLS enabled")
	}
	if cfg.SettingsCacheTTL != 30*time.Second {
		t.Errorf("expected 30s TTL, got %s", cfg.SettingsCacheTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvAsBoolFallback(t *testing.T) {
	t.Setenv("BROKEN_BOOL", "not-a-bool")
	if getEnvAsBool("BROKEN_BOOL", true) != true {
		t.Error("expected fallback on unparseable bool")
	}
}
