package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("App.Port: got %q want %q", cfg.App.Port, "8080")
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("Auth.BcryptCost: got %d want 10", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.AccessTokenTTLMinutes != 60 {
		t.Errorf("Auth.AccessTokenTTLMinutes: got %d want 60", cfg.Auth.AccessTokenTTLMinutes)
	}
	if cfg.Booking.MaxAttempts != 3 {
		t.Errorf("Booking.MaxAttempts: got %d want 3", cfg.Booking.MaxAttempts)
	}
	if cfg.Catalog.CacheTTL() != 15*time.Second {
		t.Errorf("Catalog.CacheTTL: got %v want 15s", cfg.Catalog.CacheTTL())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_BCRYPT_COST", "12")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if got := cfg.App.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("App.Addr: got %q want %q", got, "127.0.0.1:9090")
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Auth.BcryptCost: got %d want 12", cfg.Auth.BcryptCost)
	}
	if cfg.App.RequestTimeout() != 5*time.Second {
		t.Errorf("App.RequestTimeout: got %v want 5s", cfg.App.RequestTimeout())
	}
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid REDIS_DB")
	}
}

func TestGetEnvAsInt_FallbackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")

	if got := getEnvAsInt("SOME_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt: got %d want fallback 7", got)
	}
}
