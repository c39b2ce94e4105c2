package config

import (
	"testing"
	"time"
)

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("APP_ENV", "development")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when SESSION_SECRET is missing")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("TRON_NETWORK", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m token ttl, got %s", cfg.AccessTokenTTL)
	}
	if cfg.TronNetwork != "nile" {
		t.Fatalf("expected nile network, got %s", cfg.TronNetwork)
	}
	if cfg.Address() != ":5000" {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
}

func TestLoadTokenTTLOverride(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Fatalf("expected 5m, got %s", cfg.AccessTokenTTL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric ttl", key: "ACCESS_TOKEN_EXPIRE_MINUTES", value: "soon"},
		{name: "zero ttl", key: "ACCESS_TOKEN_EXPIRE_MINUTES", value: "0"},
		{name: "unknown network", key: "TRON_NETWORK", value: "ropsten"},
		{name: "bad migrations flag", key: "RUN_MIGRATIONS", value: "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "s3cret")
			t.Setenv("APP_ENV", "development")
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadRequiresStoresOutsideDev(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected DATABASE_URL to be required in production")
	}
}
