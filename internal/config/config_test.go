package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with only database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/sellerops")
		t.Setenv("PORT", "")
		t.Setenv("DATA_DIR", "")
		t.Setenv("SESSION_TTL_MINUTES", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Port != 8080 {
			t.Errorf("port = %d, want 8080", cfg.Port)
		}
		if cfg.DataDir != "data" {
			t.Errorf("data dir = %q, want data", cfg.DataDir)
		}
		if cfg.SessionTTL != 12*time.Hour {
			t.Errorf("session ttl = %v, want 12h", cfg.SessionTTL)
		}
	})

	t.Run("missing database url fails", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatal("expected error without DATABASE_URL")
		}
	})

	t.Run("overrides from environment", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/sellerops")
		t.Setenv("PORT", "9000")
		t.Setenv("DATA_DIR", "/var/lib/sellerops")
		t.Setenv("SESSION_TTL_MINUTES", "30")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Port != 9000 || cfg.DataDir != "/var/lib/sellerops" || cfg.SessionTTL != 30*time.Minute {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("invalid port is rejected", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/sellerops")
		t.Setenv("PORT", "not-a-port")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for invalid PORT")
		}
	})
}
