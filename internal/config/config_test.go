package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.HTTPPort != "5000" {
		t.Fatalf("unexpected port %q", cfg.App.HTTPPort)
	}
	if cfg.App.IsProduction() {
		t.Fatalf("default environment must not be production")
	}
	if cfg.JWT.ExpiresIn != 90*24*time.Hour {
		t.Fatalf("unexpected token lifetime %v", cfg.JWT.ExpiresIn)
	}
	if cfg.RateLimit.Max != 100 || cfg.RateLimit.Window != 15*time.Minute {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Upload.Dir != "uploads" {
		t.Fatalf("unexpected upload dir %q", cfg.Upload.Dir)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected an error for missing required vars")
	}
	for _, name := range []string{"MONGO_URI", "JWT_SECRET"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error should name %s, got %v", name, err)
		}
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("JWT_EXPIRES_IN", "24h")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_MAX", "7")
	t.Setenv("UPLOAD_MAX_BYTES", "1048576")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !cfg.App.IsProduction() {
		t.Fatalf("environment matching is case-insensitive")
	}
	if cfg.JWT.ExpiresIn != 24*time.Hour {
		t.Fatalf("unexpected token lifetime %v", cfg.JWT.ExpiresIn)
	}
	if cfg.RateLimit.Enabled {
		t.Fatalf("rate limiting should be off")
	}
	if cfg.RateLimit.Max != 7 {
		t.Fatalf("unexpected rate limit max %d", cfg.RateLimit.Max)
	}
	if cfg.Upload.MaxBytes != 1048576 {
		t.Fatalf("unexpected upload cap %d", cfg.Upload.MaxBytes)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_EXPIRES_IN", "ninety days")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.JWT.ExpiresIn != 90*24*time.Hour {
		t.Fatalf("bad duration should fall back to the default, got %v", cfg.JWT.ExpiresIn)
	}
}
