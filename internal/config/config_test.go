package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"baby-tracker-go/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("INVITE_TTL", "")
	t.Setenv("AUTH_TOKEN_TTL", "")

	empty := filepath.Join(t.TempDir(), "empty.env")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(logger.Nop(), empty)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Auth.TokenTTL != 30*24*time.Hour {
		t.Fatalf("expected 30 day token ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Invites.TTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day invite ttl, got %v", cfg.Invites.TTL)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Fatalf("expected development secret fallback")
	}
}

func TestLoadRequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	empty := filepath.Join(t.TempDir(), "empty.env")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	if _, err := Load(logger.Nop(), empty); err == nil {
		t.Fatalf("expected error without JWT_SECRET in production")
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	contents := "ENV=development\nAPP_BASE_URL=https://babies.example.com/\nCORS_ORIGINS=https://a.example.com, https://b.example.com\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_BASE_URL", "")
	t.Setenv("CORS_ORIGINS", "")
	os.Unsetenv("APP_BASE_URL")
	os.Unsetenv("CORS_ORIGINS")

	cfg, err := Load(logger.Nop(), path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Env != "test" {
		t.Fatalf("expected existing ENV to win, got %q", cfg.Env)
	}
	if cfg.Invites.AppBaseURL != "https://babies.example.com" {
		t.Fatalf("expected trimmed base url, got %q", cfg.Invites.AppBaseURL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable", TimeZone: "UTC"}
	want := "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC"
	if got := cfg.GetDSN(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	cfg.DSN = "postgres://x"
	if got := cfg.GetDSN(); got != "postgres://x" {
		t.Fatalf("expected explicit dsn, got %q", got)
	}
}
