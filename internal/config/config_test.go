package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_COOKIE_EXPIRES_IN", "")
	t.Setenv("MEDIA_BACKEND", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Environment != "development" || cfg.IsProduction() {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.CookieExpiryDays != 30 {
		t.Errorf("cookie days = %d", cfg.CookieExpiryDays)
	}
	if cfg.SessionTTL.SuperAdmin != 20*time.Minute || cfg.SessionTTL.Admin != 43*time.Minute || cfg.SessionTTL.User != 82*time.Minute {
		t.Errorf("unexpected ttls: %+v", cfg.SessionTTL)
	}
	if cfg.MediaBackend != "cloudinary" {
		t.Errorf("media backend = %q", cfg.MediaBackend)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Errorf("cors origins = %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_COOKIE_EXPIRES_IN", "7")
	t.Setenv("SESSION_TTL_USER", "5m")
	t.Setenv("MEDIA_BACKEND", "S3")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production")
	}
	if cfg.Addr != ":8080" || cfg.CookieExpiryDays != 7 || cfg.SessionTTL.User != 5*time.Minute {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.MediaBackend != "s3" {
		t.Errorf("media backend = %q", cfg.MediaBackend)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("cors origins = %v", cfg.CORSOrigins)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadRejectsUnknownMediaBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MEDIA_BACKEND", "ftp")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestInvalidCookieDaysFallsBack(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MEDIA_BACKEND", "")
	t.Setenv("JWT_COOKIE_EXPIRES_IN", "soon")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CookieExpiryDays != 30 {
		t.Fatalf("cookie days = %d", cfg.CookieExpiryDays)
	}
}

func TestLoadSeedRequiresCredentials(t *testing.T) {
	t.Setenv("SUPERADMIN_EMAIL", "")
	t.Setenv("SUPERADMIN_PASSWORD", "")
	if _, err := LoadSeed(); err == nil {
		t.Fatal("expected error")
	}
	t.Setenv("SUPERADMIN_EMAIL", " Root@Example.com ")
	t.Setenv("SUPERADMIN_PASSWORD", "pw")
	cfg, err := LoadSeed()
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if cfg.Email != "root@example.com" || cfg.FullName != "Super Admin" {
		t.Fatalf("unexpected seed config: %+v", cfg)
	}
}
