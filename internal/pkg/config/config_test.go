package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Addr() != ":8080" {
		t.Errorf("unexpected port %q", cfg.Port)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("expected 30m token ttl, got %v", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 3 || cfg.CORSOrigins[1] != "http://localhost:5173" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
	if cfg.Redis.LockWait != 3*time.Second || cfg.Redis.LockTTL != 10*time.Second {
		t.Errorf("unexpected lock timings %+v", cfg.Redis)
	}
	if cfg.Activity.Workers != 4 {
		t.Errorf("expected 4 activity workers, got %d", cfg.Activity.Workers)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "secret",
		"ENV":          "production",
		"TOKEN_TTL":    "1h",
		"CORS_ORIGINS": "https://crm.example.com",
		"LOG_FILE":     "/var/log/crm/api.log",
		"REDIS_DB":     "2",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IsDevelopment() || cfg.TokenTTL != time.Hour || cfg.Redis.DB != 2 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://crm.example.com" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
	if cfg.Log.File != "/var/log/crm/api.log" {
		t.Errorf("unexpected log file %q", cfg.Log.File)
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}
