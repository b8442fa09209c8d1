// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"testing"
)

// configEnvVars lists every variable Load reads, so tests can neutralize
// the ambient environment. envOrDefault treats "" the same as unset.
var configEnvVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"SECRETS_KEY",
	"GEMINI_MODEL", "GEMINI_BASE_URL",
	"HUGGINGFACE_MODEL", "HUGGINGFACE_BASE_URL",
	"OPENAI_MODEL", "OPENAI_BASE_URL",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
	"PUBLIC_URL",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Env: got %q, want development", cfg.Env)
	}
	if !cfg.IsDev() {
		t.Error("IsDev should be true for defaults")
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr: got %q", cfg.Addr())
	}
	if cfg.GeminiModel == "" || cfg.HuggingFaceModel == "" || cfg.OpenAIModel == "" {
		t.Error("provider models should have defaults")
	}
	if cfg.PublicURL != "http://localhost:8080" {
		t.Errorf("PublicURL: got %q", cfg.PublicURL)
	}
}

func TestLoadDSN(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_DB", "websmith_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	want := "postgres://u:p@db:5433/websmith_test?sslmode=disable"
	if cfg.DSN() != want {
		t.Errorf("DSN: got %q, want %q", cfg.DSN(), want)
	}
}

func TestLoadProductionGuards(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "production")

	// Default database password is rejected in production.
	if _, err := Load(); err == nil {
		t.Fatal("Load should fail in production with the default password")
	}

	t.Setenv("POSTGRES_PASSWORD", "real-password")
	if _, err := Load(); err == nil {
		t.Fatal("Load should fail in production without SECRETS_KEY")
	}

	t.Setenv("SECRETS_KEY", "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.IsDev() {
		t.Error("IsDev should be false in production")
	}
}
