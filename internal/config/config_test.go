package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	// t.Setenv registers the restore; the variable must be absent so the
	// file value wins.
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: production
jwt:
  secret: test-secret
  access_token_expiration: 30m
pdf:
  chars_per_line: 80
convert:
  timeout: 45s
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Mode != "production" {
		t.Errorf("mode = %q, want production", cfg.Server.Mode)
	}
	if cfg.PDF.CharsPerLine != 80 {
		t.Errorf("chars per line = %d, want 80", cfg.PDF.CharsPerLine)
	}
	if got := cfg.ConvertTimeout(); got != 45*time.Second {
		t.Errorf("convert timeout = %v, want 45s", got)
	}
	if got := cfg.AccessTokenExp(); got != 30*time.Minute {
		t.Errorf("access token exp = %v, want 30m", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want default 8080", cfg.Server.Port)
	}
	if cfg.PDF.CharsPerLine != 100 {
		t.Errorf("chars per line = %d, want default 100", cfg.PDF.CharsPerLine)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("secret = %q, want value from environment", cfg.JWT.Secret)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: file-secret
`)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("port = %q, want env override 7070", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("secret = %q, want env override", cfg.JWT.Secret)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error for missing JWT secret")
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.Password = "pw"

	want := "postgres://postgres:pw@localhost:5432/banksoal?sslmode=disable"
	if got := cfg.GetPostgresConnectionString(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
