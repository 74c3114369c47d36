package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Engine.MaxSessions != 1000 {
		t.Errorf("Expected default max sessions 1000, got %d", cfg.Engine.MaxSessions)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	data := `
server:
  addr: ":9090"
redis:
  enabled: true
  addr: "localhost:6379"
engine:
  max_sessions: 50
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Expected addr :9090, got %s", cfg.Server.Addr)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis config not applied: %+v", cfg.Redis)
	}
	if cfg.Engine.MaxSessions != 50 {
		t.Errorf("Expected max sessions 50, got %d", cfg.Engine.MaxSessions)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ASSISTANT_ADDR", ":7070")
	t.Setenv("ASSISTANT_MAX_SESSIONS", "25")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Env addr override not applied: %s", cfg.Server.Addr)
	}
	if cfg.Engine.MaxSessions != 25 {
		t.Errorf("Env max sessions override not applied: %d", cfg.Engine.MaxSessions)
	}
}
