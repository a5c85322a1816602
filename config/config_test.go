package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	writeConfig(t, "http:\n  addr: \":8080\"\n")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Logging.Service != "room-broker" || cfg.Logging.Env != "dev" || cfg.Logging.Backend != "std" {
		t.Fatalf("logging defaults not applied: %+v", cfg.Logging)
	}
	if cfg.Rooms.CodeLength != 12 || cfg.Rooms.SessionIDLength != 16 {
		t.Fatalf("rooms defaults not applied: %+v", cfg.Rooms)
	}
	if got := cfg.Rooms.InactivityThresholdDuration(); got != 30*time.Minute {
		t.Fatalf("threshold = %v, want 30m", got)
	}
	if got := cfg.Rooms.SweepIntervalDuration(); got != 60*time.Second {
		t.Fatalf("sweep interval = %v, want 60s", got)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("cors default not applied: %+v", cfg.CORS)
	}
}

func TestLoadConfig_Explicit(t *testing.T) {
	writeConfig(t, `
http:
  addr: ":9000"
logging:
  env: prod
  backend: zap
rooms:
  inactivityThreshold: 10m
  sweepInterval: 5s
  codeLength: 8
  sessionIdLength: 20
cors:
  allowedOrigins:
    - "https://example.com"
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTP.Addr != ":9000" {
		t.Fatalf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Rooms.InactivityThresholdDuration() != 10*time.Minute {
		t.Fatalf("threshold = %v", cfg.Rooms.InactivityThresholdDuration())
	}
	if cfg.Rooms.SweepIntervalDuration() != 5*time.Second {
		t.Fatalf("sweep = %v", cfg.Rooms.SweepIntervalDuration())
	}
	if cfg.Rooms.CodeLength != 8 || cfg.Rooms.SessionIDLength != 20 {
		t.Fatalf("lengths = %+v", cfg.Rooms)
	}
	if cfg.CORS.AllowedOrigins[0] != "https://example.com" {
		t.Fatalf("cors = %+v", cfg.CORS)
	}
}

func TestLoadConfig_MissingAddr(t *testing.T) {
	writeConfig(t, "logging:\n  env: dev\n")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing http.addr")
	}
}

func TestLoadConfig_NegativeLengthRejected(t *testing.T) {
	writeConfig(t, "http:\n  addr: \":8080\"\nrooms:\n  codeLength: -1\n")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected error for negative code length")
	}
	if got, want := err.Error(), "rooms identifier lengths must not be negative"; got != want {
		t.Fatalf("err = %q, want %q", got, want)
	}

	// zero is not an error: it means "use the default"
	writeConfig(t, "http:\n  addr: \":8080\"\nrooms:\n  codeLength: 0\n")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Rooms.CodeLength != 12 {
		t.Fatalf("zero length should default to 12, got %d", cfg.Rooms.CodeLength)
	}
}

func TestLoadConfig_BadDurationFallsBack(t *testing.T) {
	writeConfig(t, "http:\n  addr: \":8080\"\nrooms:\n  inactivityThreshold: nonsense\n")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Rooms.InactivityThresholdDuration() != 30*time.Minute {
		t.Fatalf("bad duration should fall back to default, got %v", cfg.Rooms.InactivityThresholdDuration())
	}
}
