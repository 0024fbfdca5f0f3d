package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"microhub/internal/platform/config"
)

func TestNewDerivesPaths(t *testing.T) {
	t.Parallel()
	cfg, err := config.New("/tmp/hub")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.ProgressPath != filepath.Join("/tmp/hub", ".microhub", "progress.json") {
		t.Fatalf("unexpected progress path: %s", cfg.ProgressPath)
	}
	if cfg.DBPath != filepath.Join("/tmp/hub", ".microhub", "microhub.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.VerifyDelay != config.DefaultVerifyDelay || cfg.WhatsAppNumber != config.DefaultWhatsAppNumber {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty home should fail")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MICROHUB_VERIFY_DELAY", "250ms")
	t.Setenv("MICROHUB_WHATSAPP_NUMBER", "254700000000")
	t.Setenv("MICROHUB_OPEN_LINKS", "true")
	t.Setenv("MICROHUB_LOG_LEVEL", "DEBUG")

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HomePath != home {
		t.Fatalf("explicit home should win, got %s", cfg.HomePath)
	}
	if cfg.VerifyDelay != 250*time.Millisecond {
		t.Fatalf("expected 250ms delay, got %s", cfg.VerifyDelay)
	}
	if cfg.WhatsAppNumber != "254700000000" || !cfg.OpenLinks || cfg.LogLevel != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("MICROHUB_VERIFY_DELAY", "soon")
	if _, err := config.Load(t.TempDir()); err == nil {
		t.Fatalf("expected duration parse error")
	}
}
