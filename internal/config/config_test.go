package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	serrors "github.com/zhubert/snooze/internal/errors"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir() != dir {
		t.Errorf("DataDir() = %q, want %q", cfg.DataDir(), dir)
	}
	if cfg.GetNotificationsEnabled() {
		t.Error("notifications should be off by default")
	}
	if cfg.RequestTimeout() != DefaultRequestTimeoutSeconds*time.Second {
		t.Errorf("RequestTimeout() = %v, want default", cfg.RequestTimeout())
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.SetNotificationsEnabled(true)
	cfg.SetLastUsername("alice")
	cfg.MarkWelcomeShown()
	cfg.RequestTimeoutSeconds = 3

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.GetNotificationsEnabled() {
		t.Error("expected notifications enabled after reload")
	}
	if loaded.GetLastUsername() != "alice" {
		t.Errorf("GetLastUsername() = %q, want alice", loaded.GetLastUsername())
	}
	if !loaded.HasSeenWelcome() {
		t.Error("expected welcome shown after reload")
	}
	if loaded.RequestTimeout() != 3*time.Second {
		t.Errorf("RequestTimeout() = %v, want 3s", loaded.RequestTimeout())
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !serrors.Is(err, serrors.KindConfig) {
		t.Errorf("expected KindConfig, got %v", err)
	}
}

func TestLoad_NegativeTimeout(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"request_timeout_seconds": -1}`)
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "request_timeout_seconds") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := &Config{}
	cfg.SetFilePath("/data/snooze/config.json")

	if got := cfg.SessionPath(); got != "/data/snooze/session.json" {
		t.Errorf("SessionPath() = %q", got)
	}
	if got := cfg.BackendPath(); got != "/data/snooze/local.json" {
		t.Errorf("BackendPath() = %q", got)
	}
}

func TestConfig_SaveError(t *testing.T) {
	cfg := &Config{}
	cfg.SetFilePath("/nonexistent/directory/that/cannot/exist\x00/config.json")

	if err := cfg.Save(); err == nil {
		t.Error("expected save error")
	}
}
