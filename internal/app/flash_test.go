package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zhubert/snooze/internal/ui"
)

func TestSaveConfigOrFlash_Success(t *testing.T) {
	env := newTestEnv(t)
	// Use a temp file so Save() succeeds
	env.cfg.SetFilePath(filepath.Join(t.TempDir(), "config.json"))

	cmd := env.m.saveConfigOrFlash()
	if cmd != nil {
		t.Error("expected nil cmd on successful save, got non-nil")
	}
}

func TestSaveConfigOrFlash_Error(t *testing.T) {
	env := newTestEnv(t)
	// A regular file where a directory should be makes Save fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	env.cfg.SetFilePath(filepath.Join(blocker, "config.json"))

	cmd := env.m.saveConfigOrFlash()
	if cmd == nil {
		t.Error("expected non-nil cmd on failed save, got nil")
	}
	assertFlash(t, env.m, ui.FlashError, "Failed to save settings")
}

func TestShowFlash_Types(t *testing.T) {
	env := newTestEnv(t)
	m := env.m

	tests := []struct {
		name string
		show func(string) any
		want ui.FlashType
	}{
		{"error", func(s string) any { return m.ShowFlashError(s) }, ui.FlashError},
		{"warning", func(s string) any { return m.ShowFlashWarning(s) }, ui.FlashWarning},
		{"info", func(s string) any { return m.ShowFlashInfo(s) }, ui.FlashInfo},
		{"success", func(s string) any { return m.ShowFlashSuccess(s) }, ui.FlashSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.show("hello " + tt.name)
			assertFlash(t, m, tt.want, "hello "+tt.name)
		})
	}
}
