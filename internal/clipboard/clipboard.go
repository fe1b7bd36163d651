// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/snooze/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error
)

// writer is swapped out by tests
var writer = systemWrite

// Init initializes the clipboard. It is safe to call multiple times.
func Init() error {
	initOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
			initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
			return
		}
		logger.WithComponent("clipboard").Debug("initialized")
	})
	return initErr
}

func systemWrite(text string) error {
	if err := Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := writer(text); err != nil {
		return err
	}
	logger.WithComponent("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

// SetWriter replaces the clipboard writer. Used by tests.
func SetWriter(fn func(string) error) {
	writer = fn
}

// ResetWriter restores the system clipboard writer
func ResetWriter() {
	writer = systemWrite
}
