package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	serrors "github.com/zhubert/snooze/internal/errors"
)

// DefaultRequestTimeoutSeconds bounds every call into the story backend.
const DefaultRequestTimeoutSeconds = 10

// File names inside the data directory
const (
	ConfigFileName  = "config.json"
	SessionFileName = "session.json"
	BackendFileName = "local.json"
)

// Config holds the application configuration
type Config struct {
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"`   // Desktop notification after a story is submitted
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"` // Per-call timeout for backend operations
	WelcomeShown          bool   `json:"welcome_shown,omitempty"`           // Whether the first-run hint has been shown
	LastUsername          string `json:"last_username,omitempty"`           // Prefills the login form
	Theme                 string `json:"theme,omitempty"`                   // UI color theme name

	mu       sync.RWMutex
	dataDir  string
	filePath string
}

// DefaultDir returns ~/.snooze
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".snooze"), nil
}

// Load reads the config from dir, or returns defaults if the file doesn't
// exist yet. An empty dir means DefaultDir.
func Load(dir string) (*Config, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, serrors.ConfigLoadFailed("~/.snooze", err)
		}
		dir = d
	}

	path := filepath.Join(dir, ConfigFileName)
	cfg := &Config{dataDir: dir, filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, serrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, serrors.ConfigLoadFailed(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the config values are usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.RequestTimeoutSeconds < 0 {
		return serrors.ConfigInvalid(fmt.Sprintf("request_timeout_seconds must not be negative, got %d", c.RequestTimeoutSeconds))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return serrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return serrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return serrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// SetFilePath points the config at a different file. Used by tests.
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
	c.dataDir = filepath.Dir(path)
}

// FilePath returns the path the config is saved to
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// DataDir returns the directory holding the config, session and backend files
func (c *Config) DataDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dataDir
}

// SessionPath returns the file the session store persists to
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir(), SessionFileName)
}

// BackendPath returns the file the local story backend persists to
func (c *Config) BackendPath() string {
	return filepath.Join(c.DataDir(), BackendFileName)
}

// RequestTimeout returns the per-call timeout for backend operations
func (c *Config) RequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeoutSeconds * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// HasSeenWelcome returns whether the first-run hint has been shown
func (c *Config) HasSeenWelcome() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown marks the first-run hint as shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}

// GetLastUsername returns the last username that logged in successfully
func (c *Config) GetLastUsername() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastUsername
}

// SetLastUsername records the last username that logged in successfully
func (c *Config) SetLastUsername(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastUsername = username
}

// GetTheme returns the configured theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme name
func (c *Config) SetTheme(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = name
}
