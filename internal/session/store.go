package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	serrors "github.com/zhubert/snooze/internal/errors"
	"github.com/zhubert/snooze/internal/logger"
)

// Keys used in the session file
const (
	KeyToken    = "token"
	KeyUsername = "username"
)

// Session is the persisted part of an authenticated user
type Session struct {
	Token    string
	Username string
}

// Valid reports whether both fields are present
func (s Session) Valid() bool {
	return s.Token != "" && s.Username != ""
}

// Store saves and restores the session from a file on disk
type Store struct {
	path string

	mu       sync.Mutex
	degraded bool
	mem      *Session // in-memory copy used once degraded
}

// NewStore creates a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Degraded reports whether the store has fallen back to memory only
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Save writes sess to disk. If the write fails the store degrades to an
// in-memory copy and returns a KindStorage error; the session is still
// retrievable through Load for the rest of the process.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded {
		s.mem = &sess
		return nil
	}

	data, err := json.Marshal(map[string]string{
		KeyToken:    sess.Token,
		KeyUsername: sess.Username,
	})
	if err == nil {
		err = os.MkdirAll(filepath.Dir(s.path), 0700)
	}
	if err == nil {
		err = os.WriteFile(s.path, data, 0600)
	}
	if err != nil {
		s.degrade(&sess)
		s.removeStale()
		return serrors.StorageUnavailable(s.path, err)
	}

	logger.WithComponent("session").Debug("session saved", "username", sess.Username)
	return nil
}

// Load reads the session. ok is false when no complete session is stored.
func (s *Store) Load() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded {
		if s.mem == nil || !s.mem.Valid() {
			return Session{}, false
		}
		return *s.mem, true
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.WithComponent("session").Warn("cannot read session file", "path", s.path, "error", err)
		}
		return Session{}, false
	}

	var kv map[string]string
	if err := json.Unmarshal(data, &kv); err != nil {
		logger.WithComponent("session").Warn("corrupt session file", "path", s.path, "error", err)
		return Session{}, false
	}

	sess := Session{Token: kv[KeyToken], Username: kv[KeyUsername]}
	if !sess.Valid() {
		return Session{}, false
	}
	return sess, true
}

// Clear removes the stored session from memory and disk. It is idempotent.
// The file is removed even in degraded mode, since it may predate the failure.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem = nil
	if err := s.remove(); err != nil {
		if !s.degraded {
			s.degrade(nil)
		}
		return serrors.E(serrors.Op("session.Clear"), serrors.KindStorage, err)
	}
	return nil
}

// remove deletes the session file. A file that cannot be reached counts as gone.
func (s *Store) remove() error {
	err := os.Remove(s.path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	if _, statErr := os.Lstat(s.path); statErr != nil {
		return nil
	}
	return err
}

// removeStale drops a file left over from an earlier save. Caller must hold s.mu.
func (s *Store) removeStale() {
	if err := s.remove(); err != nil {
		logger.WithComponent("session").Warn("cannot remove stale session file", "path", s.path, "error", err)
	}
}

// degrade switches to memory-only mode. Caller must hold s.mu.
func (s *Store) degrade(sess *Session) {
	s.degraded = true
	s.mem = sess
	logger.WithComponent("session").Warn("session storage unavailable, keeping session in memory", "path", s.path)
}
