// Package errors provides structured error types for snooze.
// These errors carry what operation failed and which category of failure it
// was, so the UI can decide how to surface them.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuth
	KindNotFound
	KindStorage
	KindInvalid
	KindIO
	KindConfig
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "not authorized"
	case KindNotFound:
		return "not found"
	case KindStorage:
		return "storage unavailable"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for snooze.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind. A context deadline anywhere in
// the chain counts as KindTimeout.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) && e.Kind != KindUnknown {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindUnknown
}

// UserMessage returns a short, human readable description of err suitable for
// a flash message.
func UserMessage(err error) string {
	switch GetKind(err) {
	case KindAuth:
		if d := detail(err); d != "" {
			return d
		}
		return "Not authorized"
	case KindNotFound:
		return "That story no longer exists"
	case KindTimeout:
		return "Request timed out"
	case KindInvalid:
		if d := detail(err); d != "" {
			return d
		}
	}
	return err.Error()
}

// detail returns the context of the outermost *Error, or its underlying
// message when the context was promoted into Err by E.
func detail(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	if e.Context != "" {
		return e.Context
	}
	return e.Err.Error()
}

// Auth errors
func InvalidCredentials(username string) error {
	return E(Op("news.Login"), KindAuth, fmt.Sprintf("invalid credentials for %s", username))
}

func UsernameTaken(username string) error {
	return E(Op("news.Signup"), KindInvalid, fmt.Sprintf("username %s is already taken", username))
}

func NotPoster(storyID string) error {
	return E(Op("news.DeleteStory"), KindAuth, fmt.Sprintf("story %s belongs to another user", storyID))
}

func LoginRequired(op Op) error {
	return E(op, KindAuth, "log in first")
}

// Story errors
func StoryNotFound(id string) error {
	return E(Op("news.Story"), KindNotFound, fmt.Sprintf("story %s not found", id))
}

// Storage errors
func StorageUnavailable(path string, err error) error {
	return E(Op("session.Save"), KindStorage, fmt.Sprintf("cannot write %s", path), err)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}
