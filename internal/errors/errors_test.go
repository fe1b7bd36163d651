package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindAuth, "not authorized"},
		{KindNotFound, "not found"},
		{KindStorage, "storage unavailable"},
		{KindInvalid, "invalid"},
		{KindIO, "I/O error"},
		{KindConfig, "configuration error"},
		{KindTimeout, "timeout"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE_ContextOnly(t *testing.T) {
	err := E(Op("news.Login"), KindAuth, "bad password")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected *Error")
	}
	if e.Context != "" {
		t.Errorf("context should move into Err, got %q", e.Context)
	}
	if err.Error() != "news.Login: bad password" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	underlying := errors.New("disk full")
	err := StorageUnavailable("/tmp/session.json", underlying)

	if !Is(err, KindStorage) {
		t.Error("expected KindStorage")
	}
	if Is(err, KindAuth) {
		t.Error("did not expect KindAuth")
	}
	if !errors.Is(err, underlying) {
		t.Error("expected Unwrap to expose underlying error")
	}

	wrapped := fmt.Errorf("outer: %w", StoryNotFound("abc"))
	if !Is(wrapped, KindNotFound) {
		t.Error("expected KindNotFound through fmt wrapping")
	}
}

func TestGetKind_Deadline(t *testing.T) {
	err := fmt.Errorf("fetch: %w", context.DeadlineExceeded)
	if got := GetKind(err); got != KindTimeout {
		t.Errorf("GetKind() = %v, want timeout", got)
	}
	if got := GetKind(nil); got != KindUnknown {
		t.Errorf("GetKind(nil) = %v, want unknown", got)
	}
	if got := GetKind(errors.New("plain")); got != KindUnknown {
		t.Errorf("GetKind(plain) = %v, want unknown", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth with context", InvalidCredentials("bob"), "invalid credentials for bob"},
		{"not found", StoryNotFound("x"), "That story no longer exists"},
		{"timeout", context.DeadlineExceeded, "Request timed out"},
		{"invalid", UsernameTaken("amy"), "username amy is already taken"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
