// Package news defines the story and user records the client displays and the
// Client interface through which every state-changing action is delegated.
package news

import (
	"context"
	"time"
)

// Story is a submitted link
type Story struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"` // Who posted it
	CreatedAt time.Time `json:"created_at"`
}

// NewStory holds the fields a user fills in when submitting
type NewStory struct {
	Title  string
	Author string
	URL    string
}

// User is an authenticated account together with its story lists
type User struct {
	Username   string
	Name       string
	Token      string
	CreatedAt  time.Time
	Favorites  []Story
	OwnStories []Story
}

// Clone returns a deep copy so callers can mutate lists without aliasing
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Favorites = append([]Story(nil), u.Favorites...)
	c.OwnStories = append([]Story(nil), u.OwnStories...)
	return &c
}

// Client is the story backend. Implementations must be safe for concurrent use.
type Client interface {
	// Login authenticates and returns the user with a fresh token.
	// Bad credentials are a KindAuth error.
	Login(ctx context.Context, username, password string) (*User, error)

	// Signup creates an account and logs it in.
	Signup(ctx context.Context, username, password, name string) (*User, error)

	// Restore rehydrates a user from a stored token. It returns nil, nil when
	// the token is no longer valid for username.
	Restore(ctx context.Context, token, username string) (*User, error)

	// FetchStories returns all stories, newest first.
	FetchStories(ctx context.Context) ([]Story, error)

	// CreateStory submits a story posted by u.
	CreateStory(ctx context.Context, u *User, s NewStory) (Story, error)

	// DeleteStory removes one of u's stories.
	DeleteStory(ctx context.Context, u *User, storyID string) error

	// AddFavorite and RemoveFavorite return the updated user.
	AddFavorite(ctx context.Context, u *User, storyID string) (*User, error)
	RemoveFavorite(ctx context.Context, u *User, storyID string) (*User, error)
}

// RemoveStory returns stories without the story with the given id
func RemoveStory(stories []Story, id string) []Story {
	out := stories[:0:0]
	for _, s := range stories {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
