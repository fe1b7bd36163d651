// Package local implements news.Client against a JSON file on disk, so the
// client works without a remote API. Passwords are stored as bcrypt hashes and
// login tokens are HS256 JWTs whose subject is the username.
package local

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	serrors "github.com/zhubert/snooze/internal/errors"
	"github.com/zhubert/snooze/internal/logger"
	"github.com/zhubert/snooze/internal/news"
)

const (
	tokenIssuer = "snooze-local"
	tokenTTL    = 30 * 24 * time.Hour
)

// account is a stored user
type account struct {
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	Favorites    []string  `json:"favorites"` // story ids, in the order they were favorited
}

// state is the on-disk layout
type state struct {
	Secret  string              `json:"secret"`
	Users   map[string]*account `json:"users"`
	Stories []news.Story        `json:"stories"` // newest first
}

// Backend is a file-backed story backend. It is safe for concurrent use.
type Backend struct {
	path string // empty for memory only
	cost int
	now  func() time.Time

	mu    sync.Mutex
	state state
}

// Option configures a Backend
type Option func(*Backend)

// WithBcryptCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(b *Backend) { b.cost = cost }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// WithoutSeed starts an empty backend instead of the sample stories
func WithoutSeed() Option {
	return func(b *Backend) { b.state.Stories = []news.Story{} }
}

// Open loads the backend from path, creating and seeding the file on first run.
func Open(path string, opts ...Option) (*Backend, error) {
	b := newBackend(path, opts...)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := b.save(); err != nil {
			return nil, err
		}
		logger.WithComponent("local").Info("created story backend", "path", path)
		return b, nil
	case err != nil:
		return nil, serrors.E(serrors.Op("local.Open"), serrors.KindIO, err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, serrors.E(serrors.Op("local.Open"), serrors.KindIO, fmt.Sprintf("corrupt backend file %s", path), err)
	}
	if st.Users == nil {
		st.Users = make(map[string]*account)
	}
	if st.Secret == "" {
		st.Secret = b.state.Secret
	}
	b.state = st
	return b, nil
}

// NewMemory returns a backend that never touches disk
func NewMemory(opts ...Option) *Backend {
	return newBackend("", opts...)
}

func newBackend(path string, opts ...Option) *Backend {
	b := &Backend{
		path: path,
		cost: bcrypt.DefaultCost,
		now:  time.Now,
	}
	b.state = state{
		Secret: newSecret(),
		Users:  make(map[string]*account),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.state.Stories == nil {
		b.state.Stories = seedStories(b.now())
	}
	return b
}

func newSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// Login implements news.Client
func (b *Backend) Login(ctx context.Context, username, password string) (*news.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.state.Users[username]
	if !ok || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, serrors.InvalidCredentials(username)
	}

	return b.issue(acct)
}

// Signup implements news.Client
func (b *Backend) Signup(ctx context.Context, username, password, name string) (*news.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, serrors.E(serrors.Op("news.Signup"), serrors.KindInvalid, "username and password are required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, taken := b.state.Users[username]; taken {
		return nil, serrors.UsernameTaken(username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return nil, serrors.E(serrors.Op("news.Signup"), serrors.KindInvalid, err)
	}

	if strings.TrimSpace(name) == "" {
		name = username
	}
	acct := &account{
		Username:     username,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    b.now(),
		Favorites:    []string{},
	}
	b.state.Users[username] = acct
	if err := b.save(); err != nil {
		delete(b.state.Users, username)
		return nil, err
	}

	logger.WithUser(username).Info("account created")
	return b.issue(acct)
}

// Restore implements news.Client
func (b *Backend) Restore(ctx context.Context, token, username string) (*news.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acct, err := b.verify(token, username)
	if err != nil {
		logger.WithUser(username).Debug("stored token rejected", "error", err)
		return nil, nil
	}
	return b.userFor(acct, token), nil
}

// FetchStories implements news.Client
func (b *Backend) FetchStories(ctx context.Context) ([]news.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]news.Story(nil), b.state.Stories...), nil
}

// CreateStory implements news.Client
func (b *Backend) CreateStory(ctx context.Context, u *news.User, ns news.NewStory) (news.Story, error) {
	if err := ctx.Err(); err != nil {
		return news.Story{}, err
	}

	title := strings.TrimSpace(ns.Title)
	url := strings.TrimSpace(ns.URL)
	if title == "" || url == "" {
		return news.Story{}, serrors.E(serrors.Op("news.CreateStory"), serrors.KindInvalid, "title and url are required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.authorize(u, "news.CreateStory"); err != nil {
		return news.Story{}, err
	}

	author := strings.TrimSpace(ns.Author)
	if author == "" {
		author = u.Username
	}
	s := news.Story{
		ID:        uuid.New().String(),
		Title:     title,
		Author:    author,
		URL:       url,
		Username:  u.Username,
		CreatedAt: b.now(),
	}
	b.state.Stories = append([]news.Story{s}, b.state.Stories...)
	if err := b.save(); err != nil {
		b.state.Stories = b.state.Stories[1:]
		return news.Story{}, err
	}

	logger.WithUser(u.Username).Info("story created", "storyID", s.ID)
	return s, nil
}

// DeleteStory implements news.Client
func (b *Backend) DeleteStory(ctx context.Context, u *news.User, storyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.authorize(u, "news.DeleteStory"); err != nil {
		return err
	}

	s, ok := b.find(storyID)
	if !ok {
		return serrors.StoryNotFound(storyID)
	}
	if s.Username != u.Username {
		return serrors.NotPoster(storyID)
	}

	prevStories := b.state.Stories
	prevFavorites := make(map[string][]string, len(b.state.Users))
	b.state.Stories = news.RemoveStory(b.state.Stories, storyID)
	for name, acct := range b.state.Users {
		prevFavorites[name] = acct.Favorites
		acct.Favorites = removeID(acct.Favorites, storyID)
	}
	if err := b.save(); err != nil {
		b.state.Stories = prevStories
		for name, acct := range b.state.Users {
			acct.Favorites = prevFavorites[name]
		}
		return err
	}

	logger.WithUser(u.Username).Info("story deleted", "storyID", storyID)
	return nil
}

// AddFavorite implements news.Client
func (b *Backend) AddFavorite(ctx context.Context, u *news.User, storyID string) (*news.User, error) {
	return b.updateFavorites(ctx, u, storyID, "news.AddFavorite", func(ids []string) []string {
		for _, id := range ids {
			if id == storyID {
				return ids
			}
		}
		return append(ids, storyID)
	})
}

// RemoveFavorite implements news.Client
func (b *Backend) RemoveFavorite(ctx context.Context, u *news.User, storyID string) (*news.User, error) {
	return b.updateFavorites(ctx, u, storyID, "news.RemoveFavorite", func(ids []string) []string {
		return removeID(ids, storyID)
	})
}

func (b *Backend) updateFavorites(ctx context.Context, u *news.User, storyID string, op serrors.Op, apply func([]string) []string) (*news.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acct, err := b.authorize(u, op)
	if err != nil {
		return nil, err
	}
	if _, ok := b.find(storyID); !ok {
		return nil, serrors.StoryNotFound(storyID)
	}

	prev := acct.Favorites
	acct.Favorites = apply(append([]string(nil), prev...))
	if err := b.save(); err != nil {
		acct.Favorites = prev
		return nil, err
	}
	return b.userFor(acct, u.Token), nil
}

// issue signs a token for acct. Caller must hold b.mu.
func (b *Backend) issue(acct *account) (*news.User, error) {
	now := b.now()
	claims := jwt.RegisteredClaims{
		Subject:   acct.Username,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(b.state.Secret))
	if err != nil {
		return nil, serrors.E(serrors.Op("local.issue"), serrors.KindAuth, err)
	}
	return b.userFor(acct, token), nil
}

// verify checks that token was issued by this backend for username. Caller
// must hold b.mu.
func (b *Backend) verify(token, username string) (*account, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(b.state.Secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithSubject(username), jwt.WithTimeFunc(b.now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	acct, ok := b.state.Users[username]
	if !ok {
		return nil, fmt.Errorf("unknown user %s", username)
	}
	return acct, nil
}

// authorize resolves the account behind u. Caller must hold b.mu.
func (b *Backend) authorize(u *news.User, op serrors.Op) (*account, error) {
	if u == nil {
		return nil, serrors.LoginRequired(op)
	}
	acct, err := b.verify(u.Token, u.Username)
	if err != nil {
		return nil, serrors.E(op, serrors.KindAuth, "session expired, log in again", err)
	}
	return acct, nil
}

// userFor builds the client-facing user. Caller must hold b.mu.
func (b *Backend) userFor(acct *account, token string) *news.User {
	u := &news.User{
		Username:   acct.Username,
		Name:       acct.Name,
		Token:      token,
		CreatedAt:  acct.CreatedAt,
		Favorites:  []news.Story{},
		OwnStories: []news.Story{},
	}
	for _, id := range acct.Favorites {
		if s, ok := b.find(id); ok {
			u.Favorites = append(u.Favorites, s)
		}
	}
	for _, s := range b.state.Stories {
		if s.Username == acct.Username {
			u.OwnStories = append(u.OwnStories, s)
		}
	}
	return u
}

func (b *Backend) find(id string) (news.Story, bool) {
	for _, s := range b.state.Stories {
		if s.ID == id {
			return s, true
		}
	}
	return news.Story{}, false
}

// save persists the state. Caller must hold b.mu.
func (b *Backend) save() error {
	if b.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(b.state, "", "  ")
	if err != nil {
		return serrors.E(serrors.Op("local.save"), serrors.KindIO, err)
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0700); err != nil {
		return serrors.E(serrors.Op("local.save"), serrors.KindIO, err)
	}
	if err := os.WriteFile(b.path, data, 0600); err != nil {
		return serrors.E(serrors.Op("local.save"), serrors.KindIO, err)
	}
	return nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
