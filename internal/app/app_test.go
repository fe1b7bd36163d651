package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/crypto/bcrypt"

	"github.com/zhubert/snooze/internal/keys"
	"github.com/zhubert/snooze/internal/news"
	"github.com/zhubert/snooze/internal/news/local"
	"github.com/zhubert/snooze/internal/session"
	"github.com/zhubert/snooze/internal/ui"
	"github.com/zhubert/snooze/internal/view"
)

func screen(m *Model) string {
	return ansi.Strip(m.RenderToString())
}

func assertFlash(t *testing.T, m *Model, typ ui.FlashType, contains string) {
	t.Helper()
	f := m.footer.Flash()
	if f == nil {
		t.Fatalf("expected flash containing %q, got none", contains)
	}
	if f.Type != typ {
		t.Errorf("flash type = %v, want %v (text %q)", f.Type, typ, f.Text)
	}
	if !strings.Contains(f.Text, contains) {
		t.Errorf("flash text = %q, want it to contain %q", f.Text, contains)
	}
}

func TestStartup_NoSession(t *testing.T) {
	env := startedEnv(t)
	m := env.m

	if m.User() != nil {
		t.Error("no stored session should leave the user logged out")
	}
	if m.Views().Active() != view.PanelAllStories {
		t.Errorf("Active() = %v, want all stories", m.Views().Active())
	}
	if len(m.Stories()) != 5 {
		t.Errorf("expected 5 seeded stories, got %d", len(m.Stories()))
	}
	if m.InFlight(opStories) {
		t.Error("stories fetch should have finished")
	}
	if !strings.Contains(screen(m), "not logged in") {
		t.Error("header should show the logged-out indicator")
	}
}

func TestStartup_Welcome(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.WelcomeShown = false

	drain(t, env.m, env.m.Init())

	assertFlash(t, env.m, ui.FlashInfo, "Welcome to snooze")
	if !env.cfg.HasSeenWelcome() {
		t.Error("welcome should only be shown once")
	}
}

func TestStartup_LoadingIndicator(t *testing.T) {
	env := newTestEnv(t)
	m := env.m

	cmd := m.Init()
	if !strings.Contains(screen(m), "Loading stories") {
		t.Error("expected loading indicator before the first fetch completes")
	}
	drain(t, m, cmd)
	if strings.Contains(screen(m), "Loading stories") {
		t.Error("loading indicator should be gone after startup")
	}
}

func TestStartup_RestoresSession(t *testing.T) {
	env := newTestEnv(t)
	u := env.signup(t, "alice")
	if err := env.store.Save(session.Session{Token: u.Token, Username: "alice"}); err != nil {
		t.Fatal(err)
	}

	drain(t, env.m, env.m.Init())

	if env.m.User() == nil || env.m.User().Username != "alice" {
		t.Fatalf("User() = %v, want alice", env.m.User())
	}
	if !strings.Contains(screen(env.m), "@alice") {
		t.Error("header should show the logged-in user")
	}
}

func TestStartup_InvalidSessionCleared(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice")
	if err := env.store.Save(session.Session{Token: "bogus", Username: "alice"}); err != nil {
		t.Fatal(err)
	}

	drain(t, env.m, env.m.Init())

	if env.m.User() != nil {
		t.Error("invalid session should not log in")
	}
	if _, ok := env.store.Load(); ok {
		t.Error("invalid session should be cleared from the store")
	}
	assertFlash(t, env.m, ui.FlashWarning, "Session expired")
}

func TestStartup_KeepsFormOpenedDuringLoad(t *testing.T) {
	env := newTestEnv(t)
	startCmd := env.m.Init()

	press(t, env.m, "l")
	drain(t, env.m, startCmd)

	if !env.m.Views().IsVisible(view.PanelLoginForm) {
		t.Error("login form opened during startup should stay open")
	}
	if len(env.m.Stories()) != 5 {
		t.Errorf("expected 5 seeded stories, got %d", len(env.m.Stories()))
	}
}

func TestLogin(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m

	sess, ok := env.store.Load()
	if !ok || sess.Username != "alice" || sess.Token != m.User().Token {
		t.Errorf("store should hold the new session, got %+v, %v", sess, ok)
	}
	if m.Views().Active() != view.PanelAllStories {
		t.Errorf("Active() = %v, want all stories", m.Views().Active())
	}
	if m.Views().FormVisible() {
		t.Error("forms should be hidden after login")
	}
	if env.cfg.GetLastUsername() != "alice" {
		t.Errorf("LastUsername = %q", env.cfg.GetLastUsername())
	}
	if !strings.Contains(screen(m), "@alice") {
		t.Error("header should show @alice")
	}
	assertFlash(t, m, ui.FlashSuccess, "Welcome, Name alice")
}

func TestLogin_BadCredentials(t *testing.T) {
	env := startedEnv(t)
	m := env.m
	env.signup(t, "alice")

	press(t, m, "l")
	before := m.Views().Visible()

	drain(t, m, m.onLogin("alice", "wrong"))

	if m.User() != nil {
		t.Error("bad credentials should not log in")
	}
	after := m.Views().Visible()
	if len(before) != len(after) {
		t.Errorf("visible panels changed from %v to %v", before, after)
	}
	if !m.Views().IsVisible(view.PanelLoginForm) {
		t.Error("login form should stay open after a failed login")
	}
	if m.InFlight(opLogin) {
		t.Error("login should no longer be in flight")
	}
	assertFlash(t, m, ui.FlashError, "invalid credentials")
}

func TestLogin_BlankFields(t *testing.T) {
	env := startedEnv(t)
	m := env.m

	m.onLogin("", "")

	if m.InFlight(opLogin) {
		t.Error("blank login should not start a request")
	}
	assertFlash(t, m, ui.FlashWarning, "username and password")
}

func TestSignup(t *testing.T) {
	env := startedEnv(t)
	m := env.m

	drain(t, m, m.onSignup("Alice Liddell", "alice", "hunter2"))

	if m.User() == nil || m.User().Name != "Alice Liddell" {
		t.Fatalf("User() = %v", m.User())
	}
	if _, ok := env.store.Load(); !ok {
		t.Error("signup should persist the session")
	}

	// Same username again fails without touching the current user
	drain(t, m, m.onSignup("Other", "alice", "pw"))
	assertFlash(t, m, ui.FlashError, "already taken")
}

func TestLogin_DegradedStoreStillLogsIn(t *testing.T) {
	cfg := testConfig(t)
	backend := local.NewMemory(local.WithBcryptCost(bcrypt.MinCost))
	if _, err := backend.Signup(context.Background(), "alice", "hunter2", "Alice"); err != nil {
		t.Fatal(err)
	}
	store := unwritableStore(t)

	m := New(cfg, backend, store, "test")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	drain(t, m, m.Init())
	drain(t, m, m.onLogin("alice", "hunter2"))

	if m.User() == nil {
		t.Fatal("login should succeed even when the session cannot be saved")
	}
	if !store.Degraded() {
		t.Error("store should have degraded to memory")
	}
	if sess, ok := store.Load(); !ok || sess.Username != "alice" {
		t.Errorf("degraded store should still return the session, got %+v", sess)
	}
}

func TestSubmitStory_PrependsWithoutRefetch(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m

	press(t, m, "s")
	if !m.Views().IsVisible(view.PanelSubmitForm) {
		t.Fatal("s should open the submit form")
	}

	fetches := env.client.fetches.Load()
	drain(t, m, m.onSubmitStory("Hello", "", "https://example.com/hello"))

	if got := env.client.fetches.Load(); got != fetches {
		t.Errorf("submit should not re-fetch stories (%d -> %d)", fetches, got)
	}
	if len(m.Stories()) != 6 || m.Stories()[0].Title != "Hello" {
		t.Errorf("new story should be first, got %v", m.Stories())
	}
	if len(m.User().OwnStories) != 1 {
		t.Errorf("OwnStories = %v", m.User().OwnStories)
	}
	if m.Views().IsVisible(view.PanelSubmitForm) {
		t.Error("submit form should close after posting")
	}
	sel, ok := m.list.Selected()
	if !ok || sel.ID != m.Stories()[0].ID {
		t.Errorf("new story should be selected, got %+v", sel)
	}
	if !strings.Contains(screen(m), "(example.com)") {
		t.Error("rendered list should show the new story's host")
	}
	assertFlash(t, m, ui.FlashSuccess, "Story submitted")
}

func TestSubmitStory_Validation(t *testing.T) {
	t.Run("logged out", func(t *testing.T) {
		env := startedEnv(t)
		env.m.onSubmitStory("t", "", "u")
		if env.m.InFlight(opSubmit) {
			t.Error("logged-out submit should not start a request")
		}
		assertFlash(t, env.m, ui.FlashWarning, "Log in")
	})

	t.Run("missing url", func(t *testing.T) {
		env := loggedInEnv(t)
		env.m.onSubmitStory("t", "", "")
		if env.m.InFlight(opSubmit) {
			t.Error("incomplete submit should not start a request")
		}
		assertFlash(t, env.m, ui.FlashWarning, "title and a URL")
	})

	t.Run("s logged out", func(t *testing.T) {
		env := startedEnv(t)
		press(t, env.m, "s")
		if env.m.Views().IsVisible(view.PanelSubmitForm) {
			t.Error("submit form should not open while logged out")
		}
	})
}

func TestDuplicateSubmitSuppressed(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m

	first := m.onSubmitStory("One", "", "one.io")
	if first == nil {
		t.Fatal("first submit should start a request")
	}
	if second := m.onSubmitStory("One", "", "one.io"); second != nil {
		t.Error("second submit should be dropped while the first is in flight")
	}
	if !m.InFlight(opSubmit) {
		t.Error("submit should be in flight")
	}

	drain(t, m, first)

	if m.InFlight(opSubmit) {
		t.Error("submit should have finished")
	}
	if len(m.User().OwnStories) != 1 {
		t.Errorf("expected exactly one story, got %d", len(m.User().OwnStories))
	}
}

func TestToggleFavorite_LoggedOut(t *testing.T) {
	env := startedEnv(t)
	m := env.m

	if cmd := m.onToggleFavorite("seed-a"); cmd != nil {
		t.Error("favorite toggle while logged out should do nothing")
	}

	press(t, m, keys.Space)
	if m.footer.HasFlash() {
		t.Errorf("logged-out toggle should be silent, got %q", m.footer.Flash().Text)
	}
	if len(m.inFlight) != 0 {
		t.Errorf("nothing should be in flight, got %v", m.inFlight)
	}
}

func TestToggleFavorite(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m

	sel, ok := m.list.Selected()
	if !ok {
		t.Fatal("expected a selected story")
	}

	press(t, m, keys.Space)
	if len(m.User().Favorites) != 1 || m.User().Favorites[0].ID != sel.ID {
		t.Fatalf("Favorites = %v", m.User().Favorites)
	}
	assertFlash(t, m, ui.FlashSuccess, "Added")
	if now, _ := m.list.Selected(); now.Star.Glyph() != "★" {
		t.Error("selected story should render as a favorite")
	}

	press(t, m, "*")
	if len(m.User().Favorites) != 0 {
		t.Errorf("second toggle should remove, got %v", m.User().Favorites)
	}
	assertFlash(t, m, ui.FlashInfo, "Removed")
}

func TestToggleFavorite_DecidedByUserRecord(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m

	// Favorite behind the model's back so the screen is stale
	updated, err := env.backend.AddFavorite(context.Background(), m.User(), "seed-b")
	if err != nil {
		t.Fatal(err)
	}
	m.user = updated

	drain(t, m, m.onToggleFavorite("seed-b"))

	if len(m.User().Favorites) != 0 {
		t.Errorf("toggle should remove a favorite the user already has, got %v", m.User().Favorites)
	}
	assertFlash(t, m, ui.FlashInfo, "Removed")
}

func TestToggleFavorite_DuplicateSuppressed(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m

	first := m.onToggleFavorite("seed-a")
	if second := m.onToggleFavorite("seed-a"); second != nil {
		t.Error("second toggle for the same story should be dropped")
	}
	if other := m.onToggleFavorite("seed-b"); other == nil {
		t.Error("toggle for a different story should not be suppressed")
	} else {
		drain(t, m, other)
	}
	drain(t, m, first)

	if len(m.User().Favorites) != 2 {
		t.Errorf("Favorites = %v", m.User().Favorites)
	}
}

func TestLogout(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m

	press(t, m, "p")
	press(t, m, "x")

	if m.User() != nil {
		t.Error("user should be cleared")
	}
	if _, ok := env.store.Load(); ok {
		t.Error("session should be cleared from the store")
	}
	if m.Views().Active() != view.PanelAllStories {
		t.Errorf("Active() = %v, want all stories", m.Views().Active())
	}
	if !strings.Contains(screen(m), "not logged in") {
		t.Error("header should show the logged-out indicator")
	}

	if cmd := m.onLogout(); cmd != nil {
		t.Error("logout while logged out should be a no-op")
	}
}

func TestLogout_ClearsSessionWithoutUser(t *testing.T) {
	env := startedEnv(t)
	// A session kept on disk while nobody is logged in, as after a failed restore
	if err := env.store.Save(session.Session{Token: "kept", Username: "alice"}); err != nil {
		t.Fatal(err)
	}

	press(t, env.m, "x")

	if _, ok := env.store.Load(); ok {
		t.Error("logout should clear the stored session")
	}
	if _, ok := session.NewStore(env.store.Path()).Load(); ok {
		t.Error("session file should be gone after logout")
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		key      string
		panel    view.Panel
		loggedIn bool
		want     view.Panel
	}{
		{"a", view.PanelAllStories, false, view.PanelAllStories},
		{"f", view.PanelFavorites, false, view.PanelNone},
		{"m", view.PanelOwnStories, false, view.PanelNone},
		{"p", view.PanelUserProfile, false, view.PanelNone},
		{"f", view.PanelFavorites, true, view.PanelFavorites},
		{"m", view.PanelOwnStories, true, view.PanelOwnStories},
		{"p", view.PanelUserProfile, true, view.PanelUserProfile},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s loggedIn=%v", tt.panel, tt.loggedIn), func(t *testing.T) {
			var env *testEnv
			if tt.loggedIn {
				env = loggedInEnv(t)
			} else {
				env = startedEnv(t)
			}
			m := env.m

			press(t, m, tt.key)

			if got := m.Views().Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
			if tt.want == view.PanelNone {
				if len(m.Views().Visible()) != 0 {
					t.Errorf("no panel should be visible, got %v", m.Views().Visible())
				}
				assertFlash(t, m, ui.FlashWarning, "Log in")
			}
		})
	}
}

func TestProfile(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m

	press(t, m, "p")

	s := screen(m)
	for _, want := range []string{"User profile", "Name alice", "alice"} {
		if !strings.Contains(s, want) {
			t.Errorf("profile should contain %q", want)
		}
	}
}

func TestDeleteOwnStory(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m

	drain(t, m, m.onSubmitStory("Mine", "", "mine.io"))
	id := m.Stories()[0].ID

	// d does nothing outside my stories
	press(t, m, "d")
	if len(m.User().OwnStories) != 1 {
		t.Fatal("d should only delete from my stories")
	}

	press(t, m, "m")
	sel, ok := m.list.Selected()
	if !ok || sel.ID != id || !sel.Deletable {
		t.Fatalf("expected own story selected and deletable, got %+v", sel)
	}

	press(t, m, "d")

	if len(m.User().OwnStories) != 0 {
		t.Errorf("OwnStories = %v", m.User().OwnStories)
	}
	for _, s := range m.Stories() {
		if s.ID == id {
			t.Error("deleted story should be gone from the list")
		}
	}
	if m.Views().Active() != view.PanelAllStories {
		t.Errorf("Active() = %v, want all stories", m.Views().Active())
	}
	assertFlash(t, m, ui.FlashSuccess, "Story deleted")
}

func TestDeleteSeedStory_NotDeletable(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m

	if it, ok := m.list.Selected(); !ok || it.Deletable {
		t.Errorf("stories in the all-stories list should not be deletable, got %+v", it)
	}
}

func TestLoginFormsToggle(t *testing.T) {
	env := startedEnv(t)
	m := env.m

	press(t, m, "l")
	if !m.Views().IsVisible(view.PanelLoginForm) || !m.Views().IsVisible(view.PanelSignupForm) {
		t.Error("l should open login and signup")
	}
	if m.Views().IsVisible(view.PanelAllStories) {
		t.Error("l should hide all stories")
	}
	if !strings.Contains(screen(m), "Create account") {
		t.Error("signup form should render")
	}

	// Keys go to the form, so q must not quit
	_, cmd := m.Update(keyPress("q"))
	if cmd != nil {
		if msg, ok := execCmd(cmd); ok {
			if _, quit := msg.(tea.QuitMsg); quit {
				t.Error("q inside a form should not quit")
			}
		}
	}
	if !m.Views().FormVisible() {
		t.Error("form should still be open")
	}

	press(t, m, keys.Escape)
	if m.Views().FormVisible() {
		t.Error("esc should close the forms")
	}
	if m.Views().Active() != view.PanelAllStories {
		t.Errorf("Active() = %v, want all stories", m.Views().Active())
	}
}

func TestLoginFormsToggle_LoggedIn(t *testing.T) {
	env := loggedInEnv(t)

	press(t, env.m, "l")

	if env.m.Views().FormVisible() {
		t.Error("login forms should not open while logged in")
	}
	assertFlash(t, env.m, ui.FlashInfo, "Already logged in")
}

func TestCtrlC_Quits(t *testing.T) {
	env := startedEnv(t)
	press(t, env.m, "l")

	_, cmd := env.m.Update(keyPress(keys.CtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit even with a form open")
	}
}

func TestRequestTimeout(t *testing.T) {
	env := loggedInEnv(t)
	m := env.m
	env.cfg.RequestTimeoutSeconds = 1
	m.client = blockingClient{Client: env.backend}

	cmd := m.onRefresh()
	if cmd == nil {
		t.Fatal("refresh should start a request")
	}
	msg := cmd()
	m.Update(msg)

	if m.InFlight(opStories) {
		t.Error("timed out request should not stay in flight")
	}
	assertFlash(t, m, ui.FlashError, "Request timed out")
}

func TestToggleNotifications(t *testing.T) {
	env := startedEnv(t)
	before := env.cfg.GetNotificationsEnabled()

	press(t, env.m, "n")

	if env.cfg.GetNotificationsEnabled() == before {
		t.Error("n should flip notifications")
	}
}

func TestCycleTheme(t *testing.T) {
	env := startedEnv(t)
	defer ui.SetTheme(ui.DefaultTheme)

	press(t, env.m, "t")

	if env.cfg.GetTheme() != string(ui.CurrentThemeName()) {
		t.Errorf("config theme = %q, current = %q", env.cfg.GetTheme(), ui.CurrentThemeName())
	}
	if ui.CurrentThemeName() == ui.DefaultTheme {
		t.Error("t should move to the next theme")
	}
	assertFlash(t, env.m, ui.FlashInfo, "Theme:")
}

func TestListNavigation(t *testing.T) {
	env := startedEnv(t)
	m := env.m

	press(t, m, "j")
	press(t, m, keys.Down)
	if m.list.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", m.list.Cursor())
	}
	press(t, m, "G")
	if m.list.Cursor() != 4 {
		t.Errorf("Cursor() = %d, want 4", m.list.Cursor())
	}
	press(t, m, "g")
	if m.list.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", m.list.Cursor())
	}
}

func TestRender_TinyWindow(t *testing.T) {
	env := startedEnv(t)
	env.m.Update(tea.WindowSizeMsg{Width: 10, Height: 2})

	// Should not panic
	_ = env.m.RenderToString()
}

// blockingClient never answers FetchStories before ctx is done
type blockingClient struct {
	news.Client
}

func (blockingClient) FetchStories(ctx context.Context) ([]news.Story, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestSubmitStory_Notifies(t *testing.T) {
	env := loggedInEnv(t)
	env.cfg.SetNotificationsEnabled(true)
	before := notified.Load()

	drain(t, env.m, env.m.onSubmitStory("Loud", "", "loud.io"))

	if notified.Load() != before+1 {
		t.Error("submitting with notifications on should notify")
	}

	env.cfg.SetNotificationsEnabled(false)
	drain(t, env.m, env.m.onSubmitStory("Quiet", "", "quiet.io"))
	if notified.Load() != before+1 {
		t.Error("submitting with notifications off should not notify")
	}
}

func TestCopyLink(t *testing.T) {
	env := startedEnv(t)
	m := env.m

	sel, _ := m.list.Selected()
	press(t, m, "y")

	if got, _ := copied.Load().(string); got != sel.URL {
		t.Errorf("copied %q, want %q", got, sel.URL)
	}
	assertFlash(t, m, ui.FlashSuccess, "Copied")
}
