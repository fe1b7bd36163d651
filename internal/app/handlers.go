package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/sync/errgroup"

	"github.com/zhubert/snooze/internal/clipboard"
	serrors "github.com/zhubert/snooze/internal/errors"
	"github.com/zhubert/snooze/internal/news"
	"github.com/zhubert/snooze/internal/notification"
	"github.com/zhubert/snooze/internal/session"
	"github.com/zhubert/snooze/internal/story"
	"github.com/zhubert/snooze/internal/view"
)

// call wraps a collaborator call in a command with the configured timeout
func (m *Model) call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
}

// startup restores the stored session and fetches stories concurrently
func (m *Model) startup() tea.Cmd {
	m.inFlight[opStories] = true
	m.header.SetLoading(true)

	store, client := m.store, m.client
	return m.call(func(ctx context.Context) tea.Msg {
		var msg StartupLoadedMsg
		sess, ok := store.Load()
		msg.SessionFound = ok

		// Both calls report their own errors so one failing does not cancel the other
		var g errgroup.Group
		if ok {
			g.Go(func() error {
				msg.User, msg.RestoreErr = client.Restore(ctx, sess.Token, sess.Username)
				return nil
			})
		}
		g.Go(func() error {
			msg.Stories, msg.StoriesErr = client.FetchStories(ctx)
			return nil
		})
		_ = g.Wait()
		return msg
	})
}

func (m *Model) handleStartupLoaded(msg StartupLoadedMsg) (tea.Model, tea.Cmd) {
	m.end(opStories)
	m.loaded = true

	var cmds []tea.Cmd
	switch {
	case msg.RestoreErr != nil:
		// Keep the stored session; it may still be valid next time
		log().Warn("failed to restore session", "error", msg.RestoreErr)
		cmds = append(cmds, m.flashError(msg.RestoreErr))
	case msg.SessionFound && msg.User == nil:
		log().Info("stored session is no longer valid")
		if err := m.store.Clear(); err != nil {
			log().Warn("failed to clear session", "error", err)
		}
		cmds = append(cmds, m.ShowFlashWarning("Session expired, log in again"))
	case msg.User != nil:
		m.setUser(msg.User)
		log().Info("session restored", "user", msg.User.Username)
	}

	if msg.StoriesErr != nil {
		log().Error("failed to fetch stories", "error", msg.StoriesErr)
		cmds = append(cmds, m.flashError(msg.StoriesErr))
	} else {
		m.stories = msg.Stories
	}

	if len(cmds) == 0 && m.user == nil && !m.config.HasSeenWelcome() {
		m.config.MarkWelcomeShown()
		if err := m.config.Save(); err != nil {
			log().Warn("failed to save config", "error", err)
		}
		cmds = append(cmds, m.ShowFlashInfo("Welcome to snooze. Press l to log in or sign up."))
	}

	if !m.views.FormVisible() {
		m.views.Navigate(view.PanelAllStories)
	}
	m.renderActive()
	return m, tea.Batch(cmds...)
}

// onLogin authenticates with the given credentials
func (m *Model) onLogin(username, password string) tea.Cmd {
	if username == "" || password == "" {
		return m.ShowFlashWarning("Enter a username and password")
	}
	if !m.begin(opLogin) {
		return nil
	}

	client := m.client
	return m.call(func(ctx context.Context) tea.Msg {
		u, err := client.Login(ctx, username, password)
		return AuthResultMsg{Op: opLogin, User: u, Err: err}
	})
}

// onSignup creates an account and logs it in
func (m *Model) onSignup(name, username, password string) tea.Cmd {
	if username == "" || password == "" {
		return m.ShowFlashWarning("Choose a username and password")
	}
	if !m.begin(opSignup) {
		return nil
	}

	client := m.client
	return m.call(func(ctx context.Context) tea.Msg {
		u, err := client.Signup(ctx, username, password, name)
		return AuthResultMsg{Op: opSignup, User: u, Err: err}
	})
}

func (m *Model) handleAuthResult(msg AuthResultMsg) (tea.Model, tea.Cmd) {
	m.end(msg.Op)

	if msg.Err != nil {
		log().Warn("authentication failed", "op", msg.Op, "error", msg.Err)
		return m, m.flashError(msg.Err)
	}

	u := msg.User
	if err := m.store.Save(session.Session{Token: u.Token, Username: u.Username}); err != nil {
		// The store keeps the session in memory from here on
		log().Warn("session not persisted", "error", err)
	}
	m.config.SetLastUsername(u.Username)
	if err := m.config.Save(); err != nil {
		log().Warn("failed to save config", "error", err)
	}

	m.setUser(u)
	m.login.Reset()
	m.signup.Reset()
	m.views.HideForms()
	m.views.Navigate(view.PanelAllStories)
	m.renderActive()

	log().Info("logged in", "op", msg.Op, "user", u.Username)
	return m, m.ShowFlashSuccess(fmt.Sprintf("Welcome, %s", u.Name))
}

// onLogout drops the session everywhere and reloads the story list
func (m *Model) onLogout() tea.Cmd {
	// A session kept after a failed restore has no in-memory user
	if err := m.store.Clear(); err != nil {
		log().Warn("failed to clear session", "error", err)
	}
	if m.user == nil {
		return nil
	}
	username := m.user.Username

	m.setUser(nil)
	m.login.Reset()
	m.signup.Reset()
	m.submit.Reset()
	m.views.HideAll()
	m.views.Show(view.PanelAllStories)
	m.renderActive()

	log().Info("logged out", "user", username)
	return tea.Batch(m.fetchStories(), m.ShowFlashInfo("Logged out"))
}

// onSubmitStory posts a story as the current user
func (m *Model) onSubmitStory(title, author, url string) tea.Cmd {
	if m.user == nil {
		return m.ShowFlashWarning("Log in to submit a story")
	}
	if title == "" || url == "" {
		return m.ShowFlashWarning("A story needs a title and a URL")
	}
	if !m.begin(opSubmit) {
		return nil
	}

	client, u := m.client, m.user.Clone()
	return m.call(func(ctx context.Context) tea.Msg {
		s, err := client.CreateStory(ctx, u, news.NewStory{Title: title, Author: author, URL: url})
		return StoryCreatedMsg{Username: u.Username, Story: s, Err: err}
	})
}

func (m *Model) handleStoryCreated(msg StoryCreatedMsg) (tea.Model, tea.Cmd) {
	m.end(opSubmit)

	if msg.Err != nil {
		log().Warn("submit failed", "error", msg.Err)
		return m, m.flashError(msg.Err)
	}
	if !m.isUser(msg.Username) {
		return m, nil
	}

	m.stories = append([]news.Story{msg.Story}, m.stories...)
	m.user.OwnStories = append([]news.Story{msg.Story}, m.user.OwnStories...)
	if m.views.Active() == view.PanelAllStories {
		m.list.Prepend(story.Render(msg.Story, false, false))
	} else {
		m.renderActive()
	}

	m.submit.Reset()
	m.views.Hide(view.PanelSubmitForm)

	cmds := []tea.Cmd{m.ShowFlashSuccess("Story submitted")}
	if m.config.GetNotificationsEnabled() {
		title := msg.Story.Title
		cmds = append(cmds, func() tea.Msg {
			_ = notification.StorySubmitted(title)
			return nil
		})
	}
	return m, tea.Batch(cmds...)
}

// onToggleFavorite adds or removes a favorite. Whether to add is decided from
// the user's favorites, not from what is on screen.
func (m *Model) onToggleFavorite(storyID string) tea.Cmd {
	if m.user == nil {
		log().Debug("favorite toggle ignored while logged out", "storyID", storyID)
		return nil
	}
	if !m.begin(opFavorite + storyID) {
		return nil
	}

	add := !story.BuildIndex(m.user).IsFavorite(storyID)
	client, u := m.client, m.user.Clone()
	return m.call(func(ctx context.Context) tea.Msg {
		var updated *news.User
		var err error
		if add {
			updated, err = client.AddFavorite(ctx, u, storyID)
		} else {
			updated, err = client.RemoveFavorite(ctx, u, storyID)
		}
		return FavoriteToggledMsg{Username: u.Username, StoryID: storyID, Added: add, User: updated, Err: err}
	})
}

func (m *Model) handleFavoriteToggled(msg FavoriteToggledMsg) (tea.Model, tea.Cmd) {
	m.end(opFavorite + msg.StoryID)

	if msg.Err != nil {
		log().Warn("favorite toggle failed", "storyID", msg.StoryID, "error", msg.Err)
		return m, m.flashError(msg.Err)
	}
	if !m.isUser(msg.Username) {
		return m, nil
	}

	m.user = msg.User
	m.renderActive()

	if msg.Added {
		return m, m.ShowFlashSuccess("Added to favorites")
	}
	return m, m.ShowFlashInfo("Removed from favorites")
}

// onDeleteOwnStory deletes one of the user's stories, re-fetches the list and
// returns to all stories.
func (m *Model) onDeleteOwnStory(storyID string) tea.Cmd {
	if m.user == nil {
		return m.ShowFlashWarning("Log in to delete stories")
	}
	if !m.begin(opDelete + storyID) {
		return nil
	}

	client, u := m.client, m.user.Clone()
	return m.call(func(ctx context.Context) tea.Msg {
		msg := StoryDeletedMsg{Username: u.Username, StoryID: storyID}
		if msg.Err = client.DeleteStory(ctx, u, storyID); msg.Err != nil {
			return msg
		}
		msg.Stories, msg.FetchErr = client.FetchStories(ctx)
		return msg
	})
}

func (m *Model) handleStoryDeleted(msg StoryDeletedMsg) (tea.Model, tea.Cmd) {
	m.end(opDelete + msg.StoryID)

	if msg.Err != nil {
		log().Warn("delete failed", "storyID", msg.StoryID, "error", msg.Err)
		return m, m.flashError(msg.Err)
	}

	if m.isUser(msg.Username) {
		m.user.OwnStories = news.RemoveStory(m.user.OwnStories, msg.StoryID)
		m.user.Favorites = news.RemoveStory(m.user.Favorites, msg.StoryID)
	}

	var cmds []tea.Cmd
	if msg.FetchErr != nil {
		log().Warn("re-fetch after delete failed", "error", msg.FetchErr)
		m.stories = news.RemoveStory(m.stories, msg.StoryID)
		cmds = append(cmds, m.flashError(msg.FetchErr))
	} else {
		m.stories = msg.Stories
		cmds = append(cmds, m.ShowFlashSuccess("Story deleted"))
	}

	m.views.Navigate(view.PanelAllStories)
	m.renderActive()
	return m, tea.Batch(cmds...)
}

// onNavigate hides every panel and shows p when its preconditions hold
func (m *Model) onNavigate(p view.Panel) tea.Cmd {
	m.views.HideAll()

	if p.RequiresAuth() && m.user == nil {
		return m.ShowFlashWarning(fmt.Sprintf("Log in to see %s", p))
	}

	m.views.Show(p)
	m.renderActive()

	if p == view.PanelAllStories {
		return m.fetchStories()
	}
	return nil
}

// onRefresh re-fetches the story list in place
func (m *Model) onRefresh() tea.Cmd {
	return m.fetchStories()
}

func (m *Model) fetchStories() tea.Cmd {
	if !m.begin(opStories) {
		return nil
	}
	client := m.client
	return m.call(func(ctx context.Context) tea.Msg {
		stories, err := client.FetchStories(ctx)
		return StoriesFetchedMsg{Stories: stories, Err: err}
	})
}

func (m *Model) handleStoriesFetched(msg StoriesFetchedMsg) (tea.Model, tea.Cmd) {
	m.end(opStories)

	if msg.Err != nil {
		log().Warn("failed to fetch stories", "error", msg.Err)
		return m, m.flashError(msg.Err)
	}

	m.stories = msg.Stories
	m.renderActive()
	return m, nil
}

// copyLink writes the selected story's url to the clipboard
func (m *Model) copyLink() tea.Cmd {
	it, ok := m.selected()
	if !ok {
		return nil
	}
	url := it.URL
	return func() tea.Msg {
		return LinkCopiedMsg{URL: url, Err: clipboard.WriteText(url)}
	}
}

func (m *Model) handleLinkCopied(msg LinkCopiedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		log().Warn("clipboard write failed", "error", msg.Err)
		return m, m.ShowFlashError("Could not copy link")
	}
	return m, m.ShowFlashSuccess("Copied " + story.HostName(msg.URL) + " link")
}

// setUser replaces the current user and updates the login indicator
func (m *Model) setUser(u *news.User) {
	m.user = u
	if u == nil {
		m.header.SetUsername("")
	} else {
		m.header.SetUsername(u.Username)
	}
}

// isUser reports whether username is still the logged-in user
func (m *Model) isUser(username string) bool {
	return m.user != nil && m.user.Username == username
}

// renderActive re-renders the story list for the visible primary panel
// against a freshly built favorite index.
func (m *Model) renderActive() {
	idx := story.BuildIndex(m.user)

	switch m.views.Active() {
	case view.PanelAllStories:
		m.list.SetTitle("All stories")
		m.list.SetItems(story.RenderAll(m.stories, idx, false))
	case view.PanelFavorites:
		m.list.SetTitle("Favorites")
		m.list.SetItems(story.RenderAll(m.userFavorites(), idx, false))
	case view.PanelOwnStories:
		m.list.SetTitle("My stories")
		m.list.SetItems(story.RenderAll(m.userOwnStories(), idx, true))
	}
}

func (m *Model) userFavorites() []news.Story {
	if m.user == nil {
		return nil
	}
	return m.user.Favorites
}

func (m *Model) userOwnStories() []news.Story {
	if m.user == nil {
		return nil
	}
	return m.user.OwnStories
}

// selected returns the story under the cursor when a list is showing
func (m *Model) selected() (story.Item, bool) {
	switch m.views.Active() {
	case view.PanelAllStories, view.PanelFavorites, view.PanelOwnStories:
		return m.list.Selected()
	}
	return story.Item{}, false
}

// flashError shows err in the footer in user-facing terms
func (m *Model) flashError(err error) tea.Cmd {
	return m.ShowFlashError(serrors.UserMessage(err))
}
