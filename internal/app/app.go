package app

import (
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/snooze/internal/config"
	"github.com/zhubert/snooze/internal/logger"
	"github.com/zhubert/snooze/internal/news"
	"github.com/zhubert/snooze/internal/session"
	"github.com/zhubert/snooze/internal/ui"
	"github.com/zhubert/snooze/internal/view"
)

// Operation keys for in-flight suppression. Per-story operations append the
// story id.
const (
	opLogin    = "login"
	opSignup   = "signup"
	opSubmit   = "submit"
	opStories  = "stories"
	opFavorite = "favorite:"
	opDelete   = "delete:"
)

// Model is the main Bubble Tea model. It is the only writer of UI state:
// collaborator calls run inside commands and report back through messages.
type Model struct {
	config  *config.Config
	version string
	client  news.Client
	store   *session.Store

	user    *news.User   // nil when logged out
	stories []news.Story // newest first

	views     *view.State
	formFocus view.Panel // form receiving key presses

	header  *ui.Header
	navbar  *ui.Navbar
	footer  *ui.Footer
	list    *ui.StoryList
	login   *ui.LoginForm
	signup  *ui.SignupForm
	submit  *ui.SubmitForm
	spinner spinner.Model

	inFlight map[string]bool
	loaded   bool // startup load finished

	width  int
	height int
}

// New creates a new app model
func New(cfg *config.Config, client news.Client, store *session.Store, version string) *Model {
	ui.SetThemeByName(cfg.GetTheme())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.StatusLoadingStyle

	return &Model{
		config:   cfg,
		version:  version,
		client:   client,
		store:    store,
		views:    view.New(),
		header:   ui.NewHeader(),
		navbar:   ui.NewNavbar(),
		footer:   ui.NewFooter(),
		list:     ui.NewStoryList("All stories", "No stories yet. Press s to submit one."),
		login:    ui.NewLoginForm(),
		signup:   ui.NewSignupForm(),
		submit:   ui.NewSubmitForm(),
		spinner:  s,
		inFlight: make(map[string]bool),
	}
}

// Init loads the stored session and the story list
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startup(), m.spinner.Tick)
}

// User returns the logged-in user, or nil
func (m *Model) User() *news.User {
	return m.user
}

// Stories returns the current story list
func (m *Model) Stories() []news.Story {
	return m.stories
}

// Views returns the panel visibility state
func (m *Model) Views() *view.State {
	return m.views
}

// InFlight reports whether the operation with the given key is running
func (m *Model) InFlight(key string) bool {
	return m.inFlight[key]
}

// begin marks an operation as running. It returns false when the same
// operation is already in flight, in which case the request is dropped.
func (m *Model) begin(key string) bool {
	if m.inFlight[key] {
		log().Debug("dropping duplicate request", "op", key)
		return false
	}
	m.inFlight[key] = true
	m.header.SetLoading(true)
	return true
}

// end marks an operation as finished
func (m *Model) end(key string) {
	delete(m.inFlight, key)
	m.header.SetLoading(len(m.inFlight) > 0)
}

func log() *slog.Logger {
	return logger.WithComponent("app")
}
