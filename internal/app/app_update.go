package app

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/snooze/internal/keys"
	"github.com/zhubert/snooze/internal/ui"
	"github.com/zhubert/snooze/internal/view"
)

// Update handles messages. This is the core Bubble Tea update function that
// routes all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case StartupLoadedMsg:
		return m.handleStartupLoaded(msg)

	case AuthResultMsg:
		return m.handleAuthResult(msg)

	case StoriesFetchedMsg:
		return m.handleStoriesFetched(msg)

	case StoryCreatedMsg:
		return m.handleStoryCreated(msg)

	case FavoriteToggledMsg:
		return m.handleFavoriteToggled(msg)

	case StoryDeletedMsg:
		return m.handleStoryDeleted(msg)

	case LinkCopiedMsg:
		return m.handleLinkCopied(msg)

	case ui.FlashTickMsg:
		m.footer.ClearIfExpired()
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Anything else (cursor blinks and the like) belongs to the focused form
	if m.views.FormVisible() {
		return m, m.updateFocusedForm(msg)
	}
	return m, nil
}

// handleKeyPress handles all keyboard input
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	log().Debug("key press", "key", key, "formVisible", m.views.FormVisible())

	// ctrl+c always quits
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if m.views.FormVisible() {
		return m, m.handleFormKey(msg)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "a":
		return m, m.onNavigate(view.PanelAllStories)
	case "f":
		return m, m.onNavigate(view.PanelFavorites)
	case "m":
		return m, m.onNavigate(view.PanelOwnStories)
	case "p":
		return m, m.onNavigate(view.PanelUserProfile)
	case "r", keys.CtrlR:
		return m, m.onRefresh()
	case "l":
		return m, m.toggleLoginForms()
	case "s":
		return m, m.toggleSubmitForm()
	case "x":
		return m, m.onLogout()
	case "n":
		return m, m.toggleNotifications()
	case "t":
		return m, m.cycleTheme()
	case "y":
		return m, m.copyLink()
	case keys.Space, "*":
		if it, ok := m.selected(); ok {
			return m, m.onToggleFavorite(it.ID)
		}
	case "d":
		return m, m.deleteSelected()
	case keys.Up, "k":
		m.list.MoveUp()
	case keys.Down, "j":
		m.list.MoveDown()
	case keys.Home, "g":
		m.list.GotoTop()
	case keys.End, "G":
		m.list.GotoBottom()
	case keys.PgUp:
		m.list.PageUp()
	case keys.PgDown:
		m.list.PageDown()
	}
	return m, nil
}

// handleFormKey routes a key press while a form is on screen
func (m *Model) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Escape:
		m.closeForms()
		return nil
	case keys.Enter:
		return m.submitFocusedForm()
	case keys.CtrlN:
		m.switchAuthForm()
		return nil
	}

	cmd := m.updateFocusedForm(msg)
	if m.focusedFormCompleted() {
		return tea.Batch(cmd, m.submitFocusedForm())
	}
	return cmd
}

// toggleLoginForms shows or hides the login and signup forms together
func (m *Model) toggleLoginForms() tea.Cmd {
	if m.user != nil {
		return m.ShowFlashInfo("Already logged in as " + m.user.Username)
	}
	m.views.ToggleLoginForms()
	if m.views.IsVisible(view.PanelLoginForm) {
		m.formFocus = view.PanelLoginForm
		m.login.Prefill(m.config.GetLastUsername())
	}
	m.renderActive()
	return nil
}

// toggleSubmitForm shows or hides the submit form
func (m *Model) toggleSubmitForm() tea.Cmd {
	if m.user == nil {
		return m.ShowFlashWarning("Log in to submit a story")
	}
	m.views.ToggleSubmitForm()
	if m.views.IsVisible(view.PanelSubmitForm) {
		m.formFocus = view.PanelSubmitForm
	}
	return nil
}

// switchAuthForm moves focus between the login and signup forms
func (m *Model) switchAuthForm() {
	switch m.formFocus {
	case view.PanelLoginForm:
		if m.views.IsVisible(view.PanelSignupForm) {
			m.formFocus = view.PanelSignupForm
		}
	case view.PanelSignupForm:
		if m.views.IsVisible(view.PanelLoginForm) {
			m.formFocus = view.PanelLoginForm
		}
	}
}

// closeForms hides every form and falls back to all stories when nothing
// else is showing.
func (m *Model) closeForms() {
	m.views.HideForms()
	if m.views.Active() == view.PanelNone {
		m.views.Navigate(view.PanelAllStories)
		m.renderActive()
	}
}

func (m *Model) updateFocusedForm(msg tea.Msg) tea.Cmd {
	switch m.formFocus {
	case view.PanelLoginForm:
		return m.login.Update(msg)
	case view.PanelSignupForm:
		return m.signup.Update(msg)
	case view.PanelSubmitForm:
		return m.submit.Update(msg)
	}
	return nil
}

func (m *Model) focusedFormCompleted() bool {
	switch m.formFocus {
	case view.PanelLoginForm:
		return m.login.Completed()
	case view.PanelSignupForm:
		return m.signup.Completed()
	case view.PanelSubmitForm:
		return m.submit.Completed()
	}
	return false
}

// submitFocusedForm sends the focused form's values to its handler
func (m *Model) submitFocusedForm() tea.Cmd {
	if !m.views.IsVisible(m.formFocus) {
		return nil
	}
	switch m.formFocus {
	case view.PanelLoginForm:
		return m.onLogin(m.login.Values())
	case view.PanelSignupForm:
		return m.onSignup(m.signup.Values())
	case view.PanelSubmitForm:
		return m.onSubmitStory(m.submit.Values())
	}
	return nil
}

// deleteSelected deletes the selected story from the my-stories panel
func (m *Model) deleteSelected() tea.Cmd {
	if m.views.Active() != view.PanelOwnStories {
		return nil
	}
	it, ok := m.selected()
	if !ok || !it.Deletable {
		return nil
	}
	return m.onDeleteOwnStory(it.ID)
}

// toggleNotifications flips desktop notifications for submitted stories
func (m *Model) toggleNotifications() tea.Cmd {
	enabled := !m.config.GetNotificationsEnabled()
	m.config.SetNotificationsEnabled(enabled)
	if cmd := m.saveConfigOrFlash(); cmd != nil {
		return cmd
	}
	if enabled {
		return m.ShowFlashInfo("Notifications on")
	}
	return m.ShowFlashInfo("Notifications off")
}

// cycleTheme switches to the next color theme and remembers it
func (m *Model) cycleTheme() tea.Cmd {
	next := ui.NextTheme()
	ui.SetTheme(next)
	m.config.SetTheme(string(next))
	if cmd := m.saveConfigOrFlash(); cmd != nil {
		return cmd
	}
	return m.ShowFlashInfo("Theme: " + ui.CurrentTheme().Name)
}
