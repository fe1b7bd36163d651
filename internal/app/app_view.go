package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/snooze/internal/ui"
	"github.com/zhubert/snooze/internal/view"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string. Tests use it to
// inspect the screen.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.updateFooterContext()

	header := m.header.View()
	navbar := m.navbar.View()
	footer := m.footer.View()

	forms := m.renderForms()
	bodyHeight := m.height - ui.HeaderHeight - ui.NavbarHeight - ui.FooterHeight
	if forms != "" {
		bodyHeight -= lipgloss.Height(forms)
	}
	content := m.renderContent(max(bodyHeight, 0))

	parts := []string{header, navbar}
	if forms != "" {
		parts = append(parts, forms)
	}
	parts = append(parts, lipgloss.NewStyle().Height(max(bodyHeight, 0)).MaxHeight(max(bodyHeight, 0)).Render(content), footer)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderForms renders the visible forms: login and signup side by side,
// the submit form on its own.
func (m *Model) renderForms() string {
	var rows []string

	var auth []string
	if m.views.IsVisible(view.PanelLoginForm) {
		auth = append(auth, m.login.View(m.formFocus == view.PanelLoginForm))
	}
	if m.views.IsVisible(view.PanelSignupForm) {
		auth = append(auth, m.signup.View(m.formFocus == view.PanelSignupForm))
	}
	if len(auth) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, auth...))
	}
	if m.views.IsVisible(view.PanelSubmitForm) {
		rows = append(rows, m.submit.View(m.formFocus == view.PanelSubmitForm))
	}

	if len(rows) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderContent renders the active primary panel
func (m *Model) renderContent(height int) string {
	if !m.loaded && m.InFlight(opStories) {
		return ui.StatusLoadingStyle.Render(m.spinner.View() + " Loading stories…")
	}

	switch m.views.Active() {
	case view.PanelAllStories, view.PanelFavorites, view.PanelOwnStories:
		m.list.SetSize(m.width, height)
		return m.list.View()
	case view.PanelUserProfile:
		return ui.RenderProfile(m.user)
	}

	if m.views.FormVisible() {
		return ""
	}
	return ui.EmptyListStyle.Render("Nothing to show. Press a for all stories or l to log in.")
}

// updateFooterContext updates the header, navbar and footer for the current state
func (m *Model) updateFooterContext() {
	loggedIn := m.user != nil
	m.navbar.SetActive(m.views.Active())
	m.navbar.SetLoggedIn(loggedIn)
	m.footer.SetContext(loggedIn, m.views.FormVisible(), m.views.Active())
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.navbar.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.list.SetSize(m.width, max(m.height-ui.HeaderHeight-ui.NavbarHeight-ui.FooterHeight, 0))
}
