package ui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/snooze/internal/view"
)

// navEntry is one tab in the navbar
type navEntry struct {
	key   string
	panel view.Panel
}

var navEntries = []navEntry{
	{"a", view.PanelAllStories},
	{"f", view.PanelFavorites},
	{"m", view.PanelOwnStories},
	{"p", view.PanelUserProfile},
}

// Navbar shows the primary panels with the active one highlighted
type Navbar struct {
	width    int
	active   view.Panel
	loggedIn bool
}

// NewNavbar creates a new navbar
func NewNavbar() *Navbar {
	return &Navbar{}
}

// SetWidth sets the navbar width
func (n *Navbar) SetWidth(width int) {
	n.width = width
}

// SetActive sets the highlighted panel
func (n *Navbar) SetActive(p view.Panel) {
	n.active = p
}

// SetLoggedIn controls whether auth-only panels are dimmed
func (n *Navbar) SetLoggedIn(loggedIn bool) {
	n.loggedIn = loggedIn
}

// View renders the navbar
func (n *Navbar) View() string {
	parts := make([]string, 0, len(navEntries))
	for _, e := range navEntries {
		label := e.key + " " + e.panel.String()
		switch {
		case e.panel == n.active:
			parts = append(parts, NavActiveStyle.Render(label))
		case e.panel.RequiresAuth() && !n.loggedIn:
			parts = append(parts, NavLockedStyle.Render(label))
		default:
			parts = append(parts, NavItemStyle.Render(label))
		}
	}
	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render("│")
	return lipgloss.NewStyle().Width(n.width).Render(strings.Join(parts, sep))
}
