package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/snooze/internal/view"
)

// DefaultFlashDuration is how long a flash message stays visible
const DefaultFlashDuration = 4 * time.Second

// FlashType is the severity of a flash message
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// FlashMessage is a temporary message shown in place of the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg is sent periodically so expired flashes get cleared
type FlashTickMsg time.Time

// FlashTick returns a command that sends a FlashTickMsg after a second
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom bar with key bindings
type Footer struct {
	width        int
	loggedIn     bool
	formOpen     bool
	panel        view.Panel
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(loggedIn, formOpen bool, panel view.Panel) {
	f.loggedIn = loggedIn
	f.formOpen = formOpen
	f.panel = panel
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for d
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes any flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is set
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// Flash returns the current flash message, or nil
func (f *Footer) Flash() *FlashMessage {
	return f.flashMessage
}

// ClearIfExpired clears an expired flash and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the key bindings for the current context
func (f *Footer) Bindings() []KeyBinding {
	if f.formOpen {
		return []KeyBinding{
			{Key: "tab", Desc: "next field"},
			{Key: "enter", Desc: "submit"},
			{Key: "ctrl+n", Desc: "login/signup"},
			{Key: "esc", Desc: "close"},
		}
	}

	bindings := []KeyBinding{
		{Key: "j/k", Desc: "move"},
	}
	if f.loggedIn {
		bindings = append(bindings, KeyBinding{Key: "space", Desc: "favorite"})
		if f.panel == view.PanelOwnStories {
			bindings = append(bindings, KeyBinding{Key: "d", Desc: "delete"})
		}
		bindings = append(bindings,
			KeyBinding{Key: "s", Desc: "submit"},
			KeyBinding{Key: "x", Desc: "logout"},
		)
	} else {
		bindings = append(bindings, KeyBinding{Key: "l", Desc: "login"})
	}
	return append(bindings,
		KeyBinding{Key: "y", Desc: "copy link"},
		KeyBinding{Key: "r", Desc: "refresh"},
		KeyBinding{Key: "q", Desc: "quit"},
	)
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var icon string
	var style lipgloss.Style
	switch f.flashMessage.Type {
	case FlashError:
		icon, style = "✕", FlashErrorStyle
	case FlashWarning:
		icon, style = "⚠", FlashWarningStyle
	case FlashInfo:
		icon, style = "ℹ", FlashInfoStyle
	default:
		icon, style = "✓", FlashSuccessStyle
	}
	return style.Render(icon + " " + f.flashMessage.Text)
}
