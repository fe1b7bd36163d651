package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

const headerTitle = " snooze"

// Header is the top bar. The right side shows who is logged in.
type Header struct {
	width    int
	username string
	loading  bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetUsername sets the logged-in username; empty means logged out
func (h *Header) SetUsername(username string) {
	h.username = username
}

// Username returns the username shown in the header
func (h *Header) Username() string {
	return h.username
}

// SetLoading marks a request in progress
func (h *Header) SetLoading(loading bool) {
	h.loading = loading
}

// View renders the header
func (h *Header) View() string {
	rightText := "not logged in "
	if h.username != "" {
		rightText = "@" + h.username + " "
	}
	if h.loading {
		rightText = "… " + rightText
	}

	paddingLen := max(h.width-len([]rune(headerTitle))-len([]rune(rightText)), 0)
	content := headerTitle + strings.Repeat(" ", paddingLen) + rightText

	return renderGradient(content, len([]rune(content))-len([]rune(rightText)))
}

// parseHexColor parses "#RRGGBB" into components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content over a background fading from the primary
// color into the app background. Runes from userStart on, the login
// indicator, use the secondary color.
func renderGradient(content string, userStart int) string {
	if content == "" {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < len([]rune(headerTitle)))

		if i >= userStart {
			style = style.Foreground(ColorSecondary)
		} else {
			style = style.Foreground(ColorText)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
