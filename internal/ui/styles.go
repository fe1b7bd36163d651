package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, set from the current theme
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorMuted       color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorStar        color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Header styles
var (
	HeaderStyle     lipgloss.Style
	HeaderUserStyle lipgloss.Style
)

// Navbar styles
var (
	NavItemStyle   lipgloss.Style
	NavActiveStyle lipgloss.Style
	NavLockedStyle lipgloss.Style
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Flash message styles
var (
	FlashErrorStyle   lipgloss.Style
	FlashWarningStyle lipgloss.Style
	FlashInfoStyle    lipgloss.Style
	FlashSuccessStyle lipgloss.Style
)

// Story list styles
var (
	StoryTitleStyle       lipgloss.Style
	StoryHostStyle        lipgloss.Style
	StoryMetaStyle        lipgloss.Style
	StoryStarStyle        lipgloss.Style
	StoryStarOutlineStyle lipgloss.Style
	StoryDeleteStyle      lipgloss.Style
	StorySelectedStyle    lipgloss.Style
	StoryUnselectedStyle  lipgloss.Style
	EmptyListStyle        lipgloss.Style
)

// Panel styles
var (
	PanelTitleStyle       lipgloss.Style
	FormPanelStyle        lipgloss.Style
	FormPanelFocusedStyle lipgloss.Style
	ProfileLabelStyle     lipgloss.Style
	ProfileValueStyle     lipgloss.Style
	StatusLoadingStyle    lipgloss.Style
)

func init() {
	regenerateStyles()
}

// buildStyles rebuilds every style from the color variables
func buildStyles() {
	// Header styles
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderUserStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	// Navbar styles
	NavItemStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	NavActiveStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	NavLockedStyle = lipgloss.NewStyle().
		Foreground(ColorBorder).
		Padding(0, 1)

	// Footer styles
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	// Flash message styles
	FlashErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	FlashWarningStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	FlashInfoStyle = lipgloss.NewStyle().
		Foreground(ColorInfo)

	FlashSuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	// Story list styles
	StoryTitleStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	StoryHostStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	StoryMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	StoryStarStyle = lipgloss.NewStyle().
		Foreground(ColorStar)

	StoryStarOutlineStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	StoryDeleteStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	StorySelectedStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)

	StoryUnselectedStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	EmptyListStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		Padding(1, 2)

	// Panel styles
	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	FormPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Width(FormWidth)

	FormPanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1).
		Width(FormWidth)

	ProfileLabelStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Width(14)

	ProfileValueStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)
}
