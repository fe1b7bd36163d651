package ui

import (
	"fmt"
	"strings"

	"github.com/zhubert/snooze/internal/news"
)

// ProfileField is one labelled row of the profile panel
type ProfileField struct {
	Label string
	Value string
}

// ProfileFields returns the rows shown for u
func ProfileFields(u *news.User) []ProfileField {
	if u == nil {
		return nil
	}
	created := "unknown"
	if !u.CreatedAt.IsZero() {
		created = u.CreatedAt.Format("Jan 2, 2006")
	}
	return []ProfileField{
		{"Name", sanitize(u.Name)},
		{"Username", u.Username},
		{"Account since", created},
		{"Favorites", fmt.Sprintf("%d", len(u.Favorites))},
		{"Stories", fmt.Sprintf("%d", len(u.OwnStories))},
	}
}

// RenderProfile renders the user profile panel
func RenderProfile(u *news.User) string {
	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render("User profile"))
	sb.WriteString("\n\n")
	for _, f := range ProfileFields(u) {
		sb.WriteString("  ")
		sb.WriteString(ProfileLabelStyle.Render(f.Label))
		sb.WriteString(ProfileValueStyle.Render(f.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}
