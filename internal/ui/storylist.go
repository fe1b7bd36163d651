package ui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/snooze/internal/story"
)

// StoryList is a scrollable list of rendered stories with a cursor
type StoryList struct {
	title     string
	emptyText string
	items     []story.Item
	cursor    int
	offset    int // first visible item
	width     int
	height    int
	viewport  viewport.Model
}

// NewStoryList creates an empty list
func NewStoryList(title, emptyText string) *StoryList {
	return &StoryList{
		title:     title,
		emptyText: emptyText,
		viewport:  viewport.New(),
	}
}

// SetSize sets the list dimensions, including the title line
func (l *StoryList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.viewport.SetWidth(width)
	l.viewport.SetHeight(max(height-1, 0))
	l.ensureVisible()
}

// SetTitle sets the list title
func (l *StoryList) SetTitle(title string) {
	l.title = title
}

// SetItems replaces the items. The cursor stays on the same story when it is
// still present.
func (l *StoryList) SetItems(items []story.Item) {
	selectedID := ""
	if it, ok := l.Selected(); ok {
		selectedID = it.ID
	}

	l.items = items
	l.cursor = 0
	for i, it := range items {
		if it.ID == selectedID {
			l.cursor = i
			break
		}
	}
	l.ensureVisible()
}

// Prepend adds an item at the head of the list and selects it
func (l *StoryList) Prepend(it story.Item) {
	l.items = append([]story.Item{it}, l.items...)
	l.cursor = 0
	l.offset = 0
}

// Items returns the items in display order
func (l *StoryList) Items() []story.Item {
	return l.items
}

// Len returns the number of items
func (l *StoryList) Len() int {
	return len(l.items)
}

// Cursor returns the selected index
func (l *StoryList) Cursor() int {
	return l.cursor
}

// Selected returns the item under the cursor
func (l *StoryList) Selected() (story.Item, bool) {
	if l.cursor >= 0 && l.cursor < len(l.items) {
		return l.items[l.cursor], true
	}
	return story.Item{}, false
}

// MoveUp moves the cursor up
func (l *StoryList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.ensureVisible()
	}
}

// MoveDown moves the cursor down
func (l *StoryList) MoveDown() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
		l.ensureVisible()
	}
}

// GotoTop selects the first item
func (l *StoryList) GotoTop() {
	l.cursor = 0
	l.ensureVisible()
}

// GotoBottom selects the last item
func (l *StoryList) GotoBottom() {
	l.cursor = max(len(l.items)-1, 0)
	l.ensureVisible()
}

// PageDown moves the cursor down by a page
func (l *StoryList) PageDown() {
	l.cursor = min(l.cursor+l.pageSize(), max(len(l.items)-1, 0))
	l.ensureVisible()
}

// PageUp moves the cursor up by a page
func (l *StoryList) PageUp() {
	l.cursor = max(l.cursor-l.pageSize(), 0)
	l.ensureVisible()
}

func (l *StoryList) pageSize() int {
	return max(l.viewport.Height()/StoryItemHeight, 1)
}

func (l *StoryList) ensureVisible() {
	if l.cursor >= len(l.items) {
		l.cursor = max(len(l.items)-1, 0)
	}
	page := l.pageSize()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+page {
		l.offset = l.cursor - page + 1
	}
}

// View renders the list
func (l *StoryList) View() string {
	title := PanelTitleStyle.Render(l.title)
	if len(l.items) == 0 {
		return title + "\n" + EmptyListStyle.Render(l.emptyText)
	}

	width := l.width
	if width <= 0 {
		width = DefaultWrapWidth
	}

	lines := make([]string, 0, len(l.items)*StoryItemHeight)
	for i, it := range l.items {
		lines = append(lines, renderStoryItem(it, i == l.cursor, width)...)
	}

	l.viewport.SetContent(strings.Join(lines, "\n"))
	l.viewport.SetYOffset(l.offset * StoryItemHeight)
	return title + "\n" + l.viewport.View()
}

// renderStoryItem renders an item as StoryItemHeight lines. The delete marker
// only appears on deletable items.
func renderStoryItem(it story.Item, selected bool, width int) []string {
	inner := max(width-3, 10) // selection border and padding

	var prefix strings.Builder
	prefixWidth := 0
	if it.Deletable {
		prefix.WriteString(StoryDeleteStyle.Render("✕") + " ")
		prefixWidth += 2
	}
	if it.Star == story.StarFilled {
		prefix.WriteString(StoryStarStyle.Render(it.Star.Glyph()))
	} else {
		prefix.WriteString(StoryStarOutlineStyle.Render(it.Star.Glyph()))
	}
	prefix.WriteString(" ")
	prefixWidth += runewidth.StringWidth(it.Star.Glyph()) + 1

	host := ""
	if h := sanitize(it.Host); h != "" {
		host = " (" + h + ")"
	}
	titleWidth := max(inner-prefixWidth-runewidth.StringWidth(host), 1)
	title := runewidth.Truncate(sanitize(it.Title), titleWidth, "…")

	first := prefix.String() + StoryTitleStyle.Render(title) + StoryHostStyle.Render(host)

	meta := "by " + sanitize(it.Author)
	if it.PostedBy != "" {
		meta += " · posted by " + sanitize(it.PostedBy)
	}
	second := strings.Repeat(" ", prefixWidth) + StoryMetaStyle.Render(runewidth.Truncate(meta, max(inner-prefixWidth, 1), "…"))

	style := StoryUnselectedStyle
	if selected {
		style = StorySelectedStyle
	}
	return []string{style.Render(first), style.Render(second)}
}

// sanitize strips terminal control sequences and line breaks from text that
// came from other users.
func sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(s)
	return strings.TrimSpace(s)
}
