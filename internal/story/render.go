package story

import (
	"fmt"

	"github.com/zhubert/snooze/internal/news"
)

// StarState is the favorite affordance shown next to a story
type StarState int

const (
	StarOutline StarState = iota
	StarFilled
)

// Glyph returns the terminal glyph for the star
func (s StarState) Glyph() string {
	if s == StarFilled {
		return "★"
	}
	return "☆"
}

// Item is the renderable form of a story
type Item struct {
	ID        string
	Title     string
	URL       string
	Host      string
	Author    string
	PostedBy  string
	Star      StarState
	Deletable bool
}

// Render maps a story to an Item. Only the poster's own stories carry the
// delete affordance.
func Render(s news.Story, isOwn, isFavorite bool) Item {
	star := StarOutline
	if isFavorite {
		star = StarFilled
	}
	return Item{
		ID:        s.ID,
		Title:     s.Title,
		URL:       s.URL,
		Host:      HostName(s.URL),
		Author:    s.Author,
		PostedBy:  s.Username,
		Star:      star,
		Deletable: isOwn,
	}
}

// RenderAll renders stories in order against idx
func RenderAll(stories []news.Story, idx Index, own bool) []Item {
	items := make([]Item, 0, len(stories))
	for _, s := range stories {
		items = append(items, Render(s, own, idx.IsFavorite(s.ID)))
	}
	return items
}

// PlainLine is a single-line text form of an item, used outside the TUI.
func PlainLine(it Item) string {
	return fmt.Sprintf("%s %s (%s) by %s | posted by %s | %s", it.Star.Glyph(), it.Title, it.Host, it.Author, it.PostedBy, it.ID)
}
