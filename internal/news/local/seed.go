package local

import (
	"time"

	"github.com/zhubert/snooze/internal/news"
)

// seedStories are posted by a system account so that nobody can delete them.
func seedStories(now time.Time) []news.Story {
	seed := []news.Story{
		{Title: "The Go Memory Model", Author: "The Go Authors", URL: "https://go.dev/ref/mem"},
		{Title: "Bubble Tea: a TUI framework", Author: "Charm", URL: "https://github.com/charmbracelet/bubbletea"},
		{Title: "What every programmer should know about memory", Author: "Ulrich Drepper", URL: "https://www.akkadia.org/drepper/cpumemory.pdf"},
		{Title: "Things you should never do", Author: "Joel Spolsky", URL: "https://www.joelonsoftware.com/2000/04/06/things-you-should-never-do-part-i/"},
		{Title: "Worse is better", Author: "Richard P. Gabriel", URL: "dreamsongs.com/WorseIsBetter.html"},
	}

	for i := range seed {
		seed[i].ID = "seed-" + string(rune('a'+i))
		seed[i].Username = "snooze"
		seed[i].CreatedAt = now.Add(-time.Duration(i+1) * time.Hour)
	}
	return seed
}
