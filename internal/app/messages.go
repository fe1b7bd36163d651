package app

import "github.com/zhubert/snooze/internal/news"

// StartupLoadedMsg carries the restored session and first story list
type StartupLoadedMsg struct {
	SessionFound bool
	User         *news.User // nil when there was no valid stored session
	RestoreErr   error
	Stories      []news.Story
	StoriesErr   error
}

// AuthResultMsg is sent when a login or signup finishes
type AuthResultMsg struct {
	Op   string // opLogin or opSignup
	User *news.User
	Err  error
}

// StoriesFetchedMsg is sent when a story list fetch finishes
type StoriesFetchedMsg struct {
	Stories []news.Story
	Err     error
}

// StoryCreatedMsg is sent when a submitted story has been stored
type StoryCreatedMsg struct {
	Username string // poster, so a result arriving after logout is ignored
	Story    news.Story
	Err      error
}

// FavoriteToggledMsg is sent when a favorite was added or removed
type FavoriteToggledMsg struct {
	Username string
	StoryID  string
	Added    bool
	User     *news.User // updated user from the backend
	Err      error
}

// StoryDeletedMsg is sent when a delete finishes. On success Stories holds
// the re-fetched list unless FetchErr is set.
type StoryDeletedMsg struct {
	Username string
	StoryID  string
	Err      error
	Stories  []news.Story
	FetchErr error
}

// LinkCopiedMsg is sent after a story link was written to the clipboard
type LinkCopiedMsg struct {
	URL string
	Err error
}
