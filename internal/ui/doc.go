// Package ui provides the terminal components for the snooze TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line): app name and login indicator       │
//	├─────────────────────────────────────────────────────┤
//	│ Navbar (1 line): all | favorites | mine | profile   │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│   Forms (login/signup side by side, or submit)      │
//	│   Story list or profile                             │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line): key bindings or a flash message    │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// Header shows the logged-in username, which is the navigation indicator for
// an authenticated session.
//
// Navbar highlights the active primary panel. Panels that need a session are
// dimmed while logged out.
//
// StoryList is a scrollable list of story.Item values with a cursor. It is a
// pure projection: favorite and ownership markers come from the items it is
// given, never from its own state.
//
// LoginForm, SignupForm and SubmitForm wrap huh forms. The app layer handles
// Enter and Escape; everything else goes to the form.
//
// Footer shows context-aware key bindings, replaced by a flash message for a
// few seconds after an action succeeds or fails.
//
// # Themes
//
// Colors come from the active Theme. SetTheme rebuilds every exported style,
// so components read the style variables at render time instead of caching
// them.
package ui
