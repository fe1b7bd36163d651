// Package view tracks which content panels of the client are visible.
//
// Navigation always goes through HideAll followed by Show, so after a
// navigation exactly one primary panel is on screen. The two toggles are the
// exceptions: ToggleLoginForms flips the login form, the signup form and the
// story list together so the two forms can be compared side by side, and
// ToggleSubmitForm slides the submit form in above whatever is showing.
package view

// Panel names a top-level region of the screen
type Panel int

const (
	PanelNone Panel = iota
	PanelAllStories
	PanelFavorites
	PanelOwnStories
	PanelUserProfile
	PanelFilteredStories
	PanelSubmitForm
	PanelLoginForm
	PanelSignupForm
)

// allPanels is every panel HideAll touches, in display order
var allPanels = []Panel{
	PanelSubmitForm,
	PanelLoginForm,
	PanelSignupForm,
	PanelAllStories,
	PanelFilteredStories,
	PanelFavorites,
	PanelOwnStories,
	PanelUserProfile,
}

// PrimaryPanels are the navigation targets of which at most one is visible
// after a navigation.
var PrimaryPanels = []Panel{
	PanelAllStories,
	PanelFavorites,
	PanelOwnStories,
	PanelUserProfile,
}

// String returns a human-readable panel name
func (p Panel) String() string {
	switch p {
	case PanelAllStories:
		return "all stories"
	case PanelFavorites:
		return "favorites"
	case PanelOwnStories:
		return "my stories"
	case PanelUserProfile:
		return "profile"
	case PanelFilteredStories:
		return "filtered"
	case PanelSubmitForm:
		return "submit"
	case PanelLoginForm:
		return "login"
	case PanelSignupForm:
		return "signup"
	default:
		return "none"
	}
}

// RequiresAuth reports whether the panel only has content for a logged-in user
func (p Panel) RequiresAuth() bool {
	switch p {
	case PanelFavorites, PanelOwnStories, PanelUserProfile, PanelSubmitForm:
		return true
	}
	return false
}

// State holds panel visibility. Create one with New.
type State struct {
	visible map[Panel]bool
}

// New returns a State with every panel hidden
func New() *State {
	return &State{visible: make(map[Panel]bool)}
}

// HideAll marks every panel as hidden
func (s *State) HideAll() {
	for _, p := range allPanels {
		s.visible[p] = false
	}
}

// Show marks p as visible. PanelNone is ignored.
func (s *State) Show(p Panel) {
	if p == PanelNone {
		return
	}
	s.visible[p] = true
}

// Hide marks p as hidden
func (s *State) Hide(p Panel) {
	s.visible[p] = false
}

// Navigate performs the hide-then-show navigation protocol
func (s *State) Navigate(p Panel) {
	s.HideAll()
	s.Show(p)
}

// IsVisible reports whether p is visible
func (s *State) IsVisible(p Panel) bool {
	return s.visible[p]
}

// Visible returns the visible panels in display order
func (s *State) Visible() []Panel {
	var out []Panel
	for _, p := range allPanels {
		if s.visible[p] {
			out = append(out, p)
		}
	}
	return out
}

// Active returns the visible primary panel, or PanelNone. If a toggle left
// more than one primary panel visible the first in PrimaryPanels order wins.
func (s *State) Active() Panel {
	for _, p := range PrimaryPanels {
		if s.visible[p] {
			return p
		}
	}
	return PanelNone
}

// ToggleLoginForms flips the login form, signup form and all-stories list.
// It deliberately bypasses HideAll.
func (s *State) ToggleLoginForms() {
	s.toggle(PanelLoginForm)
	s.toggle(PanelSignupForm)
	s.toggle(PanelAllStories)
}

// ToggleSubmitForm flips the submit form only
func (s *State) ToggleSubmitForm() {
	s.toggle(PanelSubmitForm)
}

// HideForms hides the login, signup and submit forms
func (s *State) HideForms() {
	s.visible[PanelLoginForm] = false
	s.visible[PanelSignupForm] = false
	s.visible[PanelSubmitForm] = false
}

// FormVisible reports whether any input form is on screen
func (s *State) FormVisible() bool {
	return s.visible[PanelLoginForm] || s.visible[PanelSignupForm] || s.visible[PanelSubmitForm]
}

func (s *State) toggle(p Panel) {
	s.visible[p] = !s.visible[p]
}
