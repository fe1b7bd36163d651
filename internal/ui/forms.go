package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"

	"github.com/zhubert/snooze/internal/keys"
)

// newForm builds and eagerly initializes a single-group form
func newForm(fields ...huh.Field) *huh.Form {
	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(FormWidth - 4)
	form.Init()
	return form
}

// updateForm passes msg to form. Enter and Escape are left to the app layer.
func updateForm(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return form, nil
		}
	}
	m, cmd := form.Update(msg)
	return m.(*huh.Form), cmd
}

func renderForm(title, body string, focused bool) string {
	style := FormPanelStyle
	if focused {
		style = FormPanelFocusedStyle
	}
	return style.Render(PanelTitleStyle.Render(title) + "\n" + body)
}

// LoginForm collects credentials for an existing account
type LoginForm struct {
	form     *huh.Form
	username string
	password string
}

// NewLoginForm creates an empty login form
func NewLoginForm() *LoginForm {
	f := &LoginForm{}
	f.Reset()
	return f
}

// Reset clears the fields and focuses the first one
func (f *LoginForm) Reset() {
	f.username = ""
	f.build()
}

// Prefill resets the form with username already entered
func (f *LoginForm) Prefill(username string) {
	f.username = username
	f.build()
}

func (f *LoginForm) build() {
	f.password = ""
	f.form = newForm(
		huh.NewInput().
			Title("Username").
			CharLimit(FormInputCharLimit).
			Value(&f.username),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			CharLimit(FormInputCharLimit).
			Value(&f.password),
	)
}

// Update forwards a message to the form
func (f *LoginForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.form, cmd = updateForm(f.form, msg)
	return cmd
}

// Completed reports whether the user tabbed past the last field
func (f *LoginForm) Completed() bool {
	return f.form.State == huh.StateCompleted
}

// Values returns the entered credentials
func (f *LoginForm) Values() (username, password string) {
	return strings.TrimSpace(f.username), f.password
}

// View renders the form
func (f *LoginForm) View(focused bool) string {
	return renderForm("Login", f.form.View(), focused)
}

// SignupForm collects the fields for a new account
type SignupForm struct {
	form     *huh.Form
	name     string
	username string
	password string
}

// NewSignupForm creates an empty signup form
func NewSignupForm() *SignupForm {
	f := &SignupForm{}
	f.Reset()
	return f
}

// Reset clears the fields and focuses the first one
func (f *SignupForm) Reset() {
	f.name, f.username, f.password = "", "", ""
	f.form = newForm(
		huh.NewInput().
			Title("Name").
			CharLimit(FormInputCharLimit).
			Value(&f.name),
		huh.NewInput().
			Title("Username").
			CharLimit(FormInputCharLimit).
			Value(&f.username),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			CharLimit(FormInputCharLimit).
			Value(&f.password),
	)
}

// Update forwards a message to the form
func (f *SignupForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.form, cmd = updateForm(f.form, msg)
	return cmd
}

// Completed reports whether the user tabbed past the last field
func (f *SignupForm) Completed() bool {
	return f.form.State == huh.StateCompleted
}

// Values returns the entered account details
func (f *SignupForm) Values() (name, username, password string) {
	return strings.TrimSpace(f.name), strings.TrimSpace(f.username), f.password
}

// View renders the form
func (f *SignupForm) View(focused bool) string {
	return renderForm("Create account", f.form.View(), focused)
}

// SubmitForm collects a new story
type SubmitForm struct {
	form   *huh.Form
	title  string
	author string
	url    string
}

// NewSubmitForm creates an empty submit form
func NewSubmitForm() *SubmitForm {
	f := &SubmitForm{}
	f.Reset()
	return f
}

// Reset clears the fields and focuses the first one
func (f *SubmitForm) Reset() {
	f.title, f.author, f.url = "", "", ""
	f.form = newForm(
		huh.NewInput().
			Title("Title").
			CharLimit(FormInputCharLimit).
			Value(&f.title),
		huh.NewInput().
			Title("Author").
			Placeholder("defaults to you").
			CharLimit(FormInputCharLimit).
			Value(&f.author),
		huh.NewInput().
			Title("URL").
			Placeholder("https://").
			CharLimit(FormURLCharLimit).
			Value(&f.url),
	)
}

// Update forwards a message to the form
func (f *SubmitForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.form, cmd = updateForm(f.form, msg)
	return cmd
}

// Completed reports whether the user tabbed past the last field
func (f *SubmitForm) Completed() bool {
	return f.form.State == huh.StateCompleted
}

// Values returns the entered story fields
func (f *SubmitForm) Values() (title, author, url string) {
	return strings.TrimSpace(f.title), strings.TrimSpace(f.author), strings.TrimSpace(f.url)
}

// View renders the form
func (f *SubmitForm) View(focused bool) string {
	return renderForm("Submit a story", f.form.View(), focused)
}
