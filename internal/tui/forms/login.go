// ABOUTME: Login form as a bubbletea model embedding a huh form
// ABOUTME: Validates input locally before the credentials leave the terminal

package forms

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// LoginSubmittedMsg is sent when the login form completes.
type LoginSubmittedMsg struct {
	Username string
	Password string
}

// CancelledMsg is sent when a form is dismissed with esc.
type CancelledMsg struct{}

// Login is the login form model.
type Login struct {
	form     *huh.Form
	username string
	password string
	done     bool
}

// NewLogin creates the login form.
func NewLogin() *Login {
	l := &Login{}
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				CharLimit(64).
				Value(&l.username).
				Validate(requiredField("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(64).
				Value(&l.password).
				Validate(requiredField("password")),
		).Title("Log in"),
	).WithTheme(Theme())
	return l
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return l, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted && !l.done {
		l.done = true
		username, password := l.username, l.password
		return l, func() tea.Msg {
			return LoginSubmittedMsg{Username: username, Password: password}
		}
	}

	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	return l.form.View()
}

// requiredField rejects blank values with the same wording the full-form
// validation uses.
func requiredField(name string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
