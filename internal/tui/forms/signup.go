// ABOUTME: Signup form as a bubbletea model embedding a huh form
// ABOUTME: Enforces the full registration rules before submission

package forms

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pokebuild/teambuilder/internal/validate"
)

// SignupSubmittedMsg is sent when the signup form completes.
type SignupSubmittedMsg struct {
	Username string
	Email    string
	Password string
}

// Signup is the registration form model.
type Signup struct {
	form     *huh.Form
	username string
	email    string
	password string
	confirm  string
	done     bool
}

// NewSignup creates the signup form.
func NewSignup() *Signup {
	s := &Signup{}
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Description("3 to 30 characters").
				CharLimit(30).
				Value(&s.username).
				Validate(func(v string) error {
					return validate.Check(validate.RegisterInput{
						Username: v, Password: "placeholder", ConfirmPassword: "placeholder", Email: "placeholder@example.com",
					})
				}),
			huh.NewInput().
				Title("Email").
				CharLimit(128).
				Value(&s.email).
				Validate(func(v string) error {
					return validate.Check(validate.RegisterInput{
						Username: "placeholder", Password: "placeholder", ConfirmPassword: "placeholder", Email: v,
					})
				}),
			huh.NewInput().
				Title("Password").
				Description("at least 6 characters").
				EchoMode(huh.EchoModePassword).
				CharLimit(64).
				Value(&s.password).
				Validate(func(v string) error {
					return validate.Check(validate.RegisterInput{
						Username: "placeholder", Password: v, ConfirmPassword: v, Email: "placeholder@example.com",
					})
				}),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				CharLimit(64).
				Value(&s.confirm).
				Validate(func(v string) error {
					if v != s.password {
						return validate.Errors{"passwords do not match"}
					}
					return nil
				}),
		).Title("Sign up"),
	).WithTheme(Theme())
	return s
}

// Init implements tea.Model
func (s *Signup) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *Signup) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return s, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted && !s.done {
		s.done = true
		username, email, password := s.username, s.email, s.password
		return s, func() tea.Msg {
			return SignupSubmittedMsg{Username: username, Email: email, Password: password}
		}
	}

	return s, cmd
}

// View implements tea.Model
func (s *Signup) View() string {
	return s.form.View()
}
