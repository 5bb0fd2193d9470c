// ABOUTME: User profile screen with account details and owned teams
// ABOUTME: Owners and admins can edit the account or delete it

package profile

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pokebuild/teambuilder/internal/client"
	"github.com/pokebuild/teambuilder/internal/tui/forms"
	"github.com/pokebuild/teambuilder/internal/tui/icons"
	"github.com/pokebuild/teambuilder/internal/tui/styles"
	"github.com/pokebuild/teambuilder/internal/tui/widgets"
	"github.com/pokebuild/teambuilder/internal/validate"
)

// TeamChosenMsg is sent when a team is selected from the profile.
type TeamChosenMsg struct {
	TeamID int
}

// SaveRequestedMsg is sent when the profile edit form is submitted.
type SaveRequestedMsg struct {
	Username string
	Patch    client.UserPatch
}

// DeleteRequestedMsg is sent when the user confirms deleting the account.
type DeleteRequestedMsg struct {
	Username string
}

// CancelledMsg is sent when the user backs out of the view.
type CancelledMsg struct{}

// mode represents the profile's input focus
type mode int

const (
	modeViewing mode = iota
	modeEditing
	modeConfirmingDelete
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(styles.Muted)
	valueStyle = lipgloss.NewStyle().Foreground(styles.Text)
	helpStyle  = lipgloss.NewStyle().Foreground(styles.Muted)
	warnStyle  = lipgloss.NewStyle().Foreground(styles.Danger).Bold(true)
)

// Profile is the user profile model.
type Profile struct {
	user      client.User
	teams     []client.Team
	canModify bool

	mode   mode
	form   *huh.Form
	email  string
	bio    string
	saving bool

	cursor int
	width  int
}

// New creates a profile view for a user and their teams. canModify gates the
// edit and delete actions (own profile, or any profile for admins).
func New(user client.User, teams []client.Team, canModify bool) *Profile {
	return &Profile{user: user, teams: teams, canModify: canModify}
}

// Init implements tea.Model
func (p *Profile) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (p *Profile) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case tea.KeyMsg:
		switch p.mode {
		case modeEditing:
			return p.updateEditing(msg)
		case modeConfirmingDelete:
			return p.updateConfirming(msg)
		default:
			return p.updateViewing(msg)
		}
	}

	if p.mode == modeEditing && p.form != nil {
		return p.updateEditing(msg)
	}
	return p, nil
}

func (p *Profile) updateViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.teams)-1 {
			p.cursor++
		}
	case "enter":
		if p.cursor < len(p.teams) {
			id := p.teams[p.cursor].TeamID
			return p, func() tea.Msg { return TeamChosenMsg{TeamID: id} }
		}
	case "e":
		if p.canModify {
			p.mode = modeEditing
			p.email = p.user.Email
			p.bio = p.user.Bio
			p.form = p.editForm()
			return p, p.form.Init()
		}
	case "d":
		if p.canModify {
			p.mode = modeConfirmingDelete
		}
	case "esc", "b":
		return p, func() tea.Msg { return CancelledMsg{} }
	}

	return p, nil
}

func (p *Profile) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		p.mode = modeViewing
		p.form = nil
		return p, nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted && !p.saving {
		p.saving = true
		username := p.user.Username
		patch := client.UserPatch{Email: p.email, Bio: p.bio}
		return p, func() tea.Msg {
			return SaveRequestedMsg{Username: username, Patch: patch}
		}
	}

	return p, cmd
}

func (p *Profile) updateConfirming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		username := p.user.Username
		return p, func() tea.Msg { return DeleteRequestedMsg{Username: username} }
	case "n", "esc":
		p.mode = modeViewing
	}
	return p, nil
}

// SetError returns to the viewing state after a failed save.
func (p *Profile) SetError() {
	p.saving = false
	p.mode = modeViewing
	p.form = nil
}

func (p *Profile) editForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&p.email).
				Validate(func(v string) error {
					return validate.Check(validate.ProfileInput{Email: v})
				}),
			huh.NewInput().
				Title("Bio").
				CharLimit(200).
				Value(&p.bio),
		).Title("Edit profile: "+p.user.Username),
	).WithTheme(forms.Theme())
}

// View implements tea.Model
func (p *Profile) View() string {
	if p.mode == modeEditing && p.form != nil {
		return p.form.View()
	}

	var b strings.Builder

	title := icons.User.String() + " " + p.user.Username
	b.WriteString(styles.Title.Render(title))
	if p.user.IsAdmin {
		b.WriteString(" " + widgets.AdminBadge())
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Email: ") + valueStyle.Render(p.user.Email) + "\n")
	if p.user.Bio != "" {
		b.WriteString(labelStyle.Render("Bio:   ") + valueStyle.Render(p.user.Bio) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s Teams (%d)", icons.Team.String(), len(p.teams))))
	b.WriteString("\n")

	if len(p.teams) == 0 {
		b.WriteString(helpStyle.Render("No teams found!"))
		b.WriteString("\n")
	}

	for i, t := range p.teams {
		cursor := "  "
		style := styles.NormalRow
		if i == p.cursor {
			cursor = "> "
			style = styles.SelectedRow
		}
		b.WriteString(cursor + style.Render(t.TeamName) + "\n")
	}

	if p.mode == modeConfirmingDelete {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("Delete account %q? (y/n)", p.user.Username)))
		b.WriteString("\n")
	} else if p.canModify {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%s e edit  %s d delete account",
			icons.Edit.String(), icons.Delete.String())))
		b.WriteString("\n")
	}

	return b.String()
}
