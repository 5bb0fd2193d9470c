// ABOUTME: Team detail screen showing the positioned roster and owner
// ABOUTME: Edit and delete actions only surface for owners and admins

package teamview

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pokebuild/teambuilder/internal/client"
	"github.com/pokebuild/teambuilder/internal/tui/icons"
	"github.com/pokebuild/teambuilder/internal/tui/styles"
	"github.com/pokebuild/teambuilder/internal/tui/widgets"
)

// EditRequestedMsg is sent when the user asks to edit the team.
type EditRequestedMsg struct {
	Team   client.Team
	Roster []client.RosterMember
}

// DeleteRequestedMsg is sent when the user asks to delete the team.
type DeleteRequestedMsg struct {
	Team client.Team
}

// CancelledMsg is sent when the user backs out of the view.
type CancelledMsg struct{}

var (
	posStyle    = lipgloss.NewStyle().Foreground(styles.Muted)
	nameStyle   = lipgloss.NewStyle().Foreground(styles.Text).Bold(true)
	nickStyle   = lipgloss.NewStyle().Foreground(styles.Accent)
	spriteStyle = lipgloss.NewStyle().Foreground(styles.Info)
	helpStyle   = lipgloss.NewStyle().Foreground(styles.Muted)
)

// TeamView is the team detail model.
type TeamView struct {
	team      client.Team
	owner     *client.User
	roster    []client.RosterMember
	canModify bool
	isOwn     bool
	width     int
}

// New creates a team detail view. The roster is displayed in position order
// regardless of response order. canModify gates the edit and delete actions;
// isOwn adds the ownership badge.
func New(team client.Team, owner *client.User, roster []client.RosterMember, canModify, isOwn bool) *TeamView {
	sorted := append([]client.RosterMember(nil), roster...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return &TeamView{
		team:      team,
		owner:     owner,
		roster:    sorted,
		canModify: canModify,
		isOwn:     isOwn,
	}
}

// Init implements tea.Model
func (tv *TeamView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (tv *TeamView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		tv.width = msg.Width
		return tv, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			if tv.canModify {
				team, roster := tv.team, tv.roster
				return tv, func() tea.Msg { return EditRequestedMsg{Team: team, Roster: roster} }
			}
		case "d":
			if tv.canModify {
				team := tv.team
				return tv, func() tea.Msg { return DeleteRequestedMsg{Team: team} }
			}
		case "esc", "b":
			return tv, func() tea.Msg { return CancelledMsg{} }
		}
	}

	return tv, nil
}

// View implements tea.Model
func (tv *TeamView) View() string {
	var b strings.Builder

	title := icons.Team.String() + " " + tv.team.TeamName
	b.WriteString(styles.Title.Render(title))
	if tv.isOwn {
		b.WriteString(" " + widgets.OwnerBadge())
	}
	b.WriteString("\n")

	if tv.owner != nil {
		owner := fmt.Sprintf("%s %s", icons.User.String(), tv.owner.Username)
		b.WriteString(styles.Subtitle.Render(owner))
		if tv.owner.IsAdmin {
			b.WriteString(" " + widgets.AdminBadge())
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(tv.roster) == 0 {
		b.WriteString(helpStyle.Render("This team has no Pokemon yet."))
		b.WriteString("\n")
	}

	for _, m := range tv.roster {
		line := fmt.Sprintf("%s %s",
			posStyle.Render(fmt.Sprintf("%d.", m.Position)),
			nameStyle.Render(titleCase(m.PokemonName)))
		if m.Nickname != "" {
			line += " " + nickStyle.Render(fmt.Sprintf("%q", m.Nickname))
		}
		line += "  " + spriteStyle.Render(client.SpriteURL(m.PokemonID))
		b.WriteString(line + "\n")
	}

	if tv.canModify {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%s e edit  %s d delete",
			icons.Edit.String(), icons.Delete.String())))
		b.WriteString("\n")
	}

	return b.String()
}

func titleCase(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
