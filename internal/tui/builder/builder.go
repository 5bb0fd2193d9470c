// ABOUTME: Team builder screen pairing catalog browsing with slot selection
// ABOUTME: Handles both creating a new team and editing an existing roster

package builder

import (
	"errors"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pokebuild/teambuilder/internal/client"
	"github.com/pokebuild/teambuilder/internal/list"
	"github.com/pokebuild/teambuilder/internal/team"
	"github.com/pokebuild/teambuilder/internal/tui/forms"
	"github.com/pokebuild/teambuilder/internal/tui/listview"
	"github.com/pokebuild/teambuilder/internal/tui/styles"
	"github.com/pokebuild/teambuilder/internal/tui/widgets"
	"github.com/pokebuild/teambuilder/internal/validate"
)

// SubmitMsg is sent when the builder is ready to save. TeamID is zero when
// creating a new team. Refs are in selection order.
type SubmitMsg struct {
	TeamID int
	Name   string
	Refs   []client.PokemonRef
}

// CancelledMsg is sent when the user backs out of the builder.
type CancelledMsg struct{}

// mode represents the builder's input focus
type mode int

const (
	modePicking mode = iota
	modeNaming
)

var (
	alertStyle = lipgloss.NewStyle().Foreground(styles.Danger).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(styles.Muted)
)

// Builder is the team builder model.
type Builder struct {
	list   *listview.ListView
	sel    *team.Selection
	form   *huh.Form
	mode   mode
	teamID int
	name   string
	alert  string
	saving bool
	width  int
	height int
}

// New creates a builder for a new team.
func New() *Builder {
	b := &Builder{
		sel:  team.NewSelection(),
		list: listview.New(list.KindNewTeam, "New team"),
	}
	b.list.SetSelectable(b.sel.Contains)
	return b
}

// NewEdit creates a builder pre-seeded with an existing team's roster. The
// roster is replayed in position order so the current slots are preserved.
func NewEdit(t client.Team, roster []client.RosterMember) *Builder {
	b := &Builder{
		sel:    team.NewSelection(),
		list:   listview.New(list.KindNewTeam, "Edit team: "+t.TeamName),
		teamID: t.TeamID,
		name:   t.TeamName,
	}
	b.list.SetSelectable(b.sel.Contains)

	sorted := append([]client.RosterMember(nil), roster...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	for _, m := range sorted {
		_ = b.sel.Toggle(client.PokemonRef{
			PokemonID:   m.PokemonID,
			PokemonName: m.PokemonName,
			Nickname:    m.Nickname,
		})
	}
	return b
}

// List exposes the embedded list view so the root model can feed it rows.
func (b *Builder) List() *listview.ListView {
	return b.list
}

// Editing reports whether the builder modifies an existing team.
func (b *Builder) Editing() bool {
	return b.teamID != 0
}

// Init implements tea.Model
func (b *Builder) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (b *Builder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		model, cmd := b.list.Update(msg)
		b.list = model.(*listview.ListView)
		return b, cmd

	case listview.RowToggledMsg:
		b.toggle(msg.Row)
		return b, nil

	case listview.CancelledMsg:
		return b, func() tea.Msg { return CancelledMsg{} }

	case tea.KeyMsg:
		if b.mode == modeNaming {
			return b.updateNaming(msg)
		}
		return b.updatePicking(msg)
	}

	if b.mode == modeNaming && b.form != nil {
		return b.updateNaming(msg)
	}
	model, cmd := b.list.Update(msg)
	b.list = model.(*listview.ListView)
	return b, cmd
}

func (b *Builder) updatePicking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "n" {
		if b.sel.Len() == 0 {
			b.alert = capitalize(team.ErrEmptySelection.Error())
			return b, nil
		}
		b.alert = ""
		b.mode = modeNaming
		b.form = b.nameForm()
		return b, b.form.Init()
	}

	model, cmd := b.list.Update(msg)
	b.list = model.(*listview.ListView)
	return b, cmd
}

func (b *Builder) updateNaming(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		b.mode = modePicking
		b.form = nil
		return b, nil
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	if b.form.State == huh.StateCompleted && !b.saving {
		b.saving = true
		teamID, name, refs := b.teamID, b.name, b.sel.Refs()
		return b, func() tea.Msg {
			return SubmitMsg{TeamID: teamID, Name: name, Refs: refs}
		}
	}

	return b, cmd
}

// toggle flips a row's membership, surfacing the roster cap as an alert.
func (b *Builder) toggle(row list.Row) {
	err := b.sel.Toggle(client.PokemonRef{PokemonID: row.ID, PokemonName: row.Name})
	if errors.Is(err, team.ErrTeamFull) {
		b.alert = capitalize(err.Error())
		return
	}
	b.alert = ""
}

// SetError surfaces a save failure and returns to the picking state so the
// selection is not lost.
func (b *Builder) SetError(msg string) {
	b.alert = msg
	b.saving = false
	b.mode = modePicking
	b.form = nil
}

func (b *Builder) nameForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Team name").
				CharLimit(50).
				Value(&b.name).
				Validate(func(v string) error {
					return validate.Check(validate.TeamInput{Name: v})
				}),
		).Title("Name your team"),
	).WithTheme(forms.Theme())
}

// View implements tea.Model
func (b *Builder) View() string {
	side := b.viewSide()

	if b.mode == modeNaming && b.form != nil {
		return lipgloss.JoinHorizontal(lipgloss.Top, b.form.View(), "  ", side)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, b.list.View(), "  ", side)
}

func (b *Builder) viewSide() string {
	var sb strings.Builder

	sb.WriteString(widgets.SlotBar(b.sel.Len(), team.MaxSize))
	sb.WriteString("\n\n")

	names := make([]string, 0, b.sel.Len())
	for _, ref := range b.sel.Refs() {
		names = append(names, capitalize(ref.PokemonName))
	}
	sb.WriteString(widgets.SlotLabels(names, team.MaxSize))

	if b.alert != "" {
		sb.WriteString("\n")
		sb.WriteString(alertStyle.Render(b.alert))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("space toggle  n save  / search  esc back"))

	return styles.Panel.Render(sb.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
