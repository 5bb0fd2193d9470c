// ABOUTME: Main navigation menu for the TUI
// ABOUTME: Entries are gated by login state and admin status

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pokebuild/teambuilder/internal/tui/icons"
	"github.com/pokebuild/teambuilder/internal/tui/styles"
)

// Item identifies a menu destination.
type Item int

const (
	ItemPokedex Item = iota
	ItemTeams
	ItemMyTeams
	ItemNewTeam
	ItemUsers
	ItemProfile
	ItemLogin
	ItemSignup
	ItemLogout
	ItemQuit
)

// ItemSelectedMsg is sent when the user confirms a menu entry.
type ItemSelectedMsg struct {
	Item Item
}

type entry struct {
	label string
	icon  icons.Icon
	item  Item
}

// Menu is the main navigation menu model.
type Menu struct {
	entries []entry
	cursor  int
	width   int
}

// New builds the menu for the given session state. Mutating destinations only
// appear when logged in; the user directory only appears for admins.
func New(loggedIn, isAdmin bool) *Menu {
	entries := []entry{
		{label: "Pokedex", icon: icons.Pokemon, item: ItemPokedex},
		{label: "All teams", icon: icons.Team, item: ItemTeams},
	}
	if loggedIn {
		entries = append(entries,
			entry{label: "My teams", icon: icons.Team, item: ItemMyTeams},
			entry{label: "New team", icon: icons.Add, item: ItemNewTeam},
		)
		if isAdmin {
			entries = append(entries, entry{label: "Users", icon: icons.User, item: ItemUsers})
		}
		entries = append(entries,
			entry{label: "Profile", icon: icons.User, item: ItemProfile},
			entry{label: "Log out", icon: icons.Logout, item: ItemLogout},
		)
	} else {
		entries = append(entries,
			entry{label: "Log in", icon: icons.Login, item: ItemLogin},
			entry{label: "Sign up", icon: icons.Add, item: ItemSignup},
		)
	}
	entries = append(entries, entry{label: "Quit", icon: icons.Quit, item: ItemQuit})
	return &Menu{entries: entries}
}

// Items returns the selectable items in display order.
func (m *Menu) Items() []Item {
	items := make([]Item, len(m.entries))
	for i, e := range m.entries {
		items[i] = e.item
	}
	return items
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			item := m.entries[m.cursor].item
			return m, func() tea.Msg { return ItemSelectedMsg{Item: item} }
		case "q":
			return m, func() tea.Msg { return ItemSelectedMsg{Item: ItemQuit} }
		}
	}

	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Pokemon Team Builder"))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		cursor := "  "
		style := styles.NormalRow
		if i == m.cursor {
			cursor = "> "
			style = styles.SelectedRow
		}
		b.WriteString(cursor + e.icon.String() + " " + style.Render(e.label) + "\n")
	}

	return b.String()
}
