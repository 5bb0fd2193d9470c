// ABOUTME: Scrollable list view shared by the pokedex, team, and user screens
// ABOUTME: Emits intent messages; the root model owns fetching and state

package listview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pokebuild/teambuilder/internal/list"
	"github.com/pokebuild/teambuilder/internal/tui/icons"
	"github.com/pokebuild/teambuilder/internal/tui/styles"
)

// mode represents the current input mode
type mode int

const (
	modeList mode = iota
	modeSearch
)

// RowChosenMsg is sent when the user confirms a row.
type RowChosenMsg struct {
	Kind list.Kind
	Row  list.Row
}

// RowToggledMsg is sent when the user toggles a row's selection state.
// Only emitted by selectable views.
type RowToggledMsg struct {
	Row list.Row
}

// LoadMoreMsg is sent when the user requests the next page.
type LoadMoreMsg struct {
	Kind list.Kind
}

// SearchMsg is sent when the user submits a search query. A blank query means
// the view should return to its paginated state.
type SearchMsg struct {
	Kind  list.Kind
	Query string
}

// CancelledMsg is sent when the user backs out of the view.
type CancelledMsg struct{}

// Styles
var (
	errorStyle   = lipgloss.NewStyle().Foreground(styles.Danger)
	helpStyle    = lipgloss.NewStyle().Foreground(styles.Muted)
	checkedStyle = lipgloss.NewStyle().Foreground(styles.Secondary)
	idStyle      = lipgloss.NewStyle().Foreground(styles.Muted)
)

// ListView renders rows for one list kind with cursor navigation, search
// input, and an optional selection checkbox column.
type ListView struct {
	kind       list.Kind
	title      string
	rows       []list.Row
	cursor     int
	selectable bool
	selected   func(id int) bool

	searching bool
	loading   bool
	query     string
	mode      mode
	textInput textinput.Model
	spin      spinner.Model
	err       string
	width     int
	height    int
}

// New creates a list view for the given kind.
func New(kind list.Kind, title string) *ListView {
	ti := textinput.New()
	ti.Placeholder = "name..."
	ti.CharLimit = 64
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &ListView{
		kind:      kind,
		title:     title,
		textInput: ti,
		spin:      sp,
	}
}

// SetSelectable enables the checkbox column. The selected func reports
// whether a row id is currently in the selection.
func (lv *ListView) SetSelectable(selected func(id int) bool) {
	lv.selectable = true
	lv.selected = selected
}

// SetRows replaces the displayed rows. searching marks the rows as a search
// snapshot, which hides the load-more entry.
func (lv *ListView) SetRows(rows []list.Row, searching bool) {
	lv.rows = rows
	lv.searching = searching
	lv.loading = false
	if lv.cursor >= lv.itemCount() {
		lv.cursor = 0
	}
}

// SetLoading toggles the loading spinner. Returns the spinner tick command
// when loading starts.
func (lv *ListView) SetLoading(loading bool) tea.Cmd {
	lv.loading = loading
	lv.err = ""
	if loading {
		return lv.spin.Tick
	}
	return nil
}

// SetError sets an error message to display
func (lv *ListView) SetError(msg string) {
	lv.err = msg
	lv.loading = false
}

// Kind returns the view's list kind.
func (lv *ListView) Kind() list.Kind {
	return lv.kind
}

// Cursor returns the row under the cursor, if any.
func (lv *ListView) Cursor() (list.Row, bool) {
	if lv.cursor < len(lv.rows) {
		return lv.rows[lv.cursor], true
	}
	return list.Row{}, false
}

// Init implements tea.Model
func (lv *ListView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (lv *ListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		lv.width = msg.Width
		lv.height = msg.Height
		return lv, nil

	case spinner.TickMsg:
		if !lv.loading {
			return lv, nil
		}
		var cmd tea.Cmd
		lv.spin, cmd = lv.spin.Update(msg)
		return lv, cmd

	case tea.KeyMsg:
		lv.err = ""
		switch lv.mode {
		case modeSearch:
			return lv.updateSearch(msg)
		default:
			return lv.updateList(msg)
		}
	}

	return lv, nil
}

func (lv *ListView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	maxItems := lv.itemCount()

	switch msg.String() {
	case "up", "k":
		if lv.cursor > 0 {
			lv.cursor--
		}
	case "down", "j":
		if lv.cursor < maxItems-1 {
			lv.cursor++
		}
	case "enter":
		return lv.selectItem()
	case " ":
		if lv.selectable {
			if row, ok := lv.Cursor(); ok {
				return lv, func() tea.Msg { return RowToggledMsg{Row: row} }
			}
		}
	case "/":
		lv.mode = modeSearch
		lv.textInput.SetValue(lv.query)
		lv.textInput.Focus()
		return lv, textinput.Blink
	case "m":
		if lv.hasLoadMore() {
			return lv, func() tea.Msg { return LoadMoreMsg{Kind: lv.kind} }
		}
	case "esc", "b":
		return lv, func() tea.Msg { return CancelledMsg{} }
	}

	return lv, nil
}

func (lv *ListView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		lv.mode = modeList
		lv.textInput.Blur()
		return lv, nil
	case "enter":
		query := strings.TrimSpace(lv.textInput.Value())
		lv.query = query
		lv.mode = modeList
		lv.textInput.Blur()
		kind := lv.kind
		return lv, func() tea.Msg { return SearchMsg{Kind: kind, Query: query} }
	}

	var cmd tea.Cmd
	lv.textInput, cmd = lv.textInput.Update(msg)
	return lv, cmd
}

// itemCount counts rows plus the synthetic load-more entry.
func (lv *ListView) itemCount() int {
	count := len(lv.rows)
	if lv.hasLoadMore() {
		count++
	}
	return count
}

// hasLoadMore reports whether the load-more entry is shown. Search snapshots
// are not paginated.
func (lv *ListView) hasLoadMore() bool {
	return !lv.searching && !lv.loading && len(lv.rows) > 0
}

func (lv *ListView) selectItem() (tea.Model, tea.Cmd) {
	if lv.cursor < len(lv.rows) {
		row := lv.rows[lv.cursor]
		if lv.selectable {
			return lv, func() tea.Msg { return RowToggledMsg{Row: row} }
		}
		kind := lv.kind
		return lv, func() tea.Msg { return RowChosenMsg{Kind: kind, Row: row} }
	}
	if lv.hasLoadMore() && lv.cursor == len(lv.rows) {
		return lv, func() tea.Msg { return LoadMoreMsg{Kind: lv.kind} }
	}
	return lv, nil
}

// View implements tea.Model
func (lv *ListView) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(lv.title))
	b.WriteString("\n")

	if lv.mode == modeSearch {
		b.WriteString(icons.Search.String() + " " + lv.textInput.View())
		b.WriteString("\n\n")
	} else if lv.query != "" && lv.searching {
		b.WriteString(helpStyle.Render(fmt.Sprintf("%s filter: %q", icons.Search.String(), lv.query)))
		b.WriteString("\n\n")
	} else {
		b.WriteString("\n")
	}

	if lv.loading {
		b.WriteString(lv.spin.View() + " Loading...\n")
		return b.String()
	}

	if len(lv.rows) == 0 {
		b.WriteString(helpStyle.Render(lv.emptyText()))
		b.WriteString("\n")
	}

	visible := lv.visibleRange()
	for i := visible.start; i < visible.end; i++ {
		b.WriteString(lv.renderRow(i))
	}

	if lv.hasLoadMore() {
		cursor := "  "
		style := helpStyle
		if lv.cursor == len(lv.rows) {
			cursor = "> "
			style = styles.SelectedRow
		}
		b.WriteString(cursor + style.Render(icons.More.String()+" Load more...") + "\n")
	}

	if lv.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + lv.err))
		b.WriteString("\n")
	}

	return b.String()
}

func (lv *ListView) renderRow(i int) string {
	row := lv.rows[i]

	cursor := "  "
	style := styles.NormalRow
	if i == lv.cursor {
		cursor = "> "
		style = styles.SelectedRow
	}

	check := ""
	if lv.selectable {
		if lv.selected != nil && lv.selected(row.ID) {
			check = checkedStyle.Render("[x]") + " "
		} else {
			check = "[ ] "
		}
	}

	id := idStyle.Render(fmt.Sprintf("#%-5d", row.ID))
	return cursor + check + id + style.Render(displayName(row.Name)) + "\n"
}

type rowRange struct {
	start, end int
}

// visibleRange windows the rows around the cursor when the terminal is short.
func (lv *ListView) visibleRange() rowRange {
	max := lv.height - 8
	if max < 5 {
		max = 20
	}
	if len(lv.rows) <= max {
		return rowRange{0, len(lv.rows)}
	}
	start := lv.cursor - max/2
	if start < 0 {
		start = 0
	}
	end := start + max
	if end > len(lv.rows) {
		end = len(lv.rows)
		start = end - max
	}
	return rowRange{start, end}
}

func (lv *ListView) emptyText() string {
	if lv.searching {
		return "No matches."
	}
	switch lv.kind {
	case list.KindTeams, list.KindMyTeams:
		return "No teams found!"
	case list.KindUsers:
		return "No users found."
	default:
		return "Nothing here yet."
	}
}

// displayName title-cases a catalog name for display.
func displayName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
