// ABOUTME: Roster slot bar showing how many of the six team slots are filled
// ABOUTME: Colors shift as the selection approaches the roster cap

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pokebuild/teambuilder/internal/tui/icons"
)

// SlotBar renders the filled/empty slot indicators for a team selection,
// e.g. "◉ ◉ ◉ ○ ○ ○  3/6".
func SlotBar(filled, capacity int) string {
	if filled < 0 {
		filled = 0
	}
	if filled > capacity {
		filled = capacity
	}

	var slots []string
	for i := 0; i < capacity; i++ {
		if i < filled {
			slots = append(slots, icons.SlotFilled.String())
		} else {
			slots = append(slots, icons.SlotEmpty.String())
		}
	}

	color := BadgeOKBg
	if filled == capacity {
		color = BadgeWarnBg
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Join(slots, " "))
	count := lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render(fmt.Sprintf("%d/%d", filled, capacity))
	return bar + "  " + count
}

// SlotLabels renders the selected names in slot order, one per line, with
// empty slots shown as dashes.
func SlotLabels(names []string, capacity int) string {
	var b strings.Builder
	for i := 0; i < capacity; i++ {
		if i < len(names) {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, names[i]))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render(fmt.Sprintf("%d. -", i+1)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
