package palette

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rvail/lumen/internal/styles"
)

// View renders the palette surface.
func (m Model) View() string {
	boxWidth := min(64, max(40, m.width-4))
	inner := boxWidth - 4

	var b strings.Builder
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	end := min(m.offset+m.maxVisible, len(m.filtered))
	if len(m.filtered) == 0 {
		b.WriteString(styles.Muted.Render("no matching commands"))
	}
	for i := m.offset; i < end; i++ {
		e := m.filtered[i]
		label := e.Name
		if m.showAll && e.Context != "" {
			label += "  " + styles.Muted.Render("("+e.Context+")")
		}
		if e.Key != "" {
			pad := inner - runewidth.StringWidth(e.Name) - runewidth.StringWidth(e.Key) - 2
			if pad > 0 {
				label += strings.Repeat(" ", pad)
			}
			label += styles.Muted.Render(e.Key)
		}

		style := styles.MenuItem
		if i == m.cursor {
			style = styles.MenuItemSelected
		}
		b.WriteString(style.Width(inner).Render(label))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary).
		Padding(0, 1).
		Width(boxWidth)
	return box.Render(b.String())
}
