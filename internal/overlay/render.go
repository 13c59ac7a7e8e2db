package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rvail/lumen/internal/mouse"
	"github.com/rvail/lumen/internal/styles"
)

const (
	minMenuWidth = 16
	maxMenuWidth = 48
	chevron      = "▸"
)

var surfaceBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(styles.BorderActive).
	Background(styles.BgPrimary)

// Render composites all live surfaces over the base view, bottom to top,
// and rebuilds the hit regions for the topmost one.
func (m *Manager) Render(base string) string {
	if len(m.stack) == 0 {
		return base
	}

	m.hits.Clear()
	out := base
	for i, inst := range m.stack {
		top := i == len(m.stack)-1
		switch inst.spec.Kind {
		case KindMenu:
			out = m.renderMenu(out, inst, top)
		case KindPrompt:
			out = m.renderPrompt(out, inst)
		case KindText:
			out = m.renderText(out, inst)
		}
	}
	return out
}

// renderMenu draws a menu surface at its requested position, clamped to the
// screen, and registers a hit region per visible row.
func (m *Manager) renderMenu(base string, inst *instance, top bool) string {
	items := inst.spec.Items

	// Row width follows the widest label, bounded.
	rowWidth := minMenuWidth
	for _, it := range items {
		w := runewidth.StringWidth(it.Label)
		if it.IsSubMenu {
			w += 2
		}
		if w > rowWidth {
			rowWidth = w
		}
	}
	if rowWidth > maxMenuWidth {
		rowWidth = maxMenuWidth
	}

	first := inst.scroll
	last := first + m.maxVisible
	if last > len(items) {
		last = len(items)
	}

	var rows []string
	for i := first; i < last; i++ {
		it := items[i]
		label := runewidth.Truncate(it.Label, rowWidth-2, "…")
		if it.IsSubMenu {
			pad := rowWidth - runewidth.StringWidth(label) - 1
			if pad < 1 {
				pad = 1
			}
			label += strings.Repeat(" ", pad) + styles.MenuChevron.Render(chevron)
		}
		style := styles.MenuItem
		if i == inst.cursor {
			style = styles.MenuItemSelected
		}
		rows = append(rows, style.Width(rowWidth).Render(" "+label+" "))
	}
	if first > 0 {
		rows[0] = styles.Muted.Width(rowWidth).Render(" ↑")
	}
	if last < len(items) {
		rows[len(rows)-1] = styles.Muted.Width(rowWidth).Render(" ↓")
	}

	body := strings.Join(rows, "\n")
	if inst.spec.Title != "" {
		body = styles.Title.Render(inst.spec.Title) + "\n" + body
	}
	box := surfaceBox.Render(body)

	boxW := lipgloss.Width(box)
	boxH := lipgloss.Height(box)
	x, y := clampToScreen(inst.spec.X, inst.spec.Y, boxW, boxH, m.width, m.height)
	inst.rect = mouse.Rect{X: x, Y: y, W: boxW, H: boxH}

	if top {
		rowY := y + 1 // border
		if inst.spec.Title != "" {
			rowY++
		}
		for i := first; i < last; i++ {
			ry := rowY + (i - first)
			// Rows repainted as scroll indicators must not select the
			// half-hidden item underneath; clicking them scrolls instead.
			switch {
			case i == first && first > 0:
				m.hits.AddRect(inst.spec.ID+":scroll", x+1, ry, boxW-2, 1, -1)
			case i == last-1 && last < len(items):
				m.hits.AddRect(inst.spec.ID+":scroll", x+1, ry, boxW-2, 1, 1)
			default:
				m.hits.AddRect(inst.spec.ID+":row", x+1, ry, boxW-2, 1, i)
			}
		}
	}

	return compose(base, box, x, y)
}

// renderPrompt draws a centered single-line input surface.
func (m *Manager) renderPrompt(base string, inst *instance) string {
	inst.input.Width = 40
	body := inst.input.View()
	if inst.spec.Title != "" {
		body = styles.Title.Render(inst.spec.Title) + "\n\n" + body
	}
	box := surfaceBox.Render(body)

	boxW := lipgloss.Width(box)
	boxH := lipgloss.Height(box)
	x, y := centerOrClamp(inst.spec.X, inst.spec.Y, boxW, boxH, m.width, m.height)
	inst.rect = mouse.Rect{X: x, Y: y, W: boxW, H: boxH}

	return compose(base, box, x, y)
}

// renderText draws a scrollable text surface.
func (m *Manager) renderText(base string, inst *instance) string {
	lines := strings.Split(inst.spec.Body, "\n")

	maxH := m.height - 6
	if maxH < 4 {
		maxH = 4
	}
	maxScroll := len(lines) - maxH
	if maxScroll < 0 {
		maxScroll = 0
	}
	if inst.scroll > maxScroll {
		inst.scroll = maxScroll
	}
	end := inst.scroll + maxH
	if end > len(lines) {
		end = len(lines)
	}

	body := strings.Join(lines[inst.scroll:end], "\n")
	if inst.spec.Title != "" {
		body = styles.Title.Render(inst.spec.Title) + "\n\n" + body
	}
	box := surfaceBox.Render(body)

	boxW := lipgloss.Width(box)
	boxH := lipgloss.Height(box)
	x, y := centerOrClamp(inst.spec.X, inst.spec.Y, boxW, boxH, m.width, m.height)
	inst.rect = mouse.Rect{X: x, Y: y, W: boxW, H: boxH}

	return compose(base, box, x, y)
}

// clampToScreen keeps a box of the given size on screen.
func clampToScreen(x, y, w, h, screenW, screenH int) (int, int) {
	if screenW > 0 && x+w > screenW {
		x = screenW - w
	}
	if screenH > 0 && y+h > screenH {
		y = screenH - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// centerOrClamp centers a box when no position was requested, otherwise
// clamps the requested position.
func centerOrClamp(x, y, w, h, screenW, screenH int) (int, int) {
	if x < 0 {
		x = (screenW - w) / 2
	}
	if y < 0 {
		y = (screenH - h) / 2
	}
	return clampToScreen(x, y, w, h, screenW, screenH)
}
