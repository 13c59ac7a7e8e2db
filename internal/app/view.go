package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/rvail/lumen/internal/mouse"
	"github.com/rvail/lumen/internal/styles"
)

// layoutViewports splits the canvas horizontally between viewports and
// records each one's screen rectangle for hit testing.
func (m *Model) layoutViewports() {
	vps := m.focus.Viewports()
	if len(vps) == 0 || m.width <= 0 {
		return
	}
	canvasH := m.height
	if m.cfg.UI.ShowStatusBar {
		canvasH--
	}
	if canvasH < 1 {
		canvasH = 1
	}
	w := m.width / len(vps)
	for i, vp := range vps {
		x := i * w
		vw := w
		if i == len(vps)-1 {
			vw = m.width - x
		}
		vp.SetRect(mouse.Rect{X: x, Y: 0, W: vw, H: canvasH})
	}
}

// View renders the canvas, status bar, and any overlays.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	vps := m.focus.Viewports()
	panes := make([]string, 0, len(vps))
	for i, vp := range vps {
		r := vp.Bounds()
		pane := vp.Render(r.W, r.H)
		if i == m.focus.Index() && len(vps) > 1 {
			pane = styles.Title.Render(vp.ID) + "\n" + pane
		}
		panes = append(panes, pane)
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	if m.cfg.UI.ShowStatusBar {
		view += "\n" + m.statusBar()
	}

	if m.paletteOpen {
		pal := m.palette.View()
		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, pal,
			lipgloss.WithWhitespaceChars(" "))
	}

	return m.overlays.Render(view)
}

// statusBar summarizes the focused viewport.
func (m Model) statusBar() string {
	vp := m.Active()
	if vp == nil {
		return styles.StatusBar.Width(m.width).Render("no series loaded")
	}

	s := vp.Series()
	w, l := vp.WindowLevel()
	parts := []string{
		s.Name,
		fmt.Sprintf("frame %d/%d", vp.FrameIndex()+1, len(s.Frames)),
		fmt.Sprintf("W/L %.0f/%.0f", w, l),
		vp.Colormap(),
		vp.Tool(),
		humanize.Bytes(uint64(s.TotalSize())),
	}
	if a := m.selection.Current(); a != nil {
		parts = append(parts, fmt.Sprintf("sel %.2f %s", a.Value, a.Unit))
	}
	return styles.StatusBar.Width(m.width).Render(strings.Join(parts, "  │  "))
}
