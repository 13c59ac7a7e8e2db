package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rvail/lumen/internal/overlay"
)

const helpPreamble = `# lumen

Terminal image series viewer.

## Keys

| Key | Action |
| --- | ------ |
| ctrl+k | command palette |
| m | context menu |
| tab | next viewport |
| left/right | step frames |
| ? | this help |
| q | quit |

## Commands
`

// showHelp renders the key reference into a text overlay.
func (m *Model) showHelp() {
	var b strings.Builder
	b.WriteString(helpPreamble)

	keys := make([]string, 0, len(m.keys))
	for k := range m.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- `%s`: %s\n", k, m.keys[k])
	}

	width := m.width - 8
	if width > 72 {
		width = 72
	}
	lines := m.help.Render(b.String(), width)
	err := m.overlays.Create(overlay.Spec{
		ID:    "help",
		Kind:  overlay.KindText,
		Title: "Help",
		X:     -1,
		Y:     -1,
		Body:  strings.Join(lines, "\n"),
	})
	if err != nil {
		m.logger.Warn("help overlay failed", "error", err)
	}
}
