package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// compose splices an overlay block into the base view at cell (x, y),
// preserving ANSI styling on both sides of the cut. Base lines shorter than
// x are padded with spaces so the overlay lands at the requested column.
func compose(base, over string, x, y int) string {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(over, "\n")
	overWidth := 0
	for _, l := range overLines {
		if w := ansi.StringWidth(l); w > overWidth {
			overWidth = w
		}
	}

	for i, ol := range overLines {
		row := y + i
		for row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		bl := baseLines[row]

		left := ansi.Truncate(bl, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(bl, x+overWidth, "")

		if w := ansi.StringWidth(ol); w < overWidth {
			ol += strings.Repeat(" ", overWidth-w)
		}
		baseLines[row] = left + ol + right
	}

	return strings.Join(baseLines, "\n")
}
