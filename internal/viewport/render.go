package viewport

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/lipgloss"
)

// frameCache memoizes rendered frames keyed by a hash of the display state.
// Re-rendering a frame is by far the most expensive operation in the UI, so
// scrolling back and forth over the same frames must not redo the sampling.
type frameCache struct {
	cap     int
	entries map[uint64]string
}

func newFrameCache(capacity int) *frameCache {
	return &frameCache{cap: capacity, entries: make(map[uint64]string, capacity)}
}

func (c *frameCache) get(key uint64) (string, bool) {
	s, ok := c.entries[key]
	return s, ok
}

func (c *frameCache) put(key uint64, s string) {
	if len(c.entries) >= c.cap {
		// Cheap full reset; the working set is tiny.
		c.entries = make(map[uint64]string, c.cap)
	}
	c.entries[key] = s
}

// renderKey hashes everything that affects the rendered output.
func (v *Viewport) renderKey(w, h int) uint64 {
	d := xxhash.New()
	fmt.Fprintf(d, "%s|%d|%d|%v|%v|%g|%g|%s|%dx%d",
		v.CurrentFrame().Path, v.frame, v.rotation, v.flipH, v.flipV,
		v.window, v.level, v.colormap, w, h)
	return d.Sum64()
}

// Render draws the current frame into a w×h cell block using half-block
// glyphs (two pixel rows per cell). Decode or render failures produce a
// placeholder block rather than an error: a broken frame should not take
// down the whole view.
func (v *Viewport) Render(w, h int) string {
	if w < 1 || h < 1 {
		return ""
	}

	key := v.renderKey(w, h)
	if s, ok := v.cache.get(key); ok {
		return s
	}

	img, err := v.CurrentFrame().Image()
	if err != nil {
		return placeholder(w, h, "unreadable frame")
	}

	s := v.renderImage(img, w, h)
	v.cache.put(key, s)
	return s
}

// renderImage samples the image into the cell grid, applying rotation,
// flips, window/level and the colormap.
func (v *Viewport) renderImage(img image.Image, w, h int) string {
	cmap := colormaps[v.colormap]
	if cmap == nil {
		cmap = grayMap
	}

	// Source dimensions after rotation.
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	outW, outH := srcW, srcH
	if v.rotation == 90 || v.rotation == 270 {
		outW, outH = srcH, srcW
	}

	rows := make([]string, 0, h)
	var sb strings.Builder
	pixH := h * 2

	for cy := 0; cy < h; cy++ {
		sb.Reset()
		for cx := 0; cx < w; cx++ {
			top := v.sample(img, cx, cy*2, w, pixH, outW, outH, srcW, srcH)
			bot := v.sample(img, cx, cy*2+1, w, pixH, outW, outH, srcW, srcH)
			tc := cmap(v.windowed(top))
			bc := cmap(v.windowed(bot))
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(tc))).
				Background(lipgloss.Color(hexColor(bc))).
				Render("▀"))
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}

// sample returns the grayscale value at the output pixel (px, py), mapped
// back through flips and rotation into the source image.
func (v *Viewport) sample(img image.Image, px, py, gridW, gridH, outW, outH, srcW, srcH int) float64 {
	// Output pixel in rotated-image coordinates.
	ox := px * outW / gridW
	oy := py * outH / gridH

	if v.flipH {
		ox = outW - 1 - ox
	}
	if v.flipV {
		oy = outH - 1 - oy
	}

	// Rotated coordinates back to source coordinates.
	var sx, sy int
	switch v.rotation {
	case 90:
		sx, sy = oy, outW-1-ox
	case 180:
		sx, sy = srcW-1-ox, srcH-1-oy
	case 270:
		sx, sy = outH-1-oy, ox
	default:
		sx, sy = ox, oy
	}

	if sx < 0 || sy < 0 || sx >= srcW || sy >= srcH {
		return 0
	}
	b := img.Bounds()
	g := color.GrayModel.Convert(img.At(b.Min.X+sx, b.Min.Y+sy)).(color.Gray)
	return float64(g.Y)
}

// windowed maps a raw grayscale value through the window/level transform to
// [0, 1].
func (v *Viewport) windowed(raw float64) float64 {
	low := v.level - v.window/2
	return clamp01((raw - low) / v.window)
}

func hexColor(c rgb) string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// placeholder fills the block with a dimmed message.
func placeholder(w, h int, msg string) string {
	rows := make([]string, h)
	blank := strings.Repeat(" ", w)
	for i := range rows {
		rows[i] = blank
	}
	if h > 0 && len(msg) < w {
		rows[h/2] = lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(msg)
	}
	return strings.Join(rows, "\n")
}
