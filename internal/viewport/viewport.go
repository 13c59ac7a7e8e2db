package viewport

import (
	"fmt"

	"github.com/rvail/lumen/internal/mouse"
)

// Default window/level for 8-bit sources: full range, centered.
const (
	DefaultWindow = 255
	DefaultLevel  = 128
)

// Tool names. Tools are owned by the hosting application; the viewport only
// records which one is active so selections can report their origin.
const (
	ToolPan     = "pan"
	ToolZoom    = "zoom"
	ToolMeasure = "measure"
	ToolSelect  = "select"
)

// Viewport displays one series with its own manipulation state.
type Viewport struct {
	ID     string
	series *Series

	frame    int
	rotation int // degrees, multiple of 90
	flipH    bool
	flipV    bool
	window   float64
	level    float64
	colormap string
	tool     string

	rect  mouse.Rect
	cache *frameCache
}

// New creates a viewport over a series with default display state.
func New(id string, series *Series) *Viewport {
	return &Viewport{
		ID:       id,
		series:   series,
		window:   DefaultWindow,
		level:    DefaultLevel,
		colormap: "gray",
		tool:     ToolSelect,
		cache:    newFrameCache(8),
	}
}

// Bounds returns the viewport's screen rectangle. Satisfies the menu
// anchor contract.
func (v *Viewport) Bounds() mouse.Rect {
	return v.rect
}

// SetRect places the viewport on screen.
func (v *Viewport) SetRect(r mouse.Rect) {
	v.rect = r
}

// Series returns the displayed series.
func (v *Viewport) Series() *Series {
	return v.series
}

// FrameIndex returns the current frame position.
func (v *Viewport) FrameIndex() int {
	return v.frame
}

// CurrentFrame returns the frame being displayed.
func (v *Viewport) CurrentFrame() *Frame {
	return v.series.Frames[v.frame]
}

// ScrollFrames moves the frame position by delta, clamping at the stack
// ends.
func (v *Viewport) ScrollFrames(delta int) {
	v.frame += delta
	if v.frame < 0 {
		v.frame = 0
	}
	if v.frame >= len(v.series.Frames) {
		v.frame = len(v.series.Frames) - 1
	}
}

// Rotate turns the image by deg degrees clockwise. Only right angles are
// meaningful; the stored rotation stays in [0, 360).
func (v *Viewport) Rotate(deg int) {
	v.rotation = ((v.rotation+deg)%360 + 360) % 360
}

// Rotation returns the current rotation in degrees.
func (v *Viewport) Rotation() int {
	return v.rotation
}

// FlipHorizontal mirrors the image across the vertical axis.
func (v *Viewport) FlipHorizontal() {
	v.flipH = !v.flipH
}

// FlipVertical mirrors the image across the horizontal axis.
func (v *Viewport) FlipVertical() {
	v.flipV = !v.flipV
}

// SetWindowLevel sets the display window and level. A non-positive window
// is clamped to 1 to keep the mapping defined.
func (v *Viewport) SetWindowLevel(window, level float64) {
	if window < 1 {
		window = 1
	}
	v.window = window
	v.level = level
}

// AdjustWindowLevel applies deltas to the current window and level, as
// driven by a mouse drag.
func (v *Viewport) AdjustWindowLevel(dWindow, dLevel float64) {
	v.SetWindowLevel(v.window+dWindow, v.level+dLevel)
}

// WindowLevel returns the current window and level.
func (v *Viewport) WindowLevel() (window, level float64) {
	return v.window, v.level
}

// SetColormap assigns a named colormap. Unknown names are rejected.
func (v *Viewport) SetColormap(name string) error {
	if _, ok := colormaps[name]; !ok {
		return fmt.Errorf("unknown colormap %q", name)
	}
	v.colormap = name
	return nil
}

// Colormap returns the active colormap name.
func (v *Viewport) Colormap() string {
	return v.colormap
}

// ActivateTool records the active tool.
func (v *Viewport) ActivateTool(name string) {
	v.tool = name
}

// Tool returns the active tool name.
func (v *Viewport) Tool() string {
	return v.tool
}

// Reset restores default display state without touching the frame position.
func (v *Viewport) Reset() {
	v.rotation = 0
	v.flipH = false
	v.flipV = false
	v.window = DefaultWindow
	v.level = DefaultLevel
	v.colormap = "gray"
}

// State reports the display state as an option bag, consumed by query
// commands and the status bar.
func (v *Viewport) State() map[string]any {
	return map[string]any{
		"viewportID": v.ID,
		"frame":      v.frame,
		"frames":     len(v.series.Frames),
		"rotation":   v.rotation,
		"flipH":      v.flipH,
		"flipV":      v.flipV,
		"window":     v.window,
		"level":      v.level,
		"colormap":   v.colormap,
		"tool":       v.tool,
	}
}
