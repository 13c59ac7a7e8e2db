// Package mouse provides hit-region tracking for terminal mouse events.
//
// Screen regions (viewports, overlay items, status segments) register a Rect
// under an ID; incoming tea.MouseMsg events are resolved against the map to
// decide what was clicked, hovered, scrolled or dragged.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a rectangular screen region in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Region is a named hit region with an opaque payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap tracks registered hit regions. Regions added later sit on top.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty HitMap.
func NewHitMap() *HitMap {
	return &HitMap{regions: make([]Region, 0, 32)}
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Add registers a region.
func (h *HitMap) Add(id string, rect Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: rect, Data: data})
}

// AddRect registers a region from individual coordinates.
func (h *HitMap) AddRect(id string, x, y, w, height int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: height}, data)
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// doubleClickWindow is the maximum gap between two clicks on the same
// region for the second to count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// ActionType classifies a processed mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionRightClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionDrag
	ActionDragEnd
	ActionHover
)

// Action is a processed mouse event resolved against the hit map.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int // scroll step
	DragDX int
	DragDY int
}

// Handler resolves raw mouse events against a HitMap and tracks click
// timing and drag state.
type Handler struct {
	HitMap *HitMap

	lastClickTime   time.Time
	lastClickRegion string

	dragging   bool
	dragStartX int
	dragStartY int
	dragRegion string
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// StartDrag begins tracking a drag from (x, y) on the given region.
func (h *Handler) StartDrag(x, y int, regionID string) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = regionID
}

// Dragging reports whether a drag is in progress.
func (h *Handler) Dragging() bool {
	return h.dragging
}

// DragRegion returns the region ID the current drag started on.
func (h *Handler) DragRegion() string {
	return h.dragRegion
}

// EndDrag stops drag tracking.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
}

// Handle processes a tea.MouseMsg into an Action.
func (h *Handler) Handle(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return h.press(msg.X, msg.Y)
		case tea.MouseButtonRight:
			return Action{
				Type:   ActionRightClick,
				Region: h.HitMap.Test(msg.X, msg.Y),
				X:      msg.X,
				Y:      msg.Y,
			}
		case tea.MouseButtonWheelUp:
			return Action{
				Type:   ActionScrollUp,
				Region: h.HitMap.Test(msg.X, msg.Y),
				X:      msg.X,
				Y:      msg.Y,
				Delta:  -1,
			}
		case tea.MouseButtonWheelDown:
			return Action{
				Type:   ActionScrollDown,
				Region: h.HitMap.Test(msg.X, msg.Y),
				X:      msg.X,
				Y:      msg.Y,
				Delta:  1,
			}
		}

	case tea.MouseActionRelease:
		if h.dragging {
			h.EndDrag()
			return Action{Type: ActionDragEnd, X: msg.X, Y: msg.Y}
		}

	case tea.MouseActionMotion:
		if h.dragging {
			return Action{
				Type:   ActionDrag,
				X:      msg.X,
				Y:      msg.Y,
				DragDX: msg.X - h.dragStartX,
				DragDY: msg.Y - h.dragStartY,
			}
		}
		return Action{
			Type:   ActionHover,
			Region: h.HitMap.Test(msg.X, msg.Y),
			X:      msg.X,
			Y:      msg.Y,
		}
	}

	return Action{Type: ActionNone}
}

// press resolves a left-button press, detecting double clicks on the same
// region within the click window.
func (h *Handler) press(x, y int) Action {
	region := h.HitMap.Test(x, y)
	act := Action{Type: ActionClick, Region: region, X: x, Y: y}
	if region == nil {
		h.lastClickRegion = ""
		return act
	}

	now := time.Now()
	if region.ID == h.lastClickRegion && now.Sub(h.lastClickTime) < doubleClickWindow {
		act.Type = ActionDoubleClick
		// Reset so a triple click does not count as another double.
		h.lastClickRegion = ""
		h.lastClickTime = time.Time{}
		return act
	}

	h.lastClickRegion = region.ID
	h.lastClickTime = now
	return act
}
