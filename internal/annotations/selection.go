package annotations

import (
	"math"

	"github.com/rvail/lumen/internal/menu"
)

// Selection tracks the annotation the user last picked, feeding the
// context-menu request with its coordinates and option bags.
type Selection struct {
	current *Annotation
}

// Set makes a the selected annotation.
func (s *Selection) Set(a *Annotation) {
	s.current = a
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.current = nil
}

// Current returns the selected annotation, or nil.
func (s *Selection) Current() *Annotation {
	return s.current
}

// CanvasPoints returns the selected annotation's endpoints for menu
// placement. When nothing is selected, or the annotation lives on a frame
// other than the visible one, the points are reported invalid so placement
// falls through to later candidates.
func (s *Selection) CanvasPoints(visibleFrame int) []menu.Point {
	if s.current == nil || s.current.Frame != visibleFrame {
		nan := math.NaN()
		return []menu.Point{{X: nan, Y: nan}}
	}
	return []menu.Point{
		{X: s.current.X1, Y: s.current.Y1},
		{X: s.current.X2, Y: s.current.Y2},
	}
}

// Refs returns passthrough references the menu forwards to command handlers.
func (s *Selection) Refs() map[string]any {
	if s.current == nil {
		return nil
	}
	return map[string]any{"annotationID": s.current.ID}
}

// CheckProps returns the predicate inputs item sources filter on.
func (s *Selection) CheckProps() map[string]any {
	if s.current == nil {
		return nil
	}
	return map[string]any{
		"tool":  s.current.Tool,
		"value": s.current.Value,
	}
}
