// Package menu implements the contextual menu core: screen position
// resolution, the single-session lifecycle controller, and the item source
// contract the controller pulls menu content from.
package menu

import (
	"math"

	"github.com/rvail/lumen/internal/command"
	"github.com/rvail/lumen/internal/mouse"
)

// Point is a screen position. Coordinates are float64 because annotation
// canvas projections are sub-cell; the overlay layer rounds to cells when it
// places the menu.
type Point struct {
	X, Y float64
}

// Valid reports whether both coordinates are real numbers. NaN or infinite
// coordinates mark a candidate that could not be computed (annotation not on
// the visible frame, absent anchor) and must be skipped by the resolver.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Add returns the point translated by off.
func (p Point) Add(off Point) Point {
	return Point{X: p.X + off.X, Y: p.Y + off.Y}
}

// invalidPoint marks a candidate that could not be computed.
func invalidPoint() Point {
	return Point{X: math.NaN(), Y: math.NaN()}
}

// InputEvent is the triggering input event of a menu request. Points holds
// the reported coordinate pairs; the first one is the candidate position.
type InputEvent struct {
	Points []Point
}

// First returns the event's first reported coordinate pair.
func (e *InputEvent) First() (Point, bool) {
	if e == nil || len(e.Points) == 0 {
		return Point{}, false
	}
	return e.Points[0], true
}

// Anchor is the UI surface the menu is positioned relative to, typically a
// viewport. Bounds is a layout query and may be expensive; the resolver
// calls it only when an anchor-based candidate is actually needed.
type Anchor interface {
	Bounds() mouse.Rect
}

// Request is the full intent of a show-menu call.
type Request struct {
	// Event is the triggering input event, if any.
	Event *InputEvent

	// ActiveMenuID selects a submenu group instead of the top-level
	// Groups when navigating.
	ActiveMenuID string

	// Groups names the menu groups to consider for the top-level menu.
	Groups []string

	// Refs are opaque identifiers of the entity the menu is about (for
	// example a selected annotation id). Forwarded unchanged into
	// command options.
	Refs map[string]any

	// CheckProps is derived predicate data describing the selection (the
	// tool that produced it, measured values). Used by the item source to
	// filter items and forwarded into command options.
	CheckProps map[string]any

	// CanvasPoints are selection-derived candidate positions, used when
	// the caller supplies no explicit position hint.
	CanvasPoints []Point
}

// sharedOptions flattens Refs and CheckProps into one option bag. These are
// the values every command run from this menu receives.
func (r Request) sharedOptions() command.Options {
	shared := make(command.Options, len(r.Refs)+len(r.CheckProps))
	for k, v := range r.Refs {
		shared[k] = v
	}
	for k, v := range r.CheckProps {
		shared[k] = v
	}
	return shared
}

// CommandRef names a registered command together with per-item options and
// the context tag to dispatch under.
type CommandRef struct {
	Name    string
	Options command.Options
	Context string
}

// ItemDescriptor describes one selectable menu entry.
//
// An item with a SubMenu id is a navigation node: selecting it only opens
// the named submenu group and never dispatches a command. A leaf item
// carries either a Commands batch (run in order, best effort) or a single
// default Command.
type ItemDescriptor struct {
	ID    string
	Label string

	// SubMenu names the group to navigate to. Mutually exclusive with
	// command execution.
	SubMenu string

	// Command is the default single command for leaf items without a
	// batch.
	Command CommandRef

	// Commands is an ordered batch run on selection.
	Commands []CommandRef

	// Fields carries item-level data (preset values, colormap names)
	// merged into the default command's options at lowest precedence.
	Fields command.Options
}

// ItemSource produces the selectable items for a menu request. Implemented
// outside the controller; each navigation step re-resolves items, nothing is
// cached between sessions.
type ItemSource interface {
	MenuItems(checkProps map[string]any, event *InputEvent, groups []string, refs map[string]any, activeMenuID string) []ItemDescriptor
}
