// Package overlay is the presentation backend for transient surfaces: the
// context menu, input prompts, and text viewers (metadata, help). Surfaces
// are keyed by a caller-chosen id so any holder of the id can dismiss them,
// and creating a surface under an existing id replaces it.
package overlay

import "fmt"

// Kind selects what a surface presents.
type Kind int

const (
	// KindMenu presents a selectable item list.
	KindMenu Kind = iota
	// KindPrompt presents a single-line text input.
	KindPrompt
	// KindText presents scrollable pre-rendered text.
	KindText
)

// Item is one selectable row of a menu surface. Data is an opaque payload
// handed back unchanged through the selection callbacks.
type Item struct {
	ID    string
	Label string

	// IsSubMenu marks a navigation node; selecting it fires OnSubMenu and
	// nothing else.
	IsSubMenu bool

	// HasBatch marks a leaf with a command batch; selecting it fires
	// OnRunCommands. Leaves without a batch fire OnDefault.
	HasBatch bool

	Data any
}

// Spec describes a surface to create.
type Spec struct {
	// ID keys the surface for dismissal and replacement. Required.
	ID string

	Kind  Kind
	Title string

	// X, Y is the requested top-left position in cells. The manager
	// clamps the surface to fit the screen. Prompts and text surfaces
	// with a negative position are centered.
	X, Y int

	// Draggable and Fixed describe placement behavior. Menu sessions are
	// created non-draggable with a fixed layout.
	Draggable bool
	Fixed     bool

	// Items populates KindMenu surfaces.
	Items []Item

	// Body is the content of KindText surfaces, already styled.
	Body string

	// Placeholder and Initial configure KindPrompt surfaces.
	Placeholder string
	Initial     string

	// Menu selection callbacks. The manager routes a selected item to
	// exactly one of these: OnSubMenu for navigation nodes, OnRunCommands
	// for batch leaves, OnDefault otherwise.
	OnRunCommands func(Item)
	OnSubMenu     func(Item)
	OnDefault     func(Item)

	// OnSubmit receives the prompt value on enter.
	OnSubmit func(string)

	// OnClose fires when the user closes the surface (escape, outside
	// click). Programmatic Dismiss does not fire it.
	OnClose func()
}

// validate checks the spec is presentable.
func (s Spec) validate() error {
	if s.ID == "" {
		return fmt.Errorf("overlay: spec has no id")
	}
	if s.Kind == KindMenu && len(s.Items) == 0 {
		return fmt.Errorf("overlay %q: menu has no items", s.ID)
	}
	return nil
}

// Service is the narrow surface-lifecycle contract consumed by the menu
// controller and the action layer. Manager implements it.
type Service interface {
	// Create presents a surface. A surface already holding the same id is
	// replaced. An unpresentable spec is rejected with an error and no
	// surface change.
	Create(spec Spec) error

	// Dismiss removes the surface with the given id. No-op for unknown
	// ids.
	Dismiss(id string)
}
