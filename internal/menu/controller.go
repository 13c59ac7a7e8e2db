package menu

import (
	"log/slog"
	"math"

	"github.com/rvail/lumen/internal/command"
	"github.com/rvail/lumen/internal/overlay"
)

// SessionID is the fixed overlay identifier for the context menu. Creating a
// session always dismisses this id first, so at most one menu exists.
const SessionID = "context-menu"

// Controller owns the single context menu session: it resolves position,
// pulls items from the source, opens the presentation session, and wires the
// selection callbacks to command dispatch.
type Controller struct {
	overlays overlay.Service
	source   ItemSource
	registry *command.Registry
	logger   *slog.Logger

	// Last open request, kept so submenu navigation can re-open with the
	// same anchor and position hint and the menu appears not to move.
	lastReq    Request
	lastAnchor Anchor
	lastHint   []Point
}

// NewController wires a controller to its collaborators. overlays may be nil
// (headless or degraded start); Show then logs and does nothing.
func NewController(overlays overlay.Service, source ItemSource, registry *command.Registry, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		overlays: overlays,
		source:   source,
		registry: registry,
		logger:   logger,
	}
}

// Show opens the context menu for req, anchored to anchor. hint, when
// non-empty, supplies explicit candidate points for position resolution;
// otherwise the request's selection-derived canvas points are used. Any
// existing session is dismissed first, so exactly one session is visible
// afterward.
func (c *Controller) Show(req Request, anchor Anchor, hint []Point) {
	if c.overlays == nil {
		c.logger.Error("context menu suppressed: no presentation service")
		return
	}

	c.overlays.Dismiss(SessionID)

	items := c.source.MenuItems(req.CheckProps, req.Event, req.Groups, req.Refs, req.ActiveMenuID)

	points := hint
	if len(points) == 0 {
		points = req.CanvasPoints
	}
	pos := ResolvePosition(points, req.Event, anchor)

	c.lastReq = req
	c.lastAnchor = anchor
	c.lastHint = hint

	spec := overlay.Spec{
		ID:            SessionID,
		Kind:          overlay.KindMenu,
		X:             int(math.Round(pos.X)),
		Y:             int(math.Round(pos.Y)),
		Draggable:     false,
		Fixed:         true,
		Items:         overlayItems(items),
		OnRunCommands: c.runCommands,
		OnSubMenu:     c.subMenu,
		OnDefault:     c.runDefault,
		OnClose:       c.Close,
	}
	if err := c.overlays.Create(spec); err != nil {
		c.logger.Error("context menu open rejected", "error", err)
	}
}

// Close dismisses the context menu session. Safe to call when none is open.
func (c *Controller) Close() {
	if c.overlays == nil {
		return
	}
	c.overlays.Dismiss(SessionID)
}

// overlayItems converts item descriptors to presentation items. The
// descriptor rides along as the opaque payload and comes back on selection.
func overlayItems(items []ItemDescriptor) []overlay.Item {
	out := make([]overlay.Item, 0, len(items))
	for _, d := range items {
		out = append(out, overlay.Item{
			ID:        d.ID,
			Label:     d.Label,
			IsSubMenu: d.SubMenu != "",
			HasBatch:  len(d.Commands) > 0,
			Data:      d,
		})
	}
	return out
}

// runCommands executes a leaf item's command batch in order. The request's
// refs and check-props are merged under each command's own options, so a
// command overrides shared values only where it explicitly sets them.
//
// Execution is sequential and best effort: there is no atomicity across the
// batch, and a failing command is logged without stopping the commands that
// follow it.
func (c *Controller) runCommands(it overlay.Item) {
	d, ok := it.Data.(ItemDescriptor)
	if !ok {
		return
	}

	shared := c.lastReq.sharedOptions()
	for _, ref := range d.Commands {
		opts := shared.Merge(ref.Options)
		if _, err := c.registry.Run(ref.Name, opts, ref.Context); err != nil {
			c.logger.Error("context menu command failed",
				"command", ref.Name, "item", d.ID, "error", err)
		}
	}
}

// subMenu replaces the current session with the item's submenu. The new
// request reuses the original anchor and position hint so the menu stays
// put; items are re-resolved from the source on every hop.
func (c *Controller) subMenu(it overlay.Item) {
	d, ok := it.Data.(ItemDescriptor)
	if !ok {
		return
	}
	if d.SubMenu == "" {
		c.logger.Warn("submenu item has no target", "item", d.ID)
		return
	}

	req := c.lastReq
	req.ActiveMenuID = d.SubMenu
	c.Show(req, c.lastAnchor, c.lastHint)
}

// runDefault dispatches a leaf item's single default command. Options are
// merged in increasing precedence: the item's own fields, then its explicit
// command options, then the shared refs and check-props. The shared
// reference data is forwarded last so it is never shadowed.
func (c *Controller) runDefault(it overlay.Item) {
	d, ok := it.Data.(ItemDescriptor)
	if !ok {
		return
	}
	if d.Command.Name == "" {
		return
	}

	opts := d.Fields.
		Merge(d.Command.Options).
		Merge(c.lastReq.sharedOptions())
	if _, err := c.registry.Run(d.Command.Name, opts, d.Command.Context); err != nil {
		c.logger.Error("context menu command failed",
			"command", d.Command.Name, "item", d.ID, "error", err)
	}
}
