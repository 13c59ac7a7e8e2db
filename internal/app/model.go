// Package app holds the root bubbletea model that wires viewports, the
// context menu, the overlay stack, and the command palette together.
package app

import (
	"log/slog"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rvail/lumen/internal/annotations"
	"github.com/rvail/lumen/internal/command"
	"github.com/rvail/lumen/internal/config"
	"github.com/rvail/lumen/internal/markdown"
	"github.com/rvail/lumen/internal/menu"
	"github.com/rvail/lumen/internal/mouse"
	"github.com/rvail/lumen/internal/overlay"
	"github.com/rvail/lumen/internal/palette"
	"github.com/rvail/lumen/internal/viewport"
)

// menuContexts lists the command contexts the palette can browse.
var menuContexts = []string{"viewer", "browser"}

// configReloadedMsg carries a hot-reloaded config into the update loop.
type configReloadedMsg struct{ cfg *config.Config }

// ConfigReloaded wraps a reloaded config as a bubbletea message.
func ConfigReloaded(cfg *config.Config) tea.Msg {
	return configReloadedMsg{cfg: cfg}
}

// Focus tracks the viewport stack and which one is active. It is shared by
// pointer so command handlers observe focus changes made by the update loop.
type Focus struct {
	viewports []*viewport.Viewport
	idx       int
}

// NewFocus creates a focus holder over the given viewports.
func NewFocus(vps []*viewport.Viewport) *Focus {
	return &Focus{viewports: vps}
}

// Active returns the focused viewport, or nil when none are loaded.
func (f *Focus) Active() *viewport.Viewport {
	if len(f.viewports) == 0 {
		return nil
	}
	return f.viewports[f.idx]
}

// Viewports returns the viewport stack.
func (f *Focus) Viewports() []*viewport.Viewport {
	return f.viewports
}

// Index returns the focused position.
func (f *Focus) Index() int {
	return f.idx
}

// Set moves focus to position i when valid.
func (f *Focus) Set(i int) {
	if i >= 0 && i < len(f.viewports) {
		f.idx = i
	}
}

// Next cycles focus to the following viewport.
func (f *Focus) Next() {
	if len(f.viewports) > 1 {
		f.idx = (f.idx + 1) % len(f.viewports)
	}
}

// Model is the application root.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	focus *Focus

	registry   *command.Registry
	selection  *annotations.Selection
	store      *annotations.Store
	controller *menu.Controller
	overlays   *overlay.Manager
	mouseIn    *mouse.Handler

	palette     palette.Model
	paletteOpen bool

	// Last cumulative drag offsets, used to turn motion events into
	// per-step window/level deltas.
	dragDX int
	dragDY int

	help *markdown.Renderer

	keys map[string]string // key -> command name

	width  int
	height int
}

// New assembles the root model.
func New(cfg *config.Config, focus *Focus, reg *command.Registry,
	sel *annotations.Selection, store *annotations.Store,
	controller *menu.Controller, overlays *overlay.Manager, logger *slog.Logger) Model {

	if logger == nil {
		logger = slog.Default()
	}
	overlays.SetMaxVisible(cfg.UI.MenuMaxVisible)

	return Model{
		cfg:        cfg,
		logger:     logger,
		focus:      focus,
		registry:   reg,
		selection:  sel,
		store:      store,
		controller: controller,
		overlays:   overlays,
		mouseIn:    mouse.NewHandler(),
		palette:    palette.New(),
		help:       markdown.NewRenderer(logger),
		keys:       bindKeys(cfg.Keymap.Overrides),
	}
}

// Init starts the program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Active returns the focused viewport.
func (m Model) Active() *viewport.Viewport {
	return m.focus.Active()
}

// Update routes messages. Overlays take precedence over the palette, which
// takes precedence over viewport keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.overlays.SetSize(msg.Width, msg.Height)
		m.palette.SetSize(msg.Width, msg.Height)
		m.layoutViewports()
		return m, nil

	case configReloadedMsg:
		m.cfg = msg.cfg
		m.keys = bindKeys(msg.cfg.Keymap.Overrides)
		m.overlays.SetMaxVisible(msg.cfg.UI.MenuMaxVisible)
		return m, nil

	case palette.CommandSelectedMsg:
		m.paletteOpen = false
		if _, err := m.registry.Run(msg.Name, nil, msg.Context); err != nil {
			m.logger.Warn("palette command failed", "command", msg.Name, "error", err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.paletteOpen {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlays.Active() {
		if handled, cmd := m.overlays.HandleKey(msg); handled {
			return m, cmd
		}
	}

	if m.paletteOpen {
		if msg.Type == tea.KeyEsc {
			m.paletteOpen = false
			return m, nil
		}
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "ctrl+k":
		m.paletteOpen = true
		m.palette.Open(m.registry, "viewer", menuContexts, m.cfg.Keymap.Overrides)
		return m, m.palette.Init()
	case "?":
		m.showHelp()
		return m, nil
	case "tab":
		m.focus.Next()
		return m, nil
	case "m":
		m.openContextMenuAtFocus()
		return m, nil
	case "left", "h":
		if vp := m.Active(); vp != nil {
			vp.ScrollFrames(-1)
		}
		return m, nil
	case "right":
		if vp := m.Active(); vp != nil {
			vp.ScrollFrames(1)
		}
		return m, nil
	}

	if name, ok := m.keys[key]; ok {
		if _, err := m.registry.Run(name, nil, "viewer"); err != nil {
			m.logger.Warn("key command failed", "command", name, "key", key, "error", err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.cfg.UI.MouseEnabled {
		return m, nil
	}
	if m.overlays.Active() && m.overlays.HandleMouse(msg) {
		return m, nil
	}

	action := m.mouseIn.Handle(msg)
	switch action.Type {
	case mouse.ActionRightClick:
		m.focusAt(action.X, action.Y)
		m.openContextMenu(action.X, action.Y)
	case mouse.ActionClick:
		m.focusAt(action.X, action.Y)
		if vp := m.viewportAt(action.X, action.Y); vp != nil {
			m.mouseIn.StartDrag(action.X, action.Y, vp.ID)
			m.dragDX, m.dragDY = 0, 0
		}
	case mouse.ActionDrag:
		m.adjustWindowLevelBy(action.DragDX, action.DragDY)
	case mouse.ActionDragEnd:
		m.dragDX, m.dragDY = 0, 0
	case mouse.ActionDoubleClick:
		m.focusAt(action.X, action.Y)
		m.selectAnnotationNear(action.X, action.Y)
	case mouse.ActionScrollUp:
		if vp := m.viewportAt(action.X, action.Y); vp != nil {
			vp.ScrollFrames(-1)
		}
	case mouse.ActionScrollDown:
		if vp := m.viewportAt(action.X, action.Y); vp != nil {
			vp.ScrollFrames(1)
		}
	}
	return m, nil
}

// adjustWindowLevelBy maps a drag offset onto the focused viewport's
// window/level. Horizontal motion widens the window, vertical motion raises
// the level (dragging up brightens). Offsets are cumulative from the drag
// start, so only the step since the previous event is applied.
func (m *Model) adjustWindowLevelBy(dragDX, dragDY int) {
	dx, dy := dragDX-m.dragDX, dragDY-m.dragDY
	m.dragDX, m.dragDY = dragDX, dragDY
	if dx == 0 && dy == 0 {
		return
	}
	// Terminal cells are coarse, so each cell moves two units.
	opts := command.Options{
		"dWindow": float64(dx) * 2,
		"dLevel":  float64(-dy) * 2,
	}
	if _, err := m.registry.Run("adjust-window-level", opts, "viewer"); err != nil {
		m.logger.Warn("window/level drag failed", "error", err)
	}
}

// focusAt moves focus to the viewport under the given cell, if any.
func (m *Model) focusAt(x, y int) {
	for i, vp := range m.focus.Viewports() {
		if vp.Bounds().Contains(x, y) {
			m.focus.Set(i)
			return
		}
	}
}

func (m Model) viewportAt(x, y int) *viewport.Viewport {
	for _, vp := range m.focus.Viewports() {
		if vp.Bounds().Contains(x, y) {
			return vp
		}
	}
	return nil
}

// openContextMenu builds a menu request from the click location and the
// current selection, then hands it to the controller.
func (m *Model) openContextMenu(x, y int) {
	vp := m.Active()
	if vp == nil {
		return
	}
	req := menu.Request{
		Event:        &menu.InputEvent{Points: []menu.Point{{X: float64(x), Y: float64(y)}}},
		Groups:       m.menuGroups(),
		Refs:         m.selection.Refs(),
		CheckProps:   m.checkProps(vp),
		CanvasPoints: m.selection.CanvasPoints(vp.FrameIndex()),
	}
	m.controller.Show(req, vp, nil)
}

// openContextMenuAtFocus opens the menu from the keyboard, anchored to the
// focused viewport with no pointer event.
func (m *Model) openContextMenuAtFocus() {
	vp := m.Active()
	if vp == nil {
		return
	}
	nan := math.NaN()
	req := menu.Request{
		Groups:       m.menuGroups(),
		Refs:         m.selection.Refs(),
		CheckProps:   m.checkProps(vp),
		CanvasPoints: []menu.Point{{X: nan, Y: nan}},
	}
	m.controller.Show(req, vp, nil)
}

// selectAnnotationNear picks the annotation on the visible frame whose first
// endpoint is closest to the click, within a small cell radius.
func (m *Model) selectAnnotationNear(x, y int) {
	vp := m.Active()
	if vp == nil || m.store == nil {
		return
	}
	list, err := m.store.List(vp.Series().Name)
	if err != nil {
		m.logger.Warn("annotation lookup failed", "error", err)
		return
	}

	const radius = 4.0
	best := radius * radius
	var pick *annotations.Annotation
	for _, a := range list {
		if a.Frame != vp.FrameIndex() {
			continue
		}
		dx := a.X1 - float64(x)
		dy := a.Y1 - float64(y)
		if d := dx*dx + dy*dy; d <= best {
			best = d
			pick = a
		}
	}
	if pick != nil {
		m.selection.Set(pick)
	} else {
		m.selection.Clear()
	}
}

func (m Model) menuGroups() []string {
	groups := []string{"viewport"}
	if m.selection.Current() != nil {
		groups = append(groups, "annotation")
	}
	return groups
}

func (m Model) checkProps(vp *viewport.Viewport) map[string]any {
	props := map[string]any{"viewportTool": vp.Tool()}
	for k, v := range m.selection.CheckProps() {
		props[k] = v
	}
	return props
}
