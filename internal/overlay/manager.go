package overlay

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rvail/lumen/internal/mouse"
)

// instance is a live surface.
type instance struct {
	spec   Spec
	cursor int // selected row (menus)
	scroll int // scroll offset (menus and text bodies)
	input  textinput.Model

	// rect is the surface's box from the last render, used for outside
	// click detection and item hit regions.
	rect mouse.Rect
}

// Manager owns the live surfaces and implements Service. Surfaces stack in
// creation order; the topmost one receives input. All methods run on the UI
// event loop.
type Manager struct {
	logger *slog.Logger
	stack  []*instance
	hits   *mouse.HitMap

	width, height int
	maxVisible    int
}

// NewManager creates an empty overlay manager.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger:     logger,
		hits:       mouse.NewHitMap(),
		maxVisible: 12,
	}
}

// SetSize records the screen size used for clamping and centering.
func (m *Manager) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetMaxVisible caps how many menu rows show before scrolling.
func (m *Manager) SetMaxVisible(n int) {
	if n > 0 {
		m.maxVisible = n
	}
}

// Active reports whether any surface is visible.
func (m *Manager) Active() bool {
	return len(m.stack) > 0
}

// Top returns the id of the topmost surface, or "".
func (m *Manager) Top() string {
	if len(m.stack) == 0 {
		return ""
	}
	return m.stack[len(m.stack)-1].spec.ID
}

// Create implements Service.
func (m *Manager) Create(spec Spec) error {
	if err := spec.validate(); err != nil {
		return err
	}

	// Replace a surface already holding this id.
	m.remove(spec.ID)

	inst := &instance{spec: spec}
	if spec.Kind == KindPrompt {
		ti := textinput.New()
		ti.Placeholder = spec.Placeholder
		ti.SetValue(spec.Initial)
		ti.CharLimit = 120
		ti.Focus()
		inst.input = ti
	}
	m.stack = append(m.stack, inst)

	m.logger.Debug("overlay created", "id", spec.ID, "kind", int(spec.Kind))
	return nil
}

// Dismiss implements Service.
func (m *Manager) Dismiss(id string) {
	if m.remove(id) {
		m.logger.Debug("overlay dismissed", "id", id)
	}
}

// remove drops the surface with the given id. Reports whether one existed.
func (m *Manager) remove(id string) bool {
	for i, inst := range m.stack {
		if inst.spec.ID == id {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return true
		}
	}
	return false
}

// close removes the topmost surface on a user action and fires its OnClose.
func (m *Manager) close(inst *instance) {
	m.remove(inst.spec.ID)
	if inst.spec.OnClose != nil {
		inst.spec.OnClose()
	}
}

// HandleKey routes a key event to the topmost surface. Returns true when
// the event was consumed and must not reach the view below.
func (m *Manager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if len(m.stack) == 0 {
		return false, nil
	}
	inst := m.stack[len(m.stack)-1]

	switch inst.spec.Kind {
	case KindMenu:
		m.handleMenuKey(inst, msg)
		return true, nil
	case KindPrompt:
		return true, m.handlePromptKey(inst, msg)
	case KindText:
		m.handleTextKey(inst, msg)
		return true, nil
	}
	return true, nil
}

func (m *Manager) handleMenuKey(inst *instance, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.close(inst)
	case tea.KeyUp, tea.KeyCtrlP:
		m.moveCursor(inst, -1)
	case tea.KeyDown, tea.KeyCtrlN:
		m.moveCursor(inst, 1)
	case tea.KeyEnter:
		m.selectItem(inst, inst.cursor)
	case tea.KeyRunes:
		if string(msg.Runes) == "q" {
			m.close(inst)
		}
	}
}

func (m *Manager) handlePromptKey(inst *instance, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.close(inst)
		return nil
	case tea.KeyEnter:
		value := inst.input.Value()
		m.remove(inst.spec.ID)
		if inst.spec.OnSubmit != nil {
			inst.spec.OnSubmit(value)
		}
		return nil
	}

	var cmd tea.Cmd
	inst.input, cmd = inst.input.Update(msg)
	return cmd
}

func (m *Manager) handleTextKey(inst *instance, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.close(inst)
	case tea.KeyUp:
		if inst.scroll > 0 {
			inst.scroll--
		}
	case tea.KeyDown:
		inst.scroll++
	case tea.KeyRunes:
		if string(msg.Runes) == "q" {
			m.close(inst)
		}
	}
}

// HandleMouse routes a mouse event to the topmost surface. Returns true when
// the event was consumed.
func (m *Manager) HandleMouse(msg tea.MouseMsg) bool {
	if len(m.stack) == 0 {
		return false
	}
	inst := m.stack[len(m.stack)-1]

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft, tea.MouseButtonRight:
			if !inst.rect.Contains(msg.X, msg.Y) {
				// Outside interaction closes the surface. The press is
				// still consumed; the click does not fall through.
				m.close(inst)
				return true
			}
			if inst.spec.Kind == KindMenu {
				if region := m.hits.Test(msg.X, msg.Y); region != nil {
					if v, ok := region.Data.(int); ok {
						if region.ID == inst.spec.ID+":scroll" {
							m.moveCursor(inst, v)
						} else {
							m.selectItem(inst, v)
						}
					}
				}
			}
			return true
		case tea.MouseButtonWheelUp:
			if inst.spec.Kind == KindMenu {
				m.moveCursor(inst, -1)
			} else if inst.scroll > 0 {
				inst.scroll--
			}
			return true
		case tea.MouseButtonWheelDown:
			if inst.spec.Kind == KindMenu {
				m.moveCursor(inst, 1)
			} else {
				inst.scroll++
			}
			return true
		}

	case tea.MouseActionMotion:
		if inst.spec.Kind == KindMenu {
			region := m.hits.Test(msg.X, msg.Y)
			if region != nil && region.ID == inst.spec.ID+":row" {
				if idx, ok := region.Data.(int); ok {
					inst.cursor = idx
				}
			}
		}
		return true
	}

	return true
}

// moveCursor moves a menu cursor by delta, clamping and keeping it visible.
func (m *Manager) moveCursor(inst *instance, delta int) {
	n := len(inst.spec.Items)
	if n == 0 {
		return
	}
	inst.cursor += delta
	if inst.cursor < 0 {
		inst.cursor = 0
	}
	if inst.cursor >= n {
		inst.cursor = n - 1
	}
	if inst.cursor < inst.scroll {
		inst.scroll = inst.cursor
	}
	if inst.cursor >= inst.scroll+m.maxVisible {
		inst.scroll = inst.cursor - m.maxVisible + 1
	}
}

// selectItem routes a selected menu row to exactly one callback. Navigation
// nodes only navigate; a descriptor with a submenu target never also
// executes commands. Leaf selection removes the surface before dispatch so
// command side effects happen with the menu already gone.
func (m *Manager) selectItem(inst *instance, idx int) {
	if idx < 0 || idx >= len(inst.spec.Items) {
		return
	}
	it := inst.spec.Items[idx]

	switch {
	case it.IsSubMenu:
		// The navigation callback replaces this surface itself
		// (dismiss-then-create under the same id).
		if inst.spec.OnSubMenu != nil {
			inst.spec.OnSubMenu(it)
		}
	case it.HasBatch:
		m.remove(inst.spec.ID)
		if inst.spec.OnRunCommands != nil {
			inst.spec.OnRunCommands(it)
		}
	default:
		m.remove(inst.spec.ID)
		if inst.spec.OnDefault != nil {
			inst.spec.OnDefault(it)
		}
	}
}
