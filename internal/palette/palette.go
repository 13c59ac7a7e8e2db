// Package palette implements the command palette: a fuzzy-searchable list
// of every command invokable in the current context.
package palette

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rvail/lumen/internal/command"
)

// CommandSelectedMsg is sent when a command is picked from the palette.
type CommandSelectedMsg struct {
	Name    string
	Context string
}

// Model is the command palette state.
type Model struct {
	textInput textinput.Model

	registry *command.Registry
	bindings map[string]string

	allEntries []Entry
	filtered   []Entry
	cursor     int
	offset     int

	width      int
	height     int
	maxVisible int

	activeContext string
	allContexts   []string
	showAll       bool // false = active context only
}

// New creates a command palette.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search commands..."
	ti.Focus()
	ti.CharLimit = 50
	ti.Width = 40

	return Model{
		textInput:  ti,
		maxVisible: 15,
	}
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.maxVisible = max(5, (height-8)/2)
	m.textInput.Width = min(50, width-10)
}

// Open prepares the palette for display, rebuilding entries for the active
// context.
func (m *Model) Open(reg *command.Registry, activeContext string, allContexts []string, bindings map[string]string) {
	m.registry = reg
	m.bindings = bindings
	m.activeContext = activeContext
	m.allContexts = allContexts

	m.showAll = false
	m.rebuild()

	m.textInput.SetValue("")
	m.textInput.Focus()
	m.cursor = 0
	m.offset = 0
}

// rebuild recomputes the entry list for the current mode and query.
func (m *Model) rebuild() {
	if m.showAll {
		seen := make(map[string]bool)
		m.allEntries = m.allEntries[:0]
		for _, ctx := range m.allContexts {
			for _, e := range BuildEntries(m.registry, ctx, m.bindings) {
				key := e.Name + "\x00" + e.Context
				if seen[key] {
					continue
				}
				seen[key] = true
				m.allEntries = append(m.allEntries, e)
			}
		}
	} else {
		m.allEntries = BuildEntries(m.registry, m.activeContext, m.bindings)
	}
	m.filtered = FilterEntries(m.allEntries, m.textInput.Value())
}

// Query returns the current search query.
func (m Model) Query() string {
	return m.textInput.Value()
}

// Filtered returns the entries matching the query.
func (m Model) Filtered() []Entry {
	return m.filtered
}

// Cursor returns the cursor position within the filtered entries.
func (m Model) Cursor() int {
	return m.cursor
}

// ShowAll reports whether all-contexts mode is active.
func (m Model) ShowAll() bool {
	return m.showAll
}

// Selected returns the entry under the cursor, if any.
func (m Model) Selected() *Entry {
	if m.cursor >= 0 && m.cursor < len(m.filtered) {
		return &m.filtered[m.cursor]
	}
	return nil
}

// Update handles key messages. Esc is left to the parent to close.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyEsc:
		return m, nil

	case tea.KeyEnter:
		entry := m.Selected()
		if entry == nil {
			return m, nil
		}
		selected := *entry
		return m, func() tea.Msg {
			return CommandSelectedMsg{Name: selected.Name, Context: selected.Context}
		}

	case tea.KeyUp, tea.KeyCtrlP:
		m.moveCursor(-1)
		return m, nil

	case tea.KeyDown, tea.KeyCtrlN:
		m.moveCursor(1)
		return m, nil

	case tea.KeyCtrlU:
		m.moveCursor(-m.maxVisible)
		return m, nil

	case tea.KeyCtrlD:
		m.moveCursor(m.maxVisible)
		return m, nil

	case tea.KeyTab:
		m.showAll = !m.showAll
		m.rebuild()
		m.cursor = 0
		m.offset = 0
		return m, nil

	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		m.rebuild()
		m.cursor = 0
		m.offset = 0
		return m, cmd
	}
}

// moveCursor moves the cursor by delta, clamping and keeping it visible.
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if len(m.filtered) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.maxVisible {
		m.offset = m.cursor - m.maxVisible + 1
	}
}
