package overlay

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func blankScreen(w, h int) string {
	line := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = line
	}
	return strings.Join(rows, "\n")
}

func menuSpec(id string, onRun, onSub, onDef func(Item)) Spec {
	return Spec{
		ID:   id,
		Kind: KindMenu,
		X:    2, Y: 2,
		Items: []Item{
			{ID: "leaf", Label: "Leaf"},
			{ID: "nav", Label: "Nav", IsSubMenu: true},
			{ID: "batch", Label: "Batch", HasBatch: true},
		},
		OnRunCommands: onRun,
		OnSubMenu:     onSub,
		OnDefault:     onDef,
	}
}

func TestManager_Create_Validation(t *testing.T) {
	m := NewManager(nil)

	if err := m.Create(Spec{Kind: KindMenu}); err == nil {
		t.Error("spec without id must be rejected")
	}
	if err := m.Create(Spec{ID: "m", Kind: KindMenu}); err == nil {
		t.Error("menu without items must be rejected")
	}
	if m.Active() {
		t.Error("rejected create must leave no surface")
	}
}

func TestManager_Create_ReplacesSameID(t *testing.T) {
	m := NewManager(nil)

	first := menuSpec("ctx", nil, nil, nil)
	second := menuSpec("ctx", nil, nil, nil)
	second.Items = second.Items[:1]

	if err := m.Create(first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := m.Create(second); err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(m.stack) != 1 {
		t.Fatalf("stack holds %d surfaces, want 1 (same id replaces)", len(m.stack))
	}
	if len(m.stack[0].spec.Items) != 1 {
		t.Error("replacement should carry the new spec")
	}
}

func TestManager_Dismiss_UnknownIDIsNoOp(t *testing.T) {
	m := NewManager(nil)
	m.Dismiss("missing")
	if m.Active() {
		t.Error("no surface should exist")
	}
}

func TestManager_SelectRouting(t *testing.T) {
	var got []string
	mark := func(tag string) func(Item) {
		return func(it Item) { got = append(got, tag+":"+it.ID) }
	}

	for _, tt := range []struct {
		cursor int
		want   string
	}{
		{0, "default:leaf"},
		{1, "submenu:nav"},
		{2, "batch:batch"},
	} {
		got = nil
		m := NewManager(nil)
		m.SetSize(80, 24)
		if err := m.Create(menuSpec("ctx", mark("batch"), mark("submenu"), mark("default"))); err != nil {
			t.Fatalf("create: %v", err)
		}
		m.stack[0].cursor = tt.cursor

		m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("cursor %d routed to %v, want [%s]", tt.cursor, got, tt.want)
		}
	}
}

func TestManager_SubMenuSelectionKeepsSurfaceForReplacement(t *testing.T) {
	m := NewManager(nil)
	m.SetSize(80, 24)

	replaced := false
	spec := menuSpec("ctx", nil, func(Item) {
		// A navigation callback normally replaces the surface itself.
		replaced = true
	}, nil)
	m.Create(spec)
	m.stack[0].cursor = 1

	m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if !replaced {
		t.Fatal("OnSubMenu not fired")
	}
	if !m.Active() {
		t.Error("navigation must not remove the surface; the callback replaces it")
	}
}

func TestManager_LeafSelectionRemovesSurfaceBeforeDispatch(t *testing.T) {
	m := NewManager(nil)
	m.SetSize(80, 24)

	var activeDuringDispatch bool
	spec := menuSpec("ctx", nil, nil, func(Item) {
		activeDuringDispatch = m.Active()
	})
	m.Create(spec)

	m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if activeDuringDispatch {
		t.Error("surface should be gone before the command runs")
	}
}

func TestManager_EscapeClosesAndFiresOnClose(t *testing.T) {
	m := NewManager(nil)
	closed := false
	spec := menuSpec("ctx", nil, nil, nil)
	spec.OnClose = func() { closed = true }
	m.Create(spec)

	m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})

	if m.Active() {
		t.Error("escape must dismiss the surface")
	}
	if !closed {
		t.Error("escape must fire OnClose")
	}
}

func TestManager_ProgrammaticDismissDoesNotFireOnClose(t *testing.T) {
	m := NewManager(nil)
	closed := false
	spec := menuSpec("ctx", nil, nil, nil)
	spec.OnClose = func() { closed = true }
	m.Create(spec)

	m.Dismiss("ctx")

	if closed {
		t.Error("Dismiss must not fire OnClose")
	}
}

func TestManager_OutsideClickCloses(t *testing.T) {
	m := NewManager(nil)
	m.SetSize(80, 24)
	closed := false
	spec := menuSpec("ctx", nil, nil, nil)
	spec.OnClose = func() { closed = true }
	m.Create(spec)

	// Render to establish the surface rect.
	m.Render(blankScreen(80, 24))

	consumed := m.HandleMouse(tea.MouseMsg{
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
		X:      70, Y: 22,
	})

	if !consumed {
		t.Error("outside click must still be consumed")
	}
	if m.Active() {
		t.Error("outside click must dismiss the surface")
	}
	if !closed {
		t.Error("outside click must fire OnClose")
	}
}

func TestManager_ClickOnRowSelects(t *testing.T) {
	m := NewManager(nil)
	m.SetSize(80, 24)
	var selected string
	m.Create(menuSpec("ctx", nil, nil, func(it Item) { selected = it.ID }))
	m.Render(blankScreen(80, 24))

	// The menu was requested at (2, 2); first row sits inside the border.
	consumed := m.HandleMouse(tea.MouseMsg{
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
		X:      5, Y: 3,
	})

	if !consumed {
		t.Error("click on the surface must be consumed")
	}
	if selected != "leaf" {
		t.Errorf("selected %q, want leaf", selected)
	}
}

func TestManager_CursorNavigationClamps(t *testing.T) {
	m := NewManager(nil)
	m.SetSize(80, 24)
	m.Create(menuSpec("ctx", nil, nil, nil))

	m.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.stack[0].cursor != 0 {
		t.Errorf("cursor = %d, want clamped at 0", m.stack[0].cursor)
	}

	for i := 0; i < 10; i++ {
		m.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.stack[0].cursor != 2 {
		t.Errorf("cursor = %d, want clamped at last row 2", m.stack[0].cursor)
	}
}

func TestManager_ScrollIndicatorRowsScrollInsteadOfSelecting(t *testing.T) {
	m := NewManager(nil)
	m.SetSize(80, 24)
	m.SetMaxVisible(4)

	items := make([]Item, 10)
	for i := range items {
		items[i] = Item{ID: fmt.Sprintf("item%d", i), Label: fmt.Sprintf("Item %d", i)}
	}
	var selected string
	m.Create(Spec{
		ID: "ctx", Kind: KindMenu, X: 2, Y: 2,
		Items:     items,
		OnDefault: func(it Item) { selected = it.ID },
	})

	for i := 0; i < 5; i++ {
		m.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.stack[0].scroll == 0 {
		t.Fatal("cursor movement should have scrolled the menu")
	}
	m.Render(blankScreen(80, 24))

	// The top visible row is painted as the up indicator. Clicking it must
	// move the cursor up, never select the half-hidden item underneath.
	m.HandleMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 5, Y: 3})
	if selected != "" {
		t.Fatalf("up-indicator click selected %q", selected)
	}
	if m.stack[0].cursor != 4 {
		t.Errorf("cursor = %d, want 4 after the up indicator", m.stack[0].cursor)
	}

	// Same for the bottom row and the down indicator.
	m.Render(blankScreen(80, 24))
	m.HandleMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 5, Y: 6})
	if selected != "" {
		t.Fatalf("down-indicator click selected %q", selected)
	}
	if m.stack[0].cursor != 5 {
		t.Errorf("cursor = %d, want 5 after the down indicator", m.stack[0].cursor)
	}

	// Hovering an indicator must not jump the cursor either.
	m.Render(blankScreen(80, 24))
	m.HandleMouse(tea.MouseMsg{Action: tea.MouseActionMotion, X: 5, Y: 3})
	if m.stack[0].cursor != 5 {
		t.Errorf("cursor = %d after hovering the indicator, want 5", m.stack[0].cursor)
	}
}

func TestManager_PromptSubmit(t *testing.T) {
	m := NewManager(nil)
	m.SetSize(80, 24)

	var got string
	m.Create(Spec{
		ID:       "label-edit",
		Kind:     KindPrompt,
		Initial:  "femur",
		OnSubmit: func(v string) { got = v },
	})

	_, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if got != "femur" {
		t.Errorf("submitted %q, want femur", got)
	}
	if m.Active() {
		t.Error("prompt must close on submit")
	}
}
