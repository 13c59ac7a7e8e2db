package mouse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRect_Contains(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		x, y int
		want bool
	}{
		{"inside", Rect{2, 2, 10, 5}, 5, 4, true},
		{"top-left corner", Rect{2, 2, 10, 5}, 2, 2, true},
		{"right edge exclusive", Rect{2, 2, 10, 5}, 12, 3, false},
		{"bottom edge exclusive", Rect{2, 2, 10, 5}, 5, 7, false},
		{"outside", Rect{2, 2, 10, 5}, 0, 0, false},
		{"empty rect", Rect{2, 2, 0, 0}, 2, 2, false},
	}

	for _, tt := range tests {
		if got := tt.r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: (%+v).Contains(%d, %d) = %v, want %v", tt.name, tt.r, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitMap_TopmostWins(t *testing.T) {
	h := NewHitMap()
	h.AddRect("below", 0, 0, 20, 20, nil)
	h.AddRect("above", 5, 5, 5, 5, "payload")

	got := h.Test(6, 6)
	if got == nil || got.ID != "above" {
		t.Fatalf("Test(6,6) = %v, want region %q", got, "above")
	}
	if got.Data != "payload" {
		t.Errorf("region data = %v, want %q", got.Data, "payload")
	}

	if got := h.Test(1, 1); got == nil || got.ID != "below" {
		t.Errorf("Test(1,1) = %v, want region %q", got, "below")
	}
	if got := h.Test(50, 50); got != nil {
		t.Errorf("Test(50,50) = %v, want nil", got)
	}
}

func TestHandler_RightClick(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("vp-0", 0, 0, 40, 20, nil)

	act := h.Handle(tea.MouseMsg{
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonRight,
		X:      10, Y: 5,
	})
	if act.Type != ActionRightClick {
		t.Fatalf("action type = %d, want ActionRightClick", act.Type)
	}
	if act.Region == nil || act.Region.ID != "vp-0" {
		t.Errorf("region = %v, want vp-0", act.Region)
	}
	if act.X != 10 || act.Y != 5 {
		t.Errorf("coords = (%d, %d), want (10, 5)", act.X, act.Y)
	}
}

func TestHandler_DoubleClick(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("item", 0, 0, 10, 1, nil)

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 1, Y: 0}

	if act := h.Handle(press); act.Type != ActionClick {
		t.Fatalf("first press = %d, want ActionClick", act.Type)
	}
	if act := h.Handle(press); act.Type != ActionDoubleClick {
		t.Fatalf("second press = %d, want ActionDoubleClick", act.Type)
	}
	// Third press starts a fresh click cycle.
	if act := h.Handle(press); act.Type != ActionClick {
		t.Errorf("third press = %d, want ActionClick", act.Type)
	}
}

func TestHandler_Drag(t *testing.T) {
	h := NewHandler()
	h.StartDrag(10, 10, "vp-0")

	if !h.Dragging() {
		t.Fatal("Dragging() = false after StartDrag")
	}

	act := h.Handle(tea.MouseMsg{Action: tea.MouseActionMotion, X: 14, Y: 7})
	if act.Type != ActionDrag {
		t.Fatalf("motion while dragging = %d, want ActionDrag", act.Type)
	}
	if act.DragDX != 4 || act.DragDY != -3 {
		t.Errorf("drag delta = (%d, %d), want (4, -3)", act.DragDX, act.DragDY)
	}

	act = h.Handle(tea.MouseMsg{Action: tea.MouseActionRelease, X: 14, Y: 7})
	if act.Type != ActionDragEnd {
		t.Fatalf("release while dragging = %d, want ActionDragEnd", act.Type)
	}
	if h.Dragging() {
		t.Error("Dragging() = true after release")
	}
}

func TestHandler_Scroll(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("vp-0", 0, 0, 40, 20, nil)

	up := h.Handle(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp, X: 3, Y: 3})
	if up.Type != ActionScrollUp || up.Delta != -1 {
		t.Errorf("wheel up = (%d, delta %d), want (ActionScrollUp, -1)", up.Type, up.Delta)
	}

	down := h.Handle(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown, X: 3, Y: 3})
	if down.Type != ActionScrollDown || down.Delta != 1 {
		t.Errorf("wheel down = (%d, delta %d), want (ActionScrollDown, 1)", down.Type, down.Delta)
	}
}
