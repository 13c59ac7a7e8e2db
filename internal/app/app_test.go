package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rvail/lumen/internal/annotations"
	"github.com/rvail/lumen/internal/command"
	"github.com/rvail/lumen/internal/config"
	"github.com/rvail/lumen/internal/menu"
	"github.com/rvail/lumen/internal/mouse"
	"github.com/rvail/lumen/internal/overlay"
	"github.com/rvail/lumen/internal/viewport"
)

func TestBindKeys_OverrideReplacesDefault(t *testing.T) {
	keys := bindKeys(map[string]string{"rotate-viewport": "R"})
	if keys["R"] != "rotate-viewport" {
		t.Errorf("override not applied: %v", keys)
	}
	if _, ok := keys["r"]; ok {
		t.Error("default binding should be dropped when its command is rebound")
	}
	if keys["f"] != "flip-viewport" {
		t.Error("untouched defaults must survive")
	}
}

func TestMenuGroups_Shape(t *testing.T) {
	presets := PresetItems(config.Default().WindowPresets)
	groups := MenuGroups(presets)

	byID := make(map[string]menu.Group)
	for _, g := range groups {
		byID[g.ID] = g
	}
	for _, id := range []string{"viewport", "annotation", "colormaps", "window-presets"} {
		if _, ok := byID[id]; !ok {
			t.Errorf("missing group %q", id)
		}
	}
	if len(byID["window-presets"].Items) != len(presets) {
		t.Error("preset submenu should mirror the config presets")
	}

	// Submenu entries navigate instead of executing.
	for _, it := range byID["viewport"].Items {
		if it.SubMenu != "" && it.Command.Name != "" {
			t.Errorf("item %s both navigates and executes", it.ID)
		}
	}
}

func TestPresetItems_CarryOptions(t *testing.T) {
	items := PresetItems([]config.WindowPreset{{Name: "soft", Window: 120, Level: 100}})
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	opts := items[0].Command.Options
	if opts["window"] != 120.0 || opts["level"] != 100.0 {
		t.Errorf("options = %v", opts)
	}
	if items[0].Command.Name != "set-window-level" {
		t.Errorf("command = %q", items[0].Command.Name)
	}
}

func TestMenuGroups_AnnotationGating(t *testing.T) {
	src := menu.NewStaticSource(MenuGroups(nil)...)

	items := src.MenuItems(map[string]any{"tool": "measure"}, nil, []string{"annotation"}, nil, "")
	ids := make(map[string]bool)
	for _, it := range items {
		ids[it.ID] = true
	}
	if !ids["copy"] || !ids["delete"] || !ids["label"] {
		t.Errorf("measure-tool selection should expose all annotation items, got %v", ids)
	}

	items = src.MenuItems(map[string]any{"tool": "pan"}, nil, []string{"annotation"}, nil, "")
	ids = make(map[string]bool)
	for _, it := range items {
		ids[it.ID] = true
	}
	if ids["copy"] {
		t.Error("copy-measurement only applies to measure annotations")
	}
	if !ids["delete"] {
		t.Error("delete should stay visible for any selected annotation")
	}
}

// dragModel builds a model with one placed viewport and a registry whose
// adjust-window-level command applies straight to that viewport.
func dragModel(t *testing.T) (Model, *viewport.Viewport) {
	t.Helper()
	vp := viewport.New("vp0", &viewport.Series{Name: "s"})
	vp.SetRect(mouse.Rect{X: 0, Y: 0, W: 40, H: 20})

	reg := command.NewRegistry()
	err := reg.Register(command.Command{
		Name:    "adjust-window-level",
		Context: "viewer",
		Handler: func(opts command.Options) (any, error) {
			dw, _ := opts["dWindow"].(float64)
			dl, _ := opts["dLevel"].(float64)
			vp.AdjustWindowLevel(dw, dl)
			return nil, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	m := New(config.Default(), NewFocus([]*viewport.Viewport{vp}), reg,
		&annotations.Selection{}, nil, nil, overlay.NewManager(nil), nil)
	return m, vp
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestHandleMouse_DragAdjustsWindowLevel(t *testing.T) {
	m, vp := dragModel(t)
	w0, l0 := vp.WindowLevel()

	m = step(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 10, Y: 5})
	m = step(t, m, tea.MouseMsg{Action: tea.MouseActionMotion, X: 13, Y: 3})

	w, l := vp.WindowLevel()
	if w != w0+6 {
		t.Errorf("window = %v, want %v after dragging 3 cells right", w, w0+6)
	}
	if l != l0+4 {
		t.Errorf("level = %v, want %v after dragging 2 cells up", l, l0+4)
	}

	// Further motion applies only the new step, not the whole offset again.
	m = step(t, m, tea.MouseMsg{Action: tea.MouseActionMotion, X: 14, Y: 3})
	if w, _ = vp.WindowLevel(); w != w0+8 {
		t.Errorf("window = %v, want %v after one more cell", w, w0+8)
	}

	// Release ends the drag; trailing motion is plain hover.
	m = step(t, m, tea.MouseMsg{Action: tea.MouseActionRelease, X: 14, Y: 3})
	m = step(t, m, tea.MouseMsg{Action: tea.MouseActionMotion, X: 30, Y: 10})
	if w, _ = vp.WindowLevel(); w != w0+8 {
		t.Errorf("window changed to %v after the drag ended", w)
	}
}

func TestHandleMouse_PressOutsideViewportDoesNotDrag(t *testing.T) {
	m, vp := dragModel(t)
	w0, _ := vp.WindowLevel()

	m = step(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 50, Y: 25})
	_ = step(t, m, tea.MouseMsg{Action: tea.MouseActionMotion, X: 55, Y: 28})

	if w, _ := vp.WindowLevel(); w != w0 {
		t.Errorf("window = %v, want %v when the press missed every viewport", w, w0)
	}
}

func TestBindKeys_NoOverrides(t *testing.T) {
	keys := bindKeys(nil)
	if len(keys) != len(defaultKeys) {
		t.Errorf("got %d keys, want %d", len(keys), len(defaultKeys))
	}
}
