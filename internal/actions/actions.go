// Package actions registers the built-in viewer commands against the
// command registry. Handlers operate on the active viewport, the annotation
// store, and the overlay surface through the Deps bundle.
package actions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/atotto/clipboard"

	"github.com/rvail/lumen/internal/annotations"
	"github.com/rvail/lumen/internal/command"
	"github.com/rvail/lumen/internal/overlay"
	"github.com/rvail/lumen/internal/styles"
	"github.com/rvail/lumen/internal/viewport"
)

// Deps carries what the command handlers need at call time. Active is a
// lookup so handlers always see the focused viewport, not the one focused
// at registration.
type Deps struct {
	Active    func() *viewport.Viewport
	Store     *annotations.Store
	Selection *annotations.Selection
	Overlays  overlay.Service
	Logger    *slog.Logger
}

// Register installs all built-in commands. Viewport commands carry the
// "viewer" context; frame scrolling is additionally registered for the
// series browser, which shares its handler.
func Register(reg *command.Registry, deps Deps) error {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	cmds := []command.Command{
		{Name: "rotate-viewport", Context: "viewer", Bound: command.Options{"degrees": 90}, Handler: deps.rotateViewport},
		{Name: "flip-viewport", Context: "viewer", Bound: command.Options{"axis": "horizontal"}, Handler: deps.flipViewport},
		{Name: "set-window-level", Context: "viewer", Handler: deps.setWindowLevel},
		{Name: "adjust-window-level", Context: "viewer", Handler: deps.adjustWindowLevel},
		{Name: "scroll-frames", Context: "viewer", Bound: command.Options{"delta": 1}, Handler: deps.scrollFrames},
		{Name: "scroll-frames", Context: "browser", Bound: command.Options{"delta": 1}, Handler: deps.scrollFrames},
		{Name: "set-colormap", Context: "viewer", Handler: deps.setColormap},
		{Name: "activate-tool", Context: "viewer", Handler: deps.activateTool},
		{Name: "reset-viewport", Context: "viewer", Handler: deps.resetViewport},
		{Name: "get-viewport-state", Context: "viewer", Handler: deps.viewportState},
		{Name: "set-annotation-label", Context: "viewer", Handler: deps.setAnnotationLabel},
		{Name: "delete-annotation", Context: "viewer", Handler: deps.deleteAnnotation},
		{Name: "copy-measurement", Context: "viewer", Handler: deps.copyMeasurement},
		{Name: "show-metadata", Context: "viewer", Handler: deps.showMetadata},
	}
	for _, c := range cmds {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register %s: %w", c.Name, err)
		}
	}
	return nil
}

func (d Deps) viewport() (*viewport.Viewport, error) {
	if d.Active == nil {
		return nil, fmt.Errorf("no active viewport")
	}
	vp := d.Active()
	if vp == nil {
		return nil, fmt.Errorf("no active viewport")
	}
	return vp, nil
}

func (d Deps) rotateViewport(opts command.Options) (any, error) {
	vp, err := d.viewport()
	if err != nil {
		return nil, err
	}
	vp.Rotate(intOpt(opts, "degrees", 90))
	return vp.Rotation(), nil
}

func (d Deps) flipViewport(opts command.Options) (any, error) {
	vp, err := d.viewport()
	if err != nil {
		return nil, err
	}
	switch axis := stringOpt(opts, "axis", "horizontal"); axis {
	case "horizontal":
		vp.FlipHorizontal()
	case "vertical":
		vp.FlipVertical()
	default:
		return nil, fmt.Errorf("flip-viewport: unknown axis %q", axis)
	}
	return nil, nil
}

func (d Deps) setWindowLevel(opts command.Options) (any, error) {
	vp, err := d.viewport()
	if err != nil {
		return nil, err
	}
	w, l := vp.WindowLevel()
	vp.SetWindowLevel(floatOpt(opts, "window", w), floatOpt(opts, "level", l))
	return nil, nil
}

func (d Deps) adjustWindowLevel(opts command.Options) (any, error) {
	vp, err := d.viewport()
	if err != nil {
		return nil, err
	}
	vp.AdjustWindowLevel(floatOpt(opts, "dWindow", 0), floatOpt(opts, "dLevel", 0))
	return nil, nil
}

func (d Deps) scrollFrames(opts command.Options) (any, error) {
	vp, err := d.viewport()
	if err != nil {
		return nil, err
	}
	vp.ScrollFrames(intOpt(opts, "delta", 1))
	return vp.FrameIndex(), nil
}

func (d Deps) setColormap(opts command.Options) (any, error) {
	vp, err := d.viewport()
	if err != nil {
		return nil, err
	}
	name := stringOpt(opts, "colormap", "")
	if name == "" {
		return nil, fmt.Errorf("set-colormap: missing colormap option")
	}
	return nil, vp.SetColormap(name)
}

func (d Deps) activateTool(opts command.Options) (any, error) {
	vp, err := d.viewport()
	if err != nil {
		return nil, err
	}
	name := stringOpt(opts, "tool", "")
	if name == "" {
		return nil, fmt.Errorf("activate-tool: missing tool option")
	}
	vp.ActivateTool(name)
	return nil, nil
}

func (d Deps) resetViewport(opts command.Options) (any, error) {
	vp, err := d.viewport()
	if err != nil {
		return nil, err
	}
	vp.Reset()
	return nil, nil
}

func (d Deps) viewportState(opts command.Options) (any, error) {
	vp, err := d.viewport()
	if err != nil {
		return nil, err
	}
	return vp.State(), nil
}

// selected resolves the annotation named by the forwarded annotationID,
// falling back to the current selection.
func (d Deps) selected(opts command.Options) (*annotations.Annotation, error) {
	if id := stringOpt(opts, "annotationID", ""); id != "" && d.Store != nil {
		a, err := d.Store.Get(id)
		if err != nil {
			return nil, err
		}
		if a != nil {
			return a, nil
		}
	}
	if d.Selection != nil {
		if a := d.Selection.Current(); a != nil {
			return a, nil
		}
	}
	return nil, fmt.Errorf("no annotation selected")
}

func (d Deps) setAnnotationLabel(opts command.Options) (any, error) {
	a, err := d.selected(opts)
	if err != nil {
		return nil, err
	}
	if label, ok := opts["label"].(string); ok {
		return nil, d.Store.SetLabel(a.ID, label)
	}
	if d.Overlays == nil {
		return nil, fmt.Errorf("set-annotation-label: no overlay surface")
	}
	id := a.ID
	return nil, d.Overlays.Create(overlay.Spec{
		ID:          "annotation-label",
		Kind:        overlay.KindPrompt,
		Title:       "Label annotation",
		X:           -1,
		Y:           -1,
		Placeholder: "label",
		Initial:     a.Label,
		OnSubmit: func(text string) {
			if err := d.Store.SetLabel(id, text); err != nil {
				d.Logger.Error("label annotation", "id", id, "error", err)
			}
		},
	})
}

func (d Deps) deleteAnnotation(opts command.Options) (any, error) {
	a, err := d.selected(opts)
	if err != nil {
		return nil, err
	}
	if err := d.Store.Delete(a.ID); err != nil {
		return nil, err
	}
	if d.Selection != nil && d.Selection.Current() != nil && d.Selection.Current().ID == a.ID {
		d.Selection.Clear()
	}
	return nil, nil
}

func (d Deps) copyMeasurement(opts command.Options) (any, error) {
	a, err := d.selected(opts)
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf("%.2f %s", a.Value, a.Unit)
	if a.Label != "" {
		text = a.Label + ": " + text
	}
	if err := clipboard.WriteAll(text); err != nil {
		return nil, fmt.Errorf("copy measurement: %w", err)
	}
	return text, nil
}

func (d Deps) showMetadata(opts command.Options) (any, error) {
	vp, err := d.viewport()
	if err != nil {
		return nil, err
	}
	if d.Overlays == nil {
		return nil, fmt.Errorf("show-metadata: no overlay surface")
	}
	meta := vp.State()
	if frame := vp.CurrentFrame(); frame != nil {
		meta["path"] = frame.Path
		meta["size"] = frame.Size
	}
	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(raw), "json", "terminal256", styles.SyntaxTheme); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	return nil, d.Overlays.Create(overlay.Spec{
		ID:    "frame-metadata",
		Kind:  overlay.KindText,
		Title: "Frame metadata",
		X:     -1,
		Y:     -1,
		Body:  buf.String(),
	})
}

func intOpt(opts command.Options, key string, def int) int {
	switch v := opts[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

func floatOpt(opts command.Options, key string, def float64) float64 {
	switch v := opts[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func stringOpt(opts command.Options, key, def string) string {
	if v, ok := opts[key].(string); ok {
		return v
	}
	return def
}
