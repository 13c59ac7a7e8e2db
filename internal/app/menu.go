package app

import (
	"github.com/rvail/lumen/internal/command"
	"github.com/rvail/lumen/internal/config"
	"github.com/rvail/lumen/internal/menu"
	"github.com/rvail/lumen/internal/viewport"
)

// MenuGroups returns the built-in context menu definition. The viewport
// group is always shown; annotation items appear when a selection exists
// and gate on the tool that produced it.
func MenuGroups(presets []menu.ItemDescriptor) []menu.Group {
	viewportItems := []menu.ItemDef{
		{ItemDescriptor: menu.ItemDescriptor{
			ID:      "rotate",
			Label:   "Rotate 90°",
			Command: menu.CommandRef{Name: "rotate-viewport", Context: "viewer"},
		}},
		{ItemDescriptor: menu.ItemDescriptor{
			ID:      "flip-h",
			Label:   "Flip horizontal",
			Command: menu.CommandRef{Name: "flip-viewport", Context: "viewer"},
		}},
		{ItemDescriptor: menu.ItemDescriptor{
			ID:      "flip-v",
			Label:   "Flip vertical",
			Command: menu.CommandRef{
				Name:    "flip-viewport",
				Context: "viewer",
				Options: command.Options{"axis": "vertical"},
			},
		}},
		{ItemDescriptor: menu.ItemDescriptor{
			ID:      "window-presets",
			Label:   "Window presets",
			SubMenu: "window-presets",
		}},
		{ItemDescriptor: menu.ItemDescriptor{
			ID:      "colormaps",
			Label:   "Colormap",
			SubMenu: "colormaps",
		}},
		{ItemDescriptor: menu.ItemDescriptor{
			ID:      "metadata",
			Label:   "Frame metadata",
			Command: menu.CommandRef{Name: "show-metadata", Context: "viewer"},
		}},
		{ItemDescriptor: menu.ItemDescriptor{
			ID:      "reset",
			Label:   "Reset view",
			Command: menu.CommandRef{Name: "reset-viewport", Context: "viewer"},
		}},
	}

	annotationItems := []menu.ItemDef{
		{
			ItemDescriptor: menu.ItemDescriptor{
				ID:      "label",
				Label:   "Label annotation",
				Command: menu.CommandRef{Name: "set-annotation-label", Context: "viewer"},
			},
		},
		{
			ItemDescriptor: menu.ItemDescriptor{
				ID:      "copy",
				Label:   "Copy measurement",
				Command: menu.CommandRef{Name: "copy-measurement", Context: "viewer"},
			},
			When: menu.ToolIs(viewport.ToolMeasure),
		},
		{
			ItemDescriptor: menu.ItemDescriptor{
				ID:      "delete",
				Label:   "Delete annotation",
				Command: menu.CommandRef{Name: "delete-annotation", Context: "viewer"},
			},
			When: menu.HasKey("tool"),
		},
	}

	colormapItems := make([]menu.ItemDef, 0, len(viewport.Colormaps()))
	for _, name := range viewport.Colormaps() {
		colormapItems = append(colormapItems, menu.ItemDef{
			ItemDescriptor: menu.ItemDescriptor{
				ID:    "colormap-" + name,
				Label: name,
				Command: menu.CommandRef{
					Name:    "set-colormap",
					Context: "viewer",
					Options: command.Options{"colormap": name},
				},
			},
		})
	}

	presetItems := make([]menu.ItemDef, 0, len(presets))
	for _, p := range presets {
		presetItems = append(presetItems, menu.ItemDef{ItemDescriptor: p})
	}

	return []menu.Group{
		{ID: "viewport", Items: viewportItems},
		{ID: "annotation", Items: annotationItems},
		{ID: "colormaps", Items: colormapItems},
		{ID: "window-presets", Items: presetItems},
	}
}

// PresetItems converts window presets from the config into submenu entries.
func PresetItems(presets []config.WindowPreset) []menu.ItemDescriptor {
	out := make([]menu.ItemDescriptor, 0, len(presets))
	for _, p := range presets {
		out = append(out, menu.ItemDescriptor{
			ID:    "preset-" + p.Name,
			Label: p.Name,
			Command: menu.CommandRef{
				Name:    "set-window-level",
				Context: "viewer",
				Options: command.Options{"window": p.Window, "level": p.Level},
			},
		})
	}
	return out
}
