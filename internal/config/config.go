// Package config loads and persists lumen's JSON configuration and watches
// it for edits while the viewer is running.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	UI            UIConfig          `json:"ui"`
	WindowPresets []WindowPreset    `json:"windowPresets"`
	Keymap        KeymapConfig      `json:"keymap"`
	Annotations   AnnotationsConfig `json:"annotations"`
}

// UIConfig configures viewer appearance and input.
type UIConfig struct {
	MouseEnabled   bool   `json:"mouseEnabled"`
	MenuMaxVisible int    `json:"menuMaxVisible"`
	Colormap       string `json:"colormap"`
	ShowStatusBar  bool   `json:"showStatusBar"`
}

// WindowPreset is a named window/level pair selectable from the menu.
type WindowPreset struct {
	Name   string  `json:"name"`
	Window float64 `json:"window"`
	Level  float64 `json:"level"`
}

// KeymapConfig holds key binding overrides, action name to key.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// AnnotationsConfig configures annotation persistence.
type AnnotationsConfig struct {
	DBPath string `json:"dbPath"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			MouseEnabled:   true,
			MenuMaxVisible: 12,
			Colormap:       "gray",
			ShowStatusBar:  true,
		},
		WindowPresets: []WindowPreset{
			{Name: "full", Window: 255, Level: 128},
			{Name: "soft", Window: 120, Level: 100},
			{Name: "bright", Window: 80, Level: 200},
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		Annotations: AnnotationsConfig{
			DBPath: "annotations.db",
		},
	}
}

// Validate checks the configuration and repairs out-of-range values.
func (c *Config) Validate() error {
	if c.UI.MenuMaxVisible <= 0 {
		c.UI.MenuMaxVisible = 12
	}
	if c.UI.Colormap == "" {
		c.UI.Colormap = "gray"
	}
	for i := range c.WindowPresets {
		if c.WindowPresets[i].Window < 1 {
			c.WindowPresets[i].Window = 1
		}
	}
	if c.Annotations.DBPath == "" {
		c.Annotations.DBPath = "annotations.db"
	}
	return nil
}

// Path returns the config file location, honoring XDG conventions.
func Path() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "lumen", "config.json")
	}
	return filepath.Join(".", "lumen.json")
}

// Load reads the config at path, overlaying it on the defaults. A missing
// file yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
