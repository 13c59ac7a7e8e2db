package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rvail/lumen/internal/actions"
	"github.com/rvail/lumen/internal/annotations"
	"github.com/rvail/lumen/internal/app"
	"github.com/rvail/lumen/internal/command"
	"github.com/rvail/lumen/internal/config"
	"github.com/rvail/lumen/internal/menu"
	"github.com/rvail/lumen/internal/overlay"
	"github.com/rvail/lumen/internal/viewport"
)

// Version is set at build time via ldflags.
var Version = ""

var (
	configPath  = flag.String("config", "", "path to config file")
	debugFlag   = flag.Bool("debug", false, "enable debug logging")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("lumen version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "lumen requires an interactive terminal")
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	dirs := flag.Args()
	if len(dirs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: lumen [flags] <series-dir> [series-dir...]")
		os.Exit(1)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.Path()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	vps := make([]*viewport.Viewport, 0, len(dirs))
	for i, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err == nil {
			dir = abs
		}
		series, err := viewport.LoadSeries(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load series %s: %v\n", dir, err)
			os.Exit(1)
		}
		vp := viewport.New(fmt.Sprintf("vp-%d", i), series)
		if err := vp.SetColormap(cfg.UI.Colormap); err != nil {
			logger.Warn("configured colormap unavailable", "colormap", cfg.UI.Colormap)
		}
		vps = append(vps, vp)
	}

	store, err := annotations.Open(cfg.Annotations.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open annotation store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	selection := &annotations.Selection{}
	overlays := overlay.NewManager(logger)
	registry := command.NewRegistry()
	focus := app.NewFocus(vps)

	err = actions.Register(registry, actions.Deps{
		Active:    focus.Active,
		Store:     store,
		Selection: selection,
		Overlays:  overlays,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register commands: %v\n", err)
		os.Exit(1)
	}

	source := menu.NewStaticSource(app.MenuGroups(app.PresetItems(cfg.WindowPresets))...)
	controller := menu.NewController(overlays, source, registry, logger)
	model := app.New(cfg, focus, registry, selection, store, controller, overlays, logger)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	watcher, err := config.Watch(cfgPath, logger, func(next *config.Config) {
		p.Send(app.ConfigReloaded(next))
	})
	if err != nil {
		logger.Warn("config watching unavailable", "error", err)
	} else {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// effectiveVersion returns the version string, falling back to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			return setting.Value[:7]
		}
	}
	return "dev"
}
