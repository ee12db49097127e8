package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/analogdigital/config"
	"github.com/pthm-cable/analogdigital/display"
	"github.com/pthm-cable/analogdigital/display/window"
	"github.com/pthm-cable/analogdigital/game"
	"github.com/pthm-cable/analogdigital/ui"
)

const sidebarWidth = 260

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	displayName := flag.String("display", "window", "Display backend: window, terminal or headless")
	modeName := flag.String("mode", "", "Initial scene: digital or analog (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stdout")
	exportDir := flag.String("export-dir", "", "Directory for PNG frame export (empty = disabled)")
	exportEvery := flag.Int("export-every", 60, "Export every Nth frame")

	flag.Parse()

	if err := run(runOptions{
		configPath:  *configPath,
		display:     *displayName,
		mode:        *modeName,
		seed:        *seed,
		maxTicks:    *maxTicks,
		outputDir:   *outputDir,
		logStats:    *logStats,
		logLevel:    *logLevel,
		logFile:     *logFile,
		exportDir:   *exportDir,
		exportEvery: *exportEvery,
	}); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath  string
	display     string
	mode        string
	seed        int64
	maxTicks    int
	outputDir   string
	logStats    bool
	logLevel    string
	logFile     string
	exportDir   string
	exportEvery int
}

func run(o runOptions) error {
	// Set up slog before anything logs. The terminal backend owns stdout.
	var logOut io.Writer = os.Stdout
	if o.display == "terminal" {
		logOut = io.Discard
	}
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := game.NewLogger(logOut, o.logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(o.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	modeName := cfg.Modes.Initial
	if o.mode != "" {
		modeName = o.mode
	}
	mode, err := game.ParseMode(modeName)
	if err != nil {
		return err
	}

	// Set up seed
	rngSeed := o.seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		Mode:      mode,
		LogStats:  o.logStats,
		OutputDir: o.outputDir,
	}

	w, h := cfg.Screen.Width, cfg.Screen.Height
	switch o.display {
	case "window":
		win := window.New(w, h, cfg.Screen.WindowScale, sidebarWidth, cfg.Screen.TargetFPS, "Analog / Digital")
		defer win.Close()
		return runWindow(win, o, opts)

	case "terminal":
		term, err := display.NewTerminal(w, h)
		if err != nil {
			return err
		}
		defer term.Close()
		return runTerminal(term, o, opts, cfg.Screen.TargetFPS)

	case "headless":
		return runHeadless(display.NewHeadless(w, h), o, opts)
	}
	return fmt.Errorf("unknown display %q", o.display)
}

// withExport wraps b in a PNG exporter when requested.
func withExport(b display.Backend, o runOptions) (display.Backend, error) {
	if o.exportDir == "" {
		return b, nil
	}
	return display.NewExporter(b, o.exportDir, o.exportEvery)
}

func newGame(b display.Backend, o runOptions, opts game.Options) (*game.Game, error) {
	surface, err := withExport(b, o)
	if err != nil {
		return nil, err
	}
	return game.NewGame(surface, opts)
}

func reachedMax(g *game.Game, maxTicks int) bool {
	if maxTicks > 0 && int(g.Tick()) >= maxTicks {
		slog.Info("max ticks reached", "tick", g.Tick())
		return true
	}
	return false
}

// runWindow paces frames with raylib's target FPS.
func runWindow(win *window.Window, o runOptions, opts game.Options) error {
	g, err := newGame(win, o, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	sidebar := ui.NewSidebar(win.PanelWidth(), sidebarWidth, win.PanelHeight())

	for !win.ShouldClose() {
		for _, k := range win.Keys() {
			if !g.Apply(game.CommandForKey(k)) {
				return nil
			}
		}

		if err := g.Step(); err != nil {
			return err
		}

		var res ui.ControlResult
		win.Present(sidebar.ShowLEDGrid(), func() {
			res = sidebar.Draw(g.View())
		})
		if !res.Apply(g) || reachedMax(g, o.maxTicks) {
			return nil
		}
	}
	return nil
}

// runTerminal paces frames with a FrameLimiter until quit or a signal.
func runTerminal(term *display.Terminal, o runOptions, opts game.Options, fps int) error {
	g, err := newGame(term, o, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := game.NewFrameLimiter(fps)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}

		// Drain pending keys
		for pending := true; pending; {
			select {
			case k := <-term.Keys():
				if !g.Apply(game.CommandForKey(k)) {
					return nil
				}
			default:
				pending = false
			}
		}

		if err := g.Step(); err != nil {
			return err
		}
		if reachedMax(g, o.maxTicks) {
			return nil
		}
	}
}

// runHeadless renders as fast as possible.
func runHeadless(h *display.Headless, o runOptions, opts game.Options) error {
	g, err := newGame(h, o, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"mode", opts.Mode.String(),
		"max_ticks", o.maxTicks,
	)

	for !reachedMax(g, o.maxTicks) {
		if err := g.Step(); err != nil {
			return err
		}
	}
	g.LogState()
	return nil
}
