// Package game runs the frame loop: it owns the scene, the worker pool and
// the device, and in graphical mode the window-side renderer and UI.
package game

import (
	"log/slog"

	"github.com/qwes348/Pseudorandom-Noise/camera"
	"github.com/qwes348/Pseudorandom-Noise/config"
	"github.com/qwes348/Pseudorandom-Noise/gpubuf"
	"github.com/qwes348/Pseudorandom-Noise/jobs"
	"github.com/qwes348/Pseudorandom-Noise/renderer"
	"github.com/qwes348/Pseudorandom-Noise/scene"
	"github.com/qwes348/Pseudorandom-Noise/telemetry"
	"github.com/qwes348/Pseudorandom-Noise/ui"
)

// FrameDT is the fixed step used by headless runs, in seconds.
const FrameDT = 1.0 / 60.0

// Options configures a Game.
type Options struct {
	Headless  bool
	OutputDir string // CSV and config snapshot; empty disables output
	Workers   int    // Overrides scheduler.workers when > 0
	LogPerf   bool   // Log perf summaries in addition to config telemetry.log_perf
}

// Game holds the complete run state.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	pool   *jobs.Pool
	device *gpubuf.HostDevice
	scene  *scene.Scene

	perf    *telemetry.PerfCollector
	output  *telemetry.OutputManager
	logPerf bool

	// Graphical mode only
	headless  bool
	camera    *camera.Orbit
	renderer  *renderer.InstancedRenderer
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	settings  *ui.SettingsPanel
	showUI    bool

	frame     int32
	lastFlush int32
	paused    bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from the global config. In graphical
// mode the raylib window must already exist.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	logger := slog.Default()

	workers := cfg.Scheduler.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	g := &Game{
		cfg:          cfg,
		logger:       logger,
		pool:         jobs.NewPool(workers, cfg.Scheduler.ParallelThreshold),
		device:       gpubuf.NewHostDevice(logger),
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logPerf:      opts.LogPerf || cfg.Telemetry.LogPerf,
		headless:     opts.Headless,
		showUI:       true,
		screenWidth:  float32(cfg.Screen.Width),
		screenHeight: float32(cfg.Screen.Height),
	}

	g.scene = scene.FromConfig(cfg, scene.Options{
		Pool:   g.pool,
		Device: g.device,
		Logger: logger,
		Perf:   g.perf,
	})

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		logger.Error("failed to create output manager", "error", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config", "error", err)
	}

	if !opts.Headless {
		g.camera = camera.New(cfg.Camera)
		g.renderer = renderer.NewInstancedRenderer()
		g.renderer.Init()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(10, 100, 260)
		g.settings = ui.NewSettingsPanel(g.screenWidth-330, 10, 320)
	}

	logger.Info("game started",
		"visualizations", len(cfg.Visualizations),
		"instances", cfg.Derived.TotalInstances,
		"workers", g.pool.Workers(),
		"headless", opts.Headless,
	)

	return g
}

// Frame returns the number of completed frames.
func (g *Game) Frame() int32 {
	return g.frame
}

// Scene returns the scene being driven.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// Unload releases buffers, stops the workers and closes output files.
func (g *Game) Unload() {
	g.flushTelemetry(true)
	g.scene.Close()
	g.pool.Close()
	if g.renderer != nil {
		g.renderer.Unload()
	}
	if err := g.output.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
	allocs, releases := g.device.Counts()
	g.logger.Info("game stopped", "frames", g.frame, "allocs", allocs, "releases", releases)
}
