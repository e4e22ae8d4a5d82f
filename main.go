package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/qwes348/Pseudorandom-Noise/config"
	"github.com/qwes348/Pseudorandom-Noise/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logPerf := flag.Bool("log-perf", false, "Output perf and noise summaries via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = use config)")
	maxFrames := flag.Int("frames", 0, "Stop after N frames (0 = unlimited, headless requires > 0)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Headless:  *headless,
		OutputDir: *outputDir,
		Workers:   *workers,
		LogPerf:   *logPerf,
	}

	if *headless {
		if *maxFrames <= 0 {
			slog.Error("headless mode needs -frames > 0")
			os.Exit(2)
		}

		// Headless mode - pure CPU pipeline, no raylib needed
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		slog.Info("starting headless run", "frames", *maxFrames)

		for int(g.Frame()) < *maxFrames {
			g.UpdateHeadless()
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Pseudorandom Noise")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
			break
		}
	}
}
