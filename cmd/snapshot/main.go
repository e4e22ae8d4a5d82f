// Snapshot tool - renders the configured visualizations to a PNG file.
//
// Usage: go run ./cmd/snapshot -config config.yaml -out snapshot.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/qwes348/Pseudorandom-Noise/camera"
	"github.com/qwes348/Pseudorandom-Noise/config"
	"github.com/qwes348/Pseudorandom-Noise/gpubuf"
	"github.com/qwes348/Pseudorandom-Noise/jobs"
	"github.com/qwes348/Pseudorandom-Noise/renderer"
	"github.com/qwes348/Pseudorandom-Noise/scene"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "snapshot.png", "Output PNG path")
	width := flag.Int("width", 1024, "Render width")
	height := flag.Int("height", 1024, "Render height")
	bounds := flag.Bool("bounds", false, "Draw bounding boxes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Snapshot")
	defer rl.CloseWindow()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	pool := jobs.NewPool(cfg.Scheduler.Workers, cfg.Scheduler.ParallelThreshold)
	defer pool.Close()

	s := scene.FromConfig(cfg, scene.Options{
		Pool:   pool,
		Device: gpubuf.NewHostDevice(logger),
		Logger: logger,
	})
	defer s.Close()
	s.Update(0)

	r := renderer.NewInstancedRenderer()
	r.Init()
	r.ShowBounds = *bounds
	defer r.Unload()

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Color{R: 18, G: 20, B: 24, A: 255})
	rl.BeginMode3D(renderer.Camera3D(camera.New(cfg.Camera)))
	s.Draw(r)
	rl.EndMode3D()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Snapshot rendered to: %s (%dx%d)\n", *outPath, *width, *height)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
