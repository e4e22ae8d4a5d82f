// Noise preview tool - interactive 2D slice of the lattice noise with sliders.
//
// Usage: go run ./cmd/noisepreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/qwes348/Pseudorandom-Noise/hashing"
	"github.com/qwes348/Pseudorandom-Noise/noise"
	"github.com/qwes348/Pseudorandom-Noise/wide"
)

const (
	windowWidth  = 1000
	windowHeight = 620
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
)

// PreviewParams holds the sampled slice.
type PreviewParams struct {
	Frequency  float32 // lattice cells across the preview
	Dimensions int
	Seed       int32
	SliceY     float32 // Y of the XZ slice; only 3D noise varies with it
}

func defaultParams() PreviewParams {
	return PreviewParams{
		Frequency:  8,
		Dimensions: 3,
		Seed:       0,
		SliceY:     0,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Noise Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	grid := make([]float32, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	animating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			params.SliceY += rl.GetFrameTime() * 0.5
			needsRegen = true
		}

		if needsRegen {
			sampleSlice(grid, params)
			updateTexture(texture, grid)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		minVal, maxVal, avg := summarize(grid)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Avg: %.3f", minVal, maxVal, avg), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Slice Y: %.2f", params.SliceY), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Lattice Noise Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Frequency (cells across)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFreq := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "64",
			params.Frequency, 1, 64,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Frequency), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newFreq != params.Frequency {
			params.Frequency = newFreq
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Dimensions", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newDims := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "3",
			float32(params.Dimensions), 1, noise.MaxDimensions,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Dimensions), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if d := int(newDims + 0.5); d != params.Dimensions {
			params.Dimensions = d
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Slice Y", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSlice := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "16",
			params.SliceY, 0, 16,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.SliceY), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newSlice != params.SliceY {
			params.SliceY = newSlice
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int32(newSeed) != params.Seed {
			params.Seed = int32(newSeed)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = rl.GetRandomValue(0, 99999)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			animating = false
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// yamlLines renders params as a visualization config fragment.
func yamlLines(p PreviewParams) []string {
	return []string{
		fmt.Sprintf("noise_dimensions: %d", p.Dimensions),
		fmt.Sprintf("seed: %d", p.Seed),
		"domain:",
		fmt.Sprintf("  scale: [%.1f, %.1f, %.1f]", p.Frequency, p.Frequency, p.Frequency),
	}
}

// sampleSlice fills grid with noise on the XZ plane at y = SliceY, four
// columns per evaluation.
func sampleSlice(grid []float32, p PreviewParams) {
	n := noise.Evaluator(p.Dimensions)
	h := hashing.Seed(p.Seed)
	step := p.Frequency / gridSize

	for row := 0; row < gridSize; row++ {
		z := wide.SplatF32((float32(row) + 0.5) * step)
		for col := 0; col < gridSize; col += wide.Lanes {
			var x wide.F32x4
			for l := range x {
				x[l] = (float32(col+l) + 0.5) * step
			}
			v := n.Noise4(wide.Float4x3{X: x, Y: wide.SplatF32(p.SliceY), Z: z}, h)
			copy(grid[row*gridSize+col:], v[:])
		}
	}
}

func summarize(grid []float32) (lo, hi, avg float32) {
	lo, hi = 1, -1
	var sum float32
	for _, v := range grid {
		sum += v
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, sum / float32(len(grid))
}

// updateTexture maps noise in [-1, 1] to a blue-white-orange ramp.
func updateTexture(texture rl.Texture2D, grid []float32) {
	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		t := min(max((v+1)/2, 0), 1)
		var r, g, b uint8
		if t < 0.5 {
			// Blue to white
			s := t / 0.5
			r = uint8(30 + s*225)
			g = uint8(60 + s*195)
			b = uint8(160 + s*95)
		} else {
			// White to orange
			s := (t - 0.5) / 0.5
			r = 255
			g = uint8(255 - s*120)
			b = uint8(255 - s*225)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
