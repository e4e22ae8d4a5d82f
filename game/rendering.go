package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/qwes348/Pseudorandom-Noise/renderer"
	"github.com/qwes348/Pseudorandom-Noise/ui"
)

const controlsLegend = "[RMB] Orbit  [Wheel] Zoom  [Home] Reset camera  [Space] Pause  [B] Bounds  [H] Hide UI"

// Draw renders the frame and closes the perf sample opened by Update.
func (g *Game) Draw() {
	g.perf.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 20, B: 24, A: 255})

	rl.BeginMode3D(renderer.Camera3D(g.camera))
	g.scene.Draw(g.renderer)
	rl.EndMode3D()
	g.renderer.Prune()

	if g.showUI {
		g.drawUI()
	}

	rl.EndDrawing()

	g.endFrame()
}

func (g *Game) drawUI() {
	ctrls := g.scene.Controllers()
	instances := 0
	for _, c := range ctrls {
		r := c.Settings().Resolution
		instances += r * r
	}

	g.hud.Draw(ui.HUDData{
		Title:          "Pseudorandom Noise",
		Visualizations: len(ctrls),
		Instances:      instances,
		Workers:        g.pool.Workers(),
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
	})
	g.perfPanel.Draw(g.perf.Stats())
	g.settings.Draw(ctrls)
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}
