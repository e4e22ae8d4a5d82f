package game

import rl "github.com/gen2brain/raylib-go/raylib"

// Update handles input and advances the scene by the window's frame time.
// The frame is closed by Draw so draw time lands in the same sample.
func (g *Game) Update() {
	g.handleInput()

	g.perf.StartTick()
	if !g.paused {
		g.scene.Update(rl.GetFrameTime())
	}
}

// UpdateHeadless advances one complete frame at FrameDT without touching
// raylib.
func (g *Game) UpdateHeadless() {
	g.perf.StartTick()
	g.scene.Update(FrameDT)
	g.endFrame()
}

func (g *Game) endFrame() {
	g.perf.EndTick()
	g.frame++
	g.flushTelemetry(false)
}
