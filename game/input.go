package game

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	orbitSpeed = 0.3 // degrees per pixel of mouse drag
	zoomStep   = 0.1
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyB) {
		g.renderer.ShowBounds = !g.renderer.ShowBounds
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.showUI = !g.showUI
	}

	g.handleCameraInput()
}

// handleResize keeps UI anchors in place when the window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.settings.SetPosition(w-330, 10)
}

// handleCameraInput orbits with the right mouse button and zooms with the
// wheel or +/-.
func (g *Game) handleCameraInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Rotate(-d.X*orbitSpeed, d.Y*orbitSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*zoomStep)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
