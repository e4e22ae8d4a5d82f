package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/qwes348/Pseudorandom-Noise/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Visualizations int
	Instances      int
	Workers        int
	FPS            int32
	Paused         bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Visualizations: %d | Instances: %d | Workers: %d", data.Visualizations, data.Instances, data.Workers),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("FPS: %d", data.FPS), 10, 55, 16, rl.LightGray)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	padding := r.Theme.Padding
	height := r.Theme.LineHeight*10 + padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding
	inner := p.width - padding*2

	y = r.DrawSectionHeader(x, y, "Frame")
	y = r.DrawLabelValue(x, y, "Avg", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "p95", stats.P95TickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Recomputes", fmt.Sprintf("%d", stats.Recomputes))

	y = r.DrawSectionHeader(x, y+4, "Phases")
	for _, phase := range []string{telemetry.PhaseSchedule, telemetry.PhaseComplete, telemetry.PhaseUpload, telemetry.PhaseDraw} {
		y = r.DrawPercentBar(x, y, phase, stats.PhasePct[phase], 50, inner)
	}
}
