package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/qwes348/Pseudorandom-Noise/config"
	"github.com/qwes348/Pseudorandom-Noise/shapes"
	"github.com/qwes348/Pseudorandom-Noise/visualization"
)

const (
	sliderHeight = 20
	sliderStep   = 35
	valueWidth   = 70
)

// SettingsPanel edits one visualization at a time through raygui sliders.
// Every edit goes through the controller's setters, which clamp and mark
// it dirty.
type SettingsPanel struct {
	renderer *Renderer
	x, y     float32
	width    float32
	selected int
}

// NewSettingsPanel creates a settings panel.
func NewSettingsPanel(x, y, width float32) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *SettingsPanel) SetPosition(x, y float32) {
	p.x = x
	p.y = y
}

// Selected returns the index of the visualization being edited.
func (p *SettingsPanel) Selected() int {
	return p.selected
}

// Draw renders the panel for ctrls[Selected()] and applies any edits.
func (p *SettingsPanel) Draw(ctrls []*visualization.Controller) {
	if len(ctrls) == 0 {
		return
	}
	p.selected = min(max(p.selected, 0), len(ctrls)-1)
	c := ctrls[p.selected]
	s := c.Settings()

	p.renderer.DrawPanel(int32(p.x), int32(p.y), int32(p.width), 390)

	x := p.x + float32(p.renderer.Theme.Padding)
	y := p.y + float32(p.renderer.Theme.Padding)
	inner := p.width - 2*float32(p.renderer.Theme.Padding)

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 30, Height: 24}, "<") {
		p.selected = (p.selected + len(ctrls) - 1) % len(ctrls)
	}
	if gui.Button(rl.Rectangle{X: x + inner - 30, Y: y, Width: 30, Height: 24}, ">") {
		p.selected = (p.selected + 1) % len(ctrls)
	}
	rl.DrawText(fmt.Sprintf("%s (%d/%d)", s.Name, p.selected+1, len(ctrls)), int32(x+40), int32(y+5), 14, rl.RayWhite)
	y += 34

	res := p.slider(x, &y, inner, "Resolution", fmt.Sprintf("%d", s.Resolution),
		float32(s.Resolution), config.MinResolution, config.MaxResolution)
	if int(res) != s.Resolution {
		c.SetResolution(int(res))
	}

	disp := p.slider(x, &y, inner, "Displacement", fmt.Sprintf("%.2f", s.Displacement),
		s.Displacement, config.MinDisplacement, config.MaxDisplacement)
	if disp != s.Displacement {
		c.SetDisplacement(disp)
	}

	scale := p.slider(x, &y, inner, "Instance scale", fmt.Sprintf("%.2f", s.InstanceScale),
		s.InstanceScale, config.MinInstanceScale, config.MaxInstanceScale)
	if scale != s.InstanceScale {
		c.SetInstanceScale(scale)
	}

	dims := p.slider(x, &y, inner, "Noise dimensions", fmt.Sprintf("%d", s.NoiseDimensions),
		float32(s.NoiseDimensions), config.MinNoiseDimensions, config.MaxNoiseDimensions)
	if int(dims+0.5) != s.NoiseDimensions {
		c.SetNoiseDimensions(int(dims + 0.5))
	}

	// Seeds span all of int32, so they are stepped rather than slid.
	rl.DrawText("Seed", int32(x), int32(y), 14, rl.Gray)
	y += 18
	step := int32(1)
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		step = 100
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 30, Height: sliderHeight}, "-") {
		c.StepSeed(-step)
	}
	rl.DrawText(fmt.Sprintf("%d", c.Settings().Seed), int32(x+40), int32(y+2), 16, rl.RayWhite)
	if gui.Button(rl.Rectangle{X: x + inner - valueWidth - 40, Y: y, Width: 30, Height: sliderHeight}, "+") {
		c.StepSeed(step)
	}
	y += sliderStep

	y += 10
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 30}, "Shape: "+s.Kind().String()) {
		c.SetShape(nextKind(s.Kind()))
	}
	if gui.Button(rl.Rectangle{X: x + 130, Y: y, Width: 120, Height: 30}, "Random Seed") {
		c.SetSeed(rl.GetRandomValue(0, 99999))
	}
	y += 40

	rl.DrawText(
		fmt.Sprintf("Batches: %d  Recomputes: %d  %s", c.BatchCount(), c.Recomputes(), c.State()),
		int32(x), int32(y), p.renderer.Theme.FontSize, p.renderer.Theme.LabelColor,
	)
}

// slider draws a labelled raygui slider and advances y.
func (p *SettingsPanel) slider(x float32, y *float32, width float32, label, value string, v, lo, hi float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	out := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: width - valueWidth - 10, Height: sliderHeight},
		"", "",
		v, lo, hi,
	)
	rl.DrawText(value, int32(x+width-valueWidth), int32(*y+2), 16, rl.RayWhite)
	*y += sliderStep
	return out
}

func nextKind(k shapes.Kind) shapes.Kind {
	kinds := shapes.Kinds()
	for i, other := range kinds {
		if other == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return shapes.KindPlane
}
