package visualization

import (
	"github.com/qwes348/Pseudorandom-Noise/config"
	"github.com/qwes348/Pseudorandom-Noise/shapes"
	"github.com/qwes348/Pseudorandom-Noise/space"
)

// Apply replaces every setting at once. Values are clamped. A changed
// resolution reallocates batches and buffers when enabled.
func (c *Controller) Apply(settings config.Visualization) {
	old := c.settings
	c.settings = settings.Clamp()
	if c.settings == old {
		return
	}
	c.dirty = true
	if c.state == StateEnabled && c.settings.Resolution != old.Resolution {
		c.release()
		c.allocate()
		c.logger.Info("resized",
			"from", old.Resolution,
			"to", c.settings.Resolution,
			"batches", len(c.positions),
		)
	}
}

func (c *Controller) modify(fn func(v *config.Visualization)) {
	v := c.settings
	fn(&v)
	c.Apply(v)
}

// SetResolution sets the grid resolution, clamped to [1, 512].
func (c *Controller) SetResolution(r int) {
	c.modify(func(v *config.Visualization) { v.Resolution = r })
}

// SetDisplacement sets the noise displacement, clamped to [-0.5, 0.5].
func (c *Controller) SetDisplacement(d float32) {
	c.modify(func(v *config.Visualization) { v.Displacement = d })
}

// SetInstanceScale sets the instance scale, clamped to [0.1, 10].
func (c *Controller) SetInstanceScale(s float32) {
	c.modify(func(v *config.Visualization) { v.InstanceScale = s })
}

// SetShape selects the sampled surface.
func (c *Controller) SetShape(k shapes.Kind) {
	c.modify(func(v *config.Visualization) { v.Shape = k.String() })
}

// SetNoiseDimensions sets the lattice dimension count, clamped to [0, 3].
// Zero turns the noise pass off.
func (c *Controller) SetNoiseDimensions(d int) {
	c.modify(func(v *config.Visualization) { v.NoiseDimensions = d })
}

// SetSeed sets the hash seed.
func (c *Controller) SetSeed(seed int32) {
	c.modify(func(v *config.Visualization) { v.Seed = seed })
}

// StepSeed adds delta to the hash seed, wrapping at the int32 limits.
func (c *Controller) StepSeed(delta int32) {
	c.SetSeed(c.settings.Seed + delta)
}

// SetDomain sets the transform applied to positions before noise lookup.
func (c *Controller) SetDomain(domain space.TRS) {
	c.modify(func(v *config.Visualization) { v.Domain = domain })
}

// SetTransform moves the visualization. It does not mark the controller
// dirty; Update notices the changed transform on its own.
func (c *Controller) SetTransform(trs space.TRS) {
	c.settings.Transform = trs
}
