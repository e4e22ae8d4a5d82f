// Package visualization owns the buffers and frame lifecycle of one point
// visualization: it schedules the shape and noise passes when its
// settings or transform change, waits for them, and uploads the results.
//
// A Controller is driven from a single goroutine. Settings may be changed
// at any time between Update calls; they take effect on the next Update.
package visualization

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/qwes348/Pseudorandom-Noise/config"
	"github.com/qwes348/Pseudorandom-Noise/gpubuf"
	"github.com/qwes348/Pseudorandom-Noise/jobs"
	"github.com/qwes348/Pseudorandom-Noise/noise"
	"github.com/qwes348/Pseudorandom-Noise/space"
	"github.com/qwes348/Pseudorandom-Noise/telemetry"
	"github.com/qwes348/Pseudorandom-Noise/wide"
)

// State is the controller lifecycle state.
type State int

const (
	StateDisabled State = iota
	StateEnabled
)

func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateEnabled:
		return "enabled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options carries the collaborators of a Controller.
type Options struct {
	Pool   *jobs.Pool               // required
	Device Device                   // nil uses a host device
	Logger *slog.Logger             // nil uses slog.Default()
	Perf   *telemetry.PerfCollector // optional phase timing
}

// Controller runs the point pipeline for one visualization.
type Controller struct {
	settings config.Visualization

	pool   *jobs.Pool
	device Device
	logger *slog.Logger
	perf   *telemetry.PerfCollector

	state State
	dirty bool

	// Host batches; always the same length.
	positions []wide.Float3x4
	normals   []wide.Float3x4
	noise     []wide.F32x4

	positionBuf Buffer
	normalBuf   Buffer
	noiseBuf    Buffer

	bounds     Bounds
	computedAt space.TRS // transform used by the last recompute
	recomputes int
}

// New creates a disabled controller. Settings are clamped.
func New(settings config.Visualization, opts Options) *Controller {
	if opts.Pool == nil {
		panic("visualization: Options.Pool is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Device == nil {
		opts.Device = gpubuf.NewHostDevice(opts.Logger)
	}
	return &Controller{
		settings: settings.Clamp(),
		pool:     opts.Pool,
		device:   opts.Device,
		logger:   opts.Logger.With("visualization", settings.Name),
		perf:     opts.Perf,
	}
}

// Enable allocates the batches and buffers and marks the controller dirty.
// Enabling an enabled controller does nothing.
func (c *Controller) Enable() {
	if c.state == StateEnabled {
		return
	}
	c.allocate()
	c.state = StateEnabled
	c.dirty = true
	c.logger.Info("enabled",
		"shape", c.settings.Shape,
		"resolution", c.settings.Resolution,
		"noise_dimensions", c.settings.NoiseDimensions,
		"batches", len(c.positions),
	)
}

// Disable releases the batches and buffers.
func (c *Controller) Disable() {
	if c.state == StateDisabled {
		return
	}
	c.release()
	c.state = StateDisabled
	c.dirty = false
	c.logger.Info("disabled")
}

func (c *Controller) allocate() {
	batches := wide.BatchCount(c.settings.Resolution * c.settings.Resolution)
	c.positions = make([]wide.Float3x4, batches)
	c.normals = make([]wide.Float3x4, batches)
	c.noise = make([]wide.F32x4, batches)

	n := batches * wide.Lanes
	c.positionBuf = c.device.NewBuffer(n, pointStride)
	c.normalBuf = c.device.NewBuffer(n, pointStride)
	c.noiseBuf = c.device.NewBuffer(n, noiseStride)
}

func (c *Controller) release() {
	for _, b := range []Buffer{c.positionBuf, c.normalBuf, c.noiseBuf} {
		if b != nil {
			c.device.ReleaseBuffer(b)
		}
	}
	c.positionBuf, c.normalBuf, c.noiseBuf = nil, nil, nil
	c.positions, c.normals, c.noise = nil, nil, nil
}

// Update runs the pipeline if the settings or the transform changed since
// the last run, and reports whether it did. Calling Update on a disabled
// controller panics.
func (c *Controller) Update() bool {
	if c.state != StateEnabled {
		panic(fmt.Sprintf("visualization %q: Update while %s", c.settings.Name, c.state))
	}
	// Coarse check: any transform change recomputes the whole frame.
	if !c.dirty && c.settings.Transform == c.computedAt {
		return false
	}
	c.recompute()
	return true
}

func (c *Controller) recompute() {
	s := c.settings

	c.startPhase(telemetry.PhaseSchedule)
	handle := s.Kind().Schedule()(c.pool, c.positions, c.normals, s.Resolution, s.Transform, jobs.Handle{})
	if schedule, ok := noise.ForDimensions(s.NoiseDimensions); ok {
		handle = schedule(c.pool, c.positions, c.noise, s.Domain, s.Seed, handle)
	} else {
		clear(c.noise)
	}

	c.startPhase(telemetry.PhaseComplete)
	handle.Complete()

	c.startPhase(telemetry.PhaseUpload)
	batches := len(c.positions)
	upload("positions", c.positionBuf, batches, pointStride, FlattenPoints(c.positions))
	upload("normals", c.normalBuf, batches, pointStride, FlattenPoints(c.normals))
	upload("noise", c.noiseBuf, batches, noiseStride, FlattenNoise(c.noise))

	size := 2*s.Transform.MaxAbsScale() + s.Displacement
	c.bounds = Bounds{
		Center: s.Transform.Translation,
		Size:   mgl32.Vec3{size, size, size},
	}

	if c.perf != nil {
		c.perf.EndPhase()
		c.perf.CountRecompute()
	}
	c.dirty = false
	c.computedAt = s.Transform
	c.recomputes++
	c.logger.Debug("recomputed", "batches", batches, "recomputes", c.recomputes)
}

func (c *Controller) startPhase(phase string) {
	if c.perf != nil {
		c.perf.StartPhase(phase)
	}
}

// Draw submits one instanced draw. Drawing a disabled controller panics.
func (c *Controller) Draw(r Renderer) {
	if c.state != StateEnabled {
		panic(fmt.Sprintf("visualization %q: Draw while %s", c.settings.Name, c.state))
	}
	s := c.settings
	res := float32(s.Resolution)
	r.DrawInstances(DrawCall{
		Name:          s.Name,
		Positions:     c.positionBuf,
		Normals:       c.normalBuf,
		Noise:         c.noiseBuf,
		InstanceCount: s.Resolution * s.Resolution,
		Bounds:        c.bounds,
		Uniforms: Uniforms{
			Resolution:    res,
			InstanceScale: s.InstanceScale / res,
			Displacement:  s.Displacement,
		},
	})
}

func sizeMismatch(name string, b Buffer, batches int) string {
	return fmt.Sprintf("visualization: %s buffer holds %dx%d, host has %d batches", name, b.Len(), b.Stride(), batches)
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Dirty reports whether the next Update will recompute regardless of the
// transform.
func (c *Controller) Dirty() bool { return c.dirty }

// Settings returns the clamped settings.
func (c *Controller) Settings() config.Visualization { return c.settings }

// BatchCount returns the number of 4-wide batches, 0 while disabled.
func (c *Controller) BatchCount() int { return len(c.positions) }

// Bounds returns the bounding box from the last recompute.
func (c *Controller) Bounds() Bounds { return c.bounds }

// Recomputes returns how many times the pipeline has run.
func (c *Controller) Recomputes() int { return c.recomputes }

// Positions returns the position batches. Read only; valid until the next
// Update or resize.
func (c *Controller) Positions() []wide.Float3x4 { return c.positions }

// Normals returns the normal batches, with the same lifetime as Positions.
func (c *Controller) Normals() []wide.Float3x4 { return c.normals }

// Noise returns the noise batches, with the same lifetime as Positions.
func (c *Controller) Noise() []wide.F32x4 { return c.noise }

// NoiseSamples returns one noise value per instance with padding lanes
// trimmed. The slice aliases the noise batches.
func (c *Controller) NoiseSamples() []float32 {
	flat := FlattenNoise(c.noise)
	if flat == nil {
		return nil
	}
	return flat[:c.settings.Resolution*c.settings.Resolution]
}
