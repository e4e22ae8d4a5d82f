// Package scene holds the visualizations of a run as ECS entities and
// drives their controllers once per frame.
package scene

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/qwes348/Pseudorandom-Noise/components"
	"github.com/qwes348/Pseudorandom-Noise/config"
	"github.com/qwes348/Pseudorandom-Noise/jobs"
	"github.com/qwes348/Pseudorandom-Noise/telemetry"
	"github.com/qwes348/Pseudorandom-Noise/visualization"
)

// Options carries the collaborators shared by every controller.
type Options struct {
	Pool   *jobs.Pool
	Device visualization.Device
	Logger *slog.Logger
	Perf   *telemetry.PerfCollector
}

// Scene owns the ECS world.
type Scene struct {
	world *ecs.World

	mapper *ecs.Map3[components.Transform, components.Spin, components.Visual]
	filter *ecs.Filter3[components.Transform, components.Spin, components.Visual]

	transformMap *ecs.Map1[components.Transform]
	visualMap    *ecs.Map1[components.Visual]

	// Spawn order, so iteration is stable for UI and output.
	entities []ecs.Entity

	opts Options
}

// New creates an empty scene.
func New(opts Options) *Scene {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	world := ecs.NewWorld()
	return &Scene{
		world:        world,
		mapper:       ecs.NewMap3[components.Transform, components.Spin, components.Visual](world),
		filter:       ecs.NewFilter3[components.Transform, components.Spin, components.Visual](world),
		transformMap: ecs.NewMap1[components.Transform](world),
		visualMap:    ecs.NewMap1[components.Visual](world),
		opts:         opts,
	}
}

// FromConfig creates a scene with one enabled entity per configured
// visualization.
func FromConfig(cfg *config.Config, opts Options) *Scene {
	s := New(opts)
	for _, v := range cfg.Visualizations {
		s.Spawn(v)
	}
	return s
}

// Spawn adds an enabled visualization and returns its entity.
func (s *Scene) Spawn(v config.Visualization) ecs.Entity {
	ctrl := visualization.New(v, visualization.Options{
		Pool:   s.opts.Pool,
		Device: s.opts.Device,
		Logger: s.opts.Logger,
		Perf:   s.opts.Perf,
	})
	ctrl.Enable()

	transform := components.Transform{TRS: ctrl.Settings().Transform}
	spin := components.Spin{DegreesPerSecond: v.Spin}
	visual := components.Visual{Controller: ctrl}

	e := s.mapper.NewEntity(&transform, &spin, &visual)
	s.entities = append(s.entities, e)
	return e
}

// Despawn disables the entity's controller and removes the entity.
func (s *Scene) Despawn(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	s.visualMap.Get(e).Controller.Disable()
	s.world.RemoveEntity(e)
	for i, other := range s.entities {
		if other == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
}

// Update advances spin by dt seconds, pushes transforms into the
// controllers and runs every controller that needs it. It returns how
// many controllers recomputed.
func (s *Scene) Update(dt float32) int {
	recomputed := 0
	query := s.filter.Query()
	for query.Next() {
		transform, spin, visual := query.Get()
		spin.Advance(transform, dt)
		visual.Controller.SetTransform(transform.TRS)
		if visual.Controller.Update() {
			recomputed++
		}
	}
	return recomputed
}

// Draw submits every visualization to r.
func (s *Scene) Draw(r visualization.Renderer) {
	if s.opts.Perf != nil {
		s.opts.Perf.StartPhase(telemetry.PhaseDraw)
		defer s.opts.Perf.EndPhase()
	}
	for _, e := range s.entities {
		s.visualMap.Get(e).Controller.Draw(r)
	}
}

// Controllers returns the controllers in spawn order.
func (s *Scene) Controllers() []*visualization.Controller {
	out := make([]*visualization.Controller, len(s.entities))
	for i, e := range s.entities {
		out[i] = s.visualMap.Get(e).Controller
	}
	return out
}

// Transform returns the entity's transform for editing.
func (s *Scene) Transform(e ecs.Entity) *components.Transform {
	return s.transformMap.Get(e)
}

// Entities returns the live entities in spawn order.
func (s *Scene) Entities() []ecs.Entity {
	return s.entities
}

// Close disables every controller.
func (s *Scene) Close() {
	for _, e := range s.entities {
		s.visualMap.Get(e).Controller.Disable()
	}
}
