package shapes

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/qwes348/Pseudorandom-Noise/jobs"
	"github.com/qwes348/Pseudorandom-Noise/space"
	"github.com/qwes348/Pseudorandom-Noise/wide"
)

// ScheduleFunc dispatches one shape pass over every batch of positions and
// normals. Both slices must have the same length.
type ScheduleFunc func(
	pool *jobs.Pool,
	positions, normals []wide.Float3x4,
	resolution int,
	trs space.TRS,
	dependency jobs.Handle,
) jobs.Handle

// job evaluates shape S for one batch index. The variant is fixed by the
// type parameter, so the hot loop makes no per-sample choice.
type job[S Shape] struct {
	positions, normals []wide.Float3x4

	resolution    int
	invResolution float32

	positionTRS mgl32.Mat3x4
	normalTRS   mgl32.Mat3x4
}

func (j *job[S]) execute(i int) {
	var s S
	p := s.Point4(i, j.resolution, j.invResolution)
	j.positions[i] = wide.TransformPoints(j.positionTRS, p.Positions).Transpose()
	j.normals[i] = wide.TransformDirections(j.normalTRS, p.Normals).Normalize().Transpose()
}

func schedule[S Shape](
	pool *jobs.Pool,
	positions, normals []wide.Float3x4,
	resolution int,
	trs space.TRS,
	dependency jobs.Handle,
) jobs.Handle {
	if len(positions) != len(normals) {
		panic(fmt.Sprintf("shapes: %d position batches but %d normal batches", len(positions), len(normals)))
	}
	j := &job[S]{
		positions:     positions,
		normals:       normals,
		resolution:    resolution,
		invResolution: 1 / float32(resolution),
		positionTRS:   trs.Matrix(),
		normalTRS:     trs.NormalMatrix(),
	}
	return pool.ScheduleParallel(len(positions), j.execute, dependency)
}

var scheduleTable = [numKinds]ScheduleFunc{
	KindPlane:  schedule[Plane],
	KindSphere: schedule[Sphere],
	KindTorus:  schedule[Torus],
}

// Schedule returns the dispatch function for kind k. Unknown kinds fall
// back to the plane.
func (k Kind) Schedule() ScheduleFunc {
	if !k.Valid() {
		return scheduleTable[KindPlane]
	}
	return scheduleTable[k]
}

// Shape returns the evaluator for kind k.
func (k Kind) Shape() Shape {
	switch k {
	case KindSphere:
		return Sphere{}
	case KindTorus:
		return Torus{}
	default:
		return Plane{}
	}
}
