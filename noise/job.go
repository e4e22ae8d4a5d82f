package noise

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/qwes348/Pseudorandom-Noise/hashing"
	"github.com/qwes348/Pseudorandom-Noise/jobs"
	"github.com/qwes348/Pseudorandom-Noise/space"
	"github.com/qwes348/Pseudorandom-Noise/wide"
)

// MaxDimensions is the highest supported lattice dimension count.
const MaxDimensions = 3

// ScheduleFunc dispatches one noise pass. positions and noise must have
// the same length; positions must not be written while the pass runs.
type ScheduleFunc func(
	pool *jobs.Pool,
	positions []wide.Float3x4,
	noise []wide.F32x4,
	domain space.TRS,
	seed int32,
	dependency jobs.Handle,
) jobs.Handle

type job[N Noise] struct {
	positions []wide.Float3x4
	noise     []wide.F32x4
	domainTRS mgl32.Mat3x4
	hash      hashing.Hash4
}

func (j *job[N]) execute(i int) {
	var n N
	p := wide.TransformPoints(j.domainTRS, j.positions[i].Transpose())
	j.noise[i] = n.Noise4(p, j.hash)
}

func schedule[N Noise](
	pool *jobs.Pool,
	positions []wide.Float3x4,
	noise []wide.F32x4,
	domain space.TRS,
	seed int32,
	dependency jobs.Handle,
) jobs.Handle {
	if len(positions) != len(noise) {
		panic(fmt.Sprintf("noise: %d position batches but %d noise batches", len(positions), len(noise)))
	}
	j := &job[N]{
		positions: positions,
		noise:     noise,
		domainTRS: domain.Matrix(),
		hash:      hashing.Seed(seed),
	}
	return pool.ScheduleParallel(len(positions), j.execute, dependency)
}

var scheduleTable = [MaxDimensions]ScheduleFunc{
	schedule[Lattice1D],
	schedule[Lattice2D],
	schedule[Lattice3D],
}

// ForDimensions returns the dispatch function for a dimension count.
// It reports false for 0 (noise disabled); larger counts clamp to 3.
func ForDimensions(dimensions int) (ScheduleFunc, bool) {
	if dimensions <= 0 {
		return nil, false
	}
	return scheduleTable[min(dimensions, MaxDimensions)-1], true
}

// Evaluator returns the noise variant for a dimension count, with the
// same clamping as ForDimensions.
func Evaluator(dimensions int) Noise {
	switch {
	case dimensions <= 1:
		return Lattice1D{}
	case dimensions == 2:
		return Lattice2D{}
	default:
		return Lattice3D{}
	}
}
