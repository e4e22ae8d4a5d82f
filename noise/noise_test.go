package noise

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/stat"

	"github.com/qwes348/Pseudorandom-Noise/hashing"
	"github.com/qwes348/Pseudorandom-Noise/jobs"
	"github.com/qwes348/Pseudorandom-Noise/space"
	"github.com/qwes348/Pseudorandom-Noise/wide"
)

func splat(x, y, z float32) wide.Float4x3 {
	return wide.Float4x3{X: wide.SplatF32(x), Y: wide.SplatF32(y), Z: wide.SplatF32(z)}
}

func TestLattice1DIgnoresOtherAxes(t *testing.T) {
	h := hashing.Seed(0)
	a := CornerHash(1, splat(1, 2, 3), h)
	b := CornerHash(1, splat(1, 99, 99), h)
	if a != b {
		t.Errorf("1D corner hash differs: %v vs %v", a.Sum(), b.Sum())
	}

	n := Lattice1D{}
	if na, nb := n.Noise4(splat(1, 2, 3), h), n.Noise4(splat(1, 99, 99), h); na != nb {
		t.Errorf("1D noise differs: %v vs %v", na, nb)
	}
}

func TestLattice2DIgnoresY(t *testing.T) {
	h := hashing.Seed(11)
	n := Lattice2D{}
	if a, b := n.Noise4(splat(0.3, -7, 2.6), h), n.Noise4(splat(0.3, 40, 2.6), h); a != b {
		t.Errorf("2D noise depends on Y: %v vs %v", a, b)
	}
	if CornerHash(2, splat(0.3, -7, 2.6), h) != CornerHash(2, splat(0.3, 40, 2.6), h) {
		t.Error("2D corner hash depends on Y")
	}
}

func TestDimensionsAreNotZeroPadded(t *testing.T) {
	// Omitted axes are not fed as zero: a 1D hash of x differs from a 3D
	// hash of (x, 0, 0).
	h := hashing.Seed(0)
	if CornerHash(1, splat(1, 0, 0), h) == CornerHash(3, splat(1, 0, 0), h) {
		t.Error("1D hash equals 3D hash with zero Y/Z")
	}
}

func TestCornerHashOrder(t *testing.T) {
	h := hashing.Seed(0)
	want := h.Eat(wide.SplatI32(1)).Eat(wide.SplatI32(2)).Eat(wide.SplatI32(3))
	if got := CornerHash(3, splat(1.5, 2.5, 3.5), h); got != want {
		t.Errorf("CornerHash(3) = %v, want %v", got.Sum(), want.Sum())
	}
	swapped := CornerHash(3, splat(2.5, 1.5, 3.5), h)
	if swapped == want {
		t.Error("swapping X and Y did not change the hash")
	}
}

func TestNoiseAtLatticePointsUsesCornerHash(t *testing.T) {
	// At integer coordinates the fade is zero, so the sample is exactly the
	// lower corner's value.
	h := hashing.Seed(5)
	for dims := 1; dims <= MaxDimensions; dims++ {
		p := splat(3, -2, 7)
		want := CornerHash(dims, p, h).Floats01A().Scale(2).AddScalar(-1)
		got := Evaluator(dims).Noise4(p, h)
		for i := range got {
			if mgl32.Abs(got[i]-want[i]) > 1e-6 {
				t.Errorf("dims %d lane %d: %v, want %v", dims, i, got[i], want[i])
			}
		}
	}
}

func TestNoiseRangeAndSpread(t *testing.T) {
	h := hashing.Seed(1234)
	for dims := 1; dims <= MaxDimensions; dims++ {
		n := Evaluator(dims)
		var samples []float64
		for i := 0; i < 500; i++ {
			f := float32(i)
			p := wide.Float4x3{
				X: wide.F32x4{f * 0.37, f*0.37 + 0.1, -f * 0.21, f * 1.7},
				Y: wide.F32x4{f * 0.11, -f * 0.5, f * 0.33, 0.25},
				Z: wide.F32x4{f * 0.29, f * 0.07, f * 0.9, -f * 0.45},
			}
			for _, v := range n.Noise4(p, h) {
				if v < -1 || v > 1 {
					t.Fatalf("dims %d: sample %v out of [-1,1]", dims, v)
				}
				samples = append(samples, float64(v))
			}
		}
		mean, std := stat.MeanStdDev(samples, nil)
		if mean < -0.2 || mean > 0.2 {
			t.Errorf("dims %d: mean %v, want near 0", dims, mean)
		}
		if std < 0.1 {
			t.Errorf("dims %d: std dev %v, noise looks constant", dims, std)
		}
	}
}

func TestForDimensions(t *testing.T) {
	if _, ok := ForDimensions(0); ok {
		t.Error("ForDimensions(0) should report noise disabled")
	}
	for _, d := range []int{1, 2, 3, 4} {
		if fn, ok := ForDimensions(d); !ok || fn == nil {
			t.Errorf("ForDimensions(%d) reported disabled or nil", d)
		}
	}
}

func TestScheduleAppliesDomainAndSeed(t *testing.T) {
	pool := jobs.NewPool(4, 1)
	defer pool.Close()

	positions := make([]wide.Float3x4, 64)
	for b := range positions {
		for lane := range positions[b] {
			f := float32(4*b + lane)
			positions[b][lane] = mgl32.Vec3{f * 0.13, f * 0.07, f * -0.19}
		}
	}

	domain := space.Identity()
	domain.Scale = mgl32.Vec3{8, 8, 8}
	domain.Translation = mgl32.Vec3{0.5, 0, 0}
	const seed = 77

	out := make([]wide.F32x4, len(positions))
	fn, _ := ForDimensions(3)
	fn(pool, positions, out, domain, seed, jobs.Handle{}).Complete()

	m := domain.Matrix()
	h := hashing.Seed(seed)
	for b := range positions {
		want := Lattice3D{}.Noise4(wide.TransformPoints(m, positions[b].Transpose()), h)
		if out[b] != want {
			t.Fatalf("batch %d = %v, want %v", b, out[b], want)
		}
	}

	// Repeating the pass is bit-identical.
	again := make([]wide.F32x4, len(positions))
	fn(pool, positions, again, domain, seed, jobs.Handle{}).Complete()
	for b := range out {
		if out[b] != again[b] {
			t.Fatalf("batch %d not deterministic: %v vs %v", b, out[b], again[b])
		}
	}
}

func TestScheduleDependsOnPositions(t *testing.T) {
	pool := jobs.NewPool(2, 1)
	defer pool.Close()

	positions := make([]wide.Float3x4, 32)
	out := make([]wide.F32x4, 32)

	fill := pool.ScheduleParallel(len(positions), func(i int) {
		for lane := range positions[i] {
			positions[i][lane] = mgl32.Vec3{float32(i) + 0.5, 0, float32(lane)}
		}
	}, jobs.Handle{})
	fn, _ := ForDimensions(1)
	fn(pool, positions, out, space.Identity(), 3, fill).Complete()

	h := hashing.Seed(3)
	for b := range out {
		want := Lattice1D{}.Noise4(positions[b].Transpose(), h)
		if out[b] != want {
			t.Fatalf("batch %d = %v, want %v", b, out[b], want)
		}
	}
}
