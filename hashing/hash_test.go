package hashing

import (
	"testing"

	"github.com/qwes348/Pseudorandom-Noise/wide"
)

func eatAll(seed int32, coords ...int32) wide.U32x4 {
	h := Seed(seed)
	for _, c := range coords {
		h = h.Eat(wide.SplatI32(c))
	}
	return h.Sum()
}

func TestDeterministic(t *testing.T) {
	first := eatAll(42, 1, 2, 3)
	for i := 0; i < 10; i++ {
		if got := eatAll(42, 1, 2, 3); got != first {
			t.Fatalf("run %d = %v, want %v", i, got, first)
		}
	}
}

func TestOrderSensitive(t *testing.T) {
	uvw := eatAll(0, 1, 2, 3)
	vuw := eatAll(0, 2, 1, 3)
	if uvw == vuw {
		t.Errorf("eating (1,2,3) and (2,1,3) produced the same hash %v", uvw)
	}
}

func TestSeedMatters(t *testing.T) {
	if eatAll(0, 5) == eatAll(1, 5) {
		t.Error("different seeds produced the same hash")
	}
}

func TestOmittedAxisDiffersFromZero(t *testing.T) {
	// Feeding a zero is an extra eat, not a no-op.
	if eatAll(7, 4) == eatAll(7, 4, 0) {
		t.Error("eating an extra zero did not change the hash")
	}
}

func TestLanesIndependent(t *testing.T) {
	coords := wide.I32x4{-3, 0, 17, 1 << 20}
	h := Seed(9).Eat(coords).Eat(wide.I32x4{1, 1, 1, 1})
	sum := h.Sum()

	for lane := range coords {
		s := SeedScalar(9).Eat(coords[lane]).Eat(1)
		if s.Sum() != sum[lane] {
			t.Errorf("lane %d: scalar %d, wide %d", lane, s.Sum(), sum[lane])
		}
		if h.Lane(lane) != s {
			t.Errorf("lane %d accumulator mismatch", lane)
		}
	}
}

func TestFloats01ARange(t *testing.T) {
	for x := int32(-50); x < 50; x++ {
		f := Seed(3).Eat(wide.I32x4{x, x + 1, x * 7, -x}).Floats01A()
		for i, v := range f {
			if v < 0 || v > 1 {
				t.Fatalf("x=%d lane %d: %v out of [0,1]", x, i, v)
			}
		}
	}
}

func BenchmarkEatScalar(b *testing.B) {
	var sink uint32
	for n := 0; n < b.N; n++ {
		for lane := int32(0); lane < 4; lane++ {
			sink ^= SeedScalar(1).Eat(lane).Eat(lane + 1).Eat(lane + 2).Sum()
		}
	}
	_ = sink
}

func BenchmarkEatWide(b *testing.B) {
	var sink wide.U32x4
	x := wide.I32x4{0, 1, 2, 3}
	for n := 0; n < b.N; n++ {
		sink = Seed(1).Eat(x).Eat(x.Add(wide.SplatI32(1))).Eat(x.Add(wide.SplatI32(2))).Sum()
	}
	_ = sink
}
