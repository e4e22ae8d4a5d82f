package hashing

import "github.com/qwes348/Pseudorandom-Noise/wide"

// Hash4 is four independent accumulators processed together.
// It is a value type; copying it forks the hash state.
type Hash4 [4]uint32

// Seed starts a 4-lane accumulator with the same seed in every lane.
func Seed(seed int32) Hash4 {
	s := uint32(seed) + primeE
	return Hash4{s, s, s, s}
}

// Eat mixes one lattice coordinate per lane into the accumulator.
func (h Hash4) Eat(data wide.I32x4) Hash4 {
	var r Hash4
	for i := range h {
		r[i] = eat(h[i], uint32(data[i]))
	}
	return r
}

// Sum finalizes every lane.
func (h Hash4) Sum() wide.U32x4 {
	var r wide.U32x4
	for i := range h {
		r[i] = avalanche(h[i])
	}
	return r
}

// Floats01A maps the lowest byte of each finalized lane to [0, 1].
func (h Hash4) Floats01A() wide.F32x4 {
	s := h.Sum()
	var r wide.F32x4
	for i := range s {
		r[i] = float32(s[i]&255) * (1.0 / 255)
	}
	return r
}

// Lane extracts a single lane as a scalar accumulator.
func (h Hash4) Lane(i int) Hash {
	return Hash(h[i])
}
