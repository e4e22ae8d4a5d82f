// Package hashing implements a small xxHash-style accumulator used as the
// entropy source for lattice noise.
//
// The accumulator is seeded once, then fed one value per lattice axis with
// Eat. Eating is not commutative: the same values in a different order give
// a different hash. Only wrapping 32-bit arithmetic is used, so results are
// identical on every platform. Not suitable for anything that needs
// cryptographic unpredictability.
package hashing

import "math/bits"

const (
	primeB uint32 = 0b10000101111010111100101001110111
	primeC uint32 = 0b11000010101100101010111000111101
	primeD uint32 = 0b00100111110101001110101100101111
	primeE uint32 = 0b00010110010101100110011110110001
)

// Hash is a single-lane accumulator. It is the scalar fallback of Hash4
// and produces the same value as any one lane of it.
type Hash uint32

// SeedScalar starts a single-lane accumulator.
func SeedScalar(seed int32) Hash {
	return Hash(uint32(seed) + primeE)
}

// Eat mixes one value into the accumulator.
func (h Hash) Eat(data int32) Hash {
	return Hash(eat(uint32(h), uint32(data)))
}

// Sum finalizes the accumulator into a well distributed 32-bit value.
func (h Hash) Sum() uint32 {
	return avalanche(uint32(h))
}

// Float01A maps the lowest byte of the finalized hash to [0, 1].
func (h Hash) Float01A() float32 {
	return float32(h.Sum()&255) * (1.0 / 255)
}

func eat(acc, data uint32) uint32 {
	return bits.RotateLeft32(acc+data*primeC, 17) * primeD
}

func avalanche(a uint32) uint32 {
	a ^= a >> 15
	a *= primeB
	a ^= a >> 13
	a *= primeC
	a ^= a >> 16
	return a
}
