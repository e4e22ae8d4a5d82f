// Package wide provides fixed 4-lane types for batched point evaluation.
//
// Every grid batch holds four logical elements. Computation happens in
// structure-of-arrays form (Float4x3: one F32x4 per axis) while storage and
// GPU upload use the lane-major form (Float3x4: four consecutive Vec3).
//
// All operations are plain loops over fixed-size arrays so the compiler can
// vectorize them; evaluating a single lane with the same inputs yields the
// same result bit for bit.
package wide

// Lanes is the batch width.
const Lanes = 4

// BatchCount returns the number of 4-lane batches needed for n elements.
func BatchCount(n int) int {
	return (n + Lanes - 1) / Lanes
}
