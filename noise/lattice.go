// Package noise evaluates hash-based lattice value noise for batches of
// four positions.
//
// Each active axis is split into its lattice cell (floor) and a fade
// factor. Corner values come from the hash accumulator, fed one axis at a
// time in a fixed order: X, then Y, then Z for three dimensions; X then Z
// for two, since the plane lies in XZ. Axes beyond the dimension count are
// never fed to the hash.
package noise

import (
	"github.com/qwes348/Pseudorandom-Noise/hashing"
	"github.com/qwes348/Pseudorandom-Noise/wide"
)

// Noise produces one sample per lane for a batch of domain-space positions.
type Noise interface {
	Noise4(p wide.Float4x3, h hashing.Hash4) wide.F32x4
}

// span is the lattice interval containing a coordinate.
type span struct {
	p0, p1 wide.I32x4
	t      wide.F32x4
}

func latticeSpan(coords wide.F32x4) span {
	points := coords.Floor()
	var s span
	s.p0 = points.ToI32()
	s.p1 = s.p0.Add(wide.SplatI32(1))
	t := coords.Sub(points)
	for i := range t {
		// Quintic fade: 6t⁵ - 15t⁴ + 10t³.
		t[i] = t[i] * t[i] * t[i] * (t[i]*(t[i]*6-15) + 10)
	}
	s.t = t
	return s
}

// signed maps a [0,1] value to [-1,1].
func signed(v wide.F32x4) wide.F32x4 {
	return v.Scale(2).AddScalar(-1)
}

// Lattice1D varies along X only.
type Lattice1D struct{}

func (Lattice1D) Noise4(p wide.Float4x3, h hashing.Hash4) wide.F32x4 {
	x := latticeSpan(p.X)
	return signed(h.Eat(x.p0).Floats01A().Lerp(h.Eat(x.p1).Floats01A(), x.t))
}

// Lattice2D varies along X and Z.
type Lattice2D struct{}

func (Lattice2D) Noise4(p wide.Float4x3, h hashing.Hash4) wide.F32x4 {
	x, z := latticeSpan(p.X), latticeSpan(p.Z)
	h0, h1 := h.Eat(x.p0), h.Eat(x.p1)
	return signed(
		h0.Eat(z.p0).Floats01A().Lerp(h0.Eat(z.p1).Floats01A(), z.t).Lerp(
			h1.Eat(z.p0).Floats01A().Lerp(h1.Eat(z.p1).Floats01A(), z.t),
			x.t,
		),
	)
}

// Lattice3D varies along all three axes.
type Lattice3D struct{}

func (Lattice3D) Noise4(p wide.Float4x3, h hashing.Hash4) wide.F32x4 {
	x, y, z := latticeSpan(p.X), latticeSpan(p.Y), latticeSpan(p.Z)
	h0, h1 := h.Eat(x.p0), h.Eat(x.p1)
	h00, h01 := h0.Eat(y.p0), h0.Eat(y.p1)
	h10, h11 := h1.Eat(y.p0), h1.Eat(y.p1)

	edge := func(hy hashing.Hash4) wide.F32x4 {
		return hy.Eat(z.p0).Floats01A().Lerp(hy.Eat(z.p1).Floats01A(), z.t)
	}
	return signed(
		edge(h00).Lerp(edge(h01), y.t).Lerp(
			edge(h10).Lerp(edge(h11), y.t),
			x.t,
		),
	)
}

// CornerHash feeds the lower lattice corner of p to h along the first
// dimensions axes, in the same order the evaluators use, and returns the
// resulting accumulator. dimensions outside [1,3] are clamped.
func CornerHash(dimensions int, p wide.Float4x3, h hashing.Hash4) hashing.Hash4 {
	axes := [3]wide.F32x4{p.X, p.Y, p.Z}
	order := axisOrder(dimensions)
	for _, a := range order {
		h = h.Eat(axes[a].Floor().ToI32())
	}
	return h
}

func axisOrder(dimensions int) []int {
	switch {
	case dimensions <= 1:
		return []int{0}
	case dimensions == 2:
		return []int{0, 2}
	default:
		return []int{0, 1, 2}
	}
}
