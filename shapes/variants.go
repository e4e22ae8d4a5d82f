package shapes

import (
	"math"

	"github.com/qwes348/Pseudorandom-Noise/wide"
)

const (
	torusMajor = 0.375
	torusMinor = 0.125
)

// Plane is the unit square in the XZ plane, centred on the origin.
type Plane struct{}

func (Plane) Point4(i, resolution int, invResolution float32) Point4 {
	u, v := indexToUV(i, resolution, invResolution)
	return Point4{
		Positions: wide.Float4x3{X: u.AddScalar(-0.5), Z: v.AddScalar(-0.5)},
		Normals:   wide.Float4x3{Y: wide.SplatF32(1)},
	}
}

// Sphere is a unit-diameter sphere built by inflating an octahedron, which
// spreads samples more evenly than a latitude/longitude mapping.
type Sphere struct{}

func (Sphere) Point4(i, resolution int, invResolution float32) Point4 {
	u, v := indexToUV(i, resolution, invResolution)

	x := u.AddScalar(-0.5)
	y := v.AddScalar(-0.5)
	z := wide.SplatF32(0.5).Sub(x.Abs()).Sub(y.Abs())

	// Fold the lower half of the octahedron over its edges.
	for lane := range z {
		offset := max(-z[lane], 0)
		if x[lane] < 0 {
			x[lane] += offset
		} else {
			x[lane] -= offset
		}
		if y[lane] < 0 {
			y[lane] += offset
		} else {
			y[lane] -= offset
		}
	}

	p := wide.Float4x3{X: x, Y: y, Z: z}.Normalize().Scale(wide.SplatF32(0.5))
	return Point4{Positions: p, Normals: p.Normalize()}
}

// Torus has a major radius of 0.375 and a minor radius of 0.125, so it
// fits the same unit bounds as the other shapes.
type Torus struct{}

func (Torus) Point4(i, resolution int, invResolution float32) Point4 {
	u, v := indexToUV(i, resolution, invResolution)

	const tau = 2 * math.Pi
	su, cu := u.Scale(tau).Sin(), u.Scale(tau).Cos()
	sv, cv := v.Scale(tau).Sin(), v.Scale(tau).Cos()

	s := cv.Scale(torusMinor).AddScalar(torusMajor)
	p := wide.Float4x3{
		X: s.Mul(su),
		Y: sv.Scale(torusMinor),
		Z: s.Mul(cu),
	}
	n := wide.Float4x3{
		X: p.X.Sub(su.Scale(torusMajor)),
		Y: p.Y,
		Z: p.Z.Sub(cu.Scale(torusMajor)),
	}
	return Point4{Positions: p, Normals: n.Normalize()}
}
