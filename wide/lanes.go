package wide

import "github.com/chewxy/math32"

// F32x4 represents 4 float32 lanes.
type F32x4 [4]float32

// I32x4 represents 4 int32 lanes.
type I32x4 [4]int32

// U32x4 represents 4 uint32 lanes.
type U32x4 [4]uint32

// SplatF32 creates F32x4 with all lanes set to n.
func SplatF32(n float32) F32x4 {
	return F32x4{n, n, n, n}
}

// SplatI32 creates I32x4 with all lanes set to n.
func SplatI32(n int32) I32x4 {
	return I32x4{n, n, n, n}
}

// Add performs lane-wise addition.
func (v F32x4) Add(o F32x4) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Sub performs lane-wise subtraction.
func (v F32x4) Sub(o F32x4) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

// Mul performs lane-wise multiplication.
func (v F32x4) Mul(o F32x4) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = v[i] * o[i]
	}
	return r
}

// Scale multiplies every lane by s.
func (v F32x4) Scale(s float32) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = v[i] * s
	}
	return r
}

// AddScalar adds s to every lane.
func (v F32x4) AddScalar(s float32) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = v[i] + s
	}
	return r
}

// Abs returns the lane-wise absolute value.
func (v F32x4) Abs() F32x4 {
	var r F32x4
	for i := range v {
		r[i] = math32.Abs(v[i])
	}
	return r
}

// Floor rounds every lane toward negative infinity.
func (v F32x4) Floor() F32x4 {
	var r F32x4
	for i := range v {
		r[i] = math32.Floor(v[i])
	}
	return r
}

// Sin returns the lane-wise sine.
func (v F32x4) Sin() F32x4 {
	var r F32x4
	for i := range v {
		r[i] = math32.Sin(v[i])
	}
	return r
}

// Cos returns the lane-wise cosine.
func (v F32x4) Cos() F32x4 {
	var r F32x4
	for i := range v {
		r[i] = math32.Cos(v[i])
	}
	return r
}

// Lerp interpolates from v to o by the per-lane factor t.
func (v F32x4) Lerp(o, t F32x4) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = v[i] + (o[i]-v[i])*t[i]
	}
	return r
}

// ToI32 converts lanes to int32, truncating toward zero.
// Callers floor first when they need lattice cells.
func (v F32x4) ToI32() I32x4 {
	var r I32x4
	for i := range v {
		r[i] = int32(v[i])
	}
	return r
}

// Add performs lane-wise wrapping addition.
func (v I32x4) Add(o I32x4) I32x4 {
	var r I32x4
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}
