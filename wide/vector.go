package wide

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Float4x3 holds four 3D vectors in structure-of-arrays form:
// X[i], Y[i], Z[i] are the components of lane i.
type Float4x3 struct {
	X, Y, Z F32x4
}

// Float3x4 holds four 3D vectors lane-major. Its memory layout is twelve
// consecutive float32 values, which is the layout uploaded to the GPU.
type Float3x4 [4]mgl32.Vec3

// Transpose converts the SoA batch to lane-major form.
func (p Float4x3) Transpose() Float3x4 {
	var r Float3x4
	for i := range r {
		r[i] = mgl32.Vec3{p.X[i], p.Y[i], p.Z[i]}
	}
	return r
}

// Transpose converts the lane-major batch to SoA form.
func (p Float3x4) Transpose() Float4x3 {
	var r Float4x3
	for i := range p {
		r.X[i] = p[i][0]
		r.Y[i] = p[i][1]
		r.Z[i] = p[i][2]
	}
	return r
}

// Scale multiplies every component by s.
func (p Float4x3) Scale(s F32x4) Float4x3 {
	return Float4x3{X: p.X.Mul(s), Y: p.Y.Mul(s), Z: p.Z.Mul(s)}
}

// Normalize scales each lane to unit length. Zero-length lanes stay zero.
func (p Float4x3) Normalize() Float4x3 {
	var r Float4x3
	for i := 0; i < Lanes; i++ {
		l := math32.Sqrt(p.X[i]*p.X[i] + p.Y[i]*p.Y[i] + p.Z[i]*p.Z[i])
		if l == 0 {
			continue
		}
		inv := 1 / l
		r.X[i] = p.X[i] * inv
		r.Y[i] = p.Y[i] * inv
		r.Z[i] = p.Z[i] * inv
	}
	return r
}

// TransformPoints applies the affine matrix m to all four lanes,
// including its translation column.
func TransformPoints(m mgl32.Mat3x4, p Float4x3) Float4x3 {
	return transform(m, p, 1)
}

// TransformDirections applies only the linear part of m to all four lanes.
func TransformDirections(m mgl32.Mat3x4, p Float4x3) Float4x3 {
	return transform(m, p, 0)
}

// transform computes m * (p, w) for each lane. m is column-major, so
// m[col*3+row] is the element at (row, col).
func transform(m mgl32.Mat3x4, p Float4x3, w float32) Float4x3 {
	var r Float4x3
	for i := 0; i < Lanes; i++ {
		x, y, z := p.X[i], p.Y[i], p.Z[i]
		r.X[i] = m[0]*x + m[3]*y + m[6]*z + m[9]*w
		r.Y[i] = m[1]*x + m[4]*y + m[7]*z + m[10]*w
		r.Z[i] = m[2]*x + m[5]*y + m[8]*z + m[11]*w
	}
	return r
}
