// Package space describes affine transforms as translation, rotation and
// scale, and converts them to the 3x4 matrices used by the batch jobs.
package space

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TRS is an affine transform. Rotation is in degrees, applied Z then X then Y.
type TRS struct {
	Translation mgl32.Vec3 `yaml:"translation"`
	Rotation    mgl32.Vec3 `yaml:"rotation"`
	Scale       mgl32.Vec3 `yaml:"scale"`
}

// Identity returns a transform that leaves points unchanged.
func Identity() TRS {
	return TRS{Scale: mgl32.Vec3{1, 1, 1}}
}

// Mat4 returns the homogeneous matrix translate * rotate * scale.
func (t TRS) Mat4() mgl32.Mat4 {
	r := mgl32.AnglesToQuat(
		mgl32.DegToRad(t.Rotation[2]),
		mgl32.DegToRad(t.Rotation[0]),
		mgl32.DegToRad(t.Rotation[1]),
		mgl32.ZXY,
	).Mat4()
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(r).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Matrix returns the transform without its projective row.
func (t TRS) Matrix() mgl32.Mat3x4 {
	return Affine(t.Mat4())
}

// NormalMatrix returns the inverse-transpose of the linear part, used to
// transform surface normals. The translation column is zero.
// A zero scale axis yields a degenerate (zero) matrix.
func (t TRS) NormalMatrix() mgl32.Mat3x4 {
	n := t.Mat4().Inv().Transpose()
	m := Affine(n)
	m[9], m[10], m[11] = 0, 0, 0
	return m
}

// MaxAbsScale returns the largest absolute scale component.
func (t TRS) MaxAbsScale() float32 {
	return max(math32.Abs(t.Scale[0]), math32.Abs(t.Scale[1]), math32.Abs(t.Scale[2]))
}

// Affine drops the bottom row of a homogeneous matrix.
func Affine(m mgl32.Mat4) mgl32.Mat3x4 {
	return mgl32.Mat3x4{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
		m[12], m[13], m[14],
	}
}
