package space

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentityMatrix(t *testing.T) {
	m := Identity().Matrix()
	want := mgl32.Mat3x4{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0}
	if !m.ApproxEqual(want) {
		t.Errorf("Identity().Matrix() = %v, want %v", m, want)
	}
	if n := Identity().NormalMatrix(); !n.ApproxEqual(want) {
		t.Errorf("Identity().NormalMatrix() = %v, want %v", n, want)
	}
}

func TestMatrixOrder(t *testing.T) {
	trs := TRS{
		Translation: mgl32.Vec3{1, 2, 3},
		Scale:       mgl32.Vec3{2, 4, 8},
	}
	m := trs.Matrix()
	// Scale applies before translation.
	got := mgl32.Vec3{
		m.At(0, 0)*1 + m.At(0, 3),
		m.At(1, 1)*1 + m.At(1, 3),
		m.At(2, 2)*1 + m.At(2, 3),
	}
	want := mgl32.Vec3{3, 6, 11}
	if !got.ApproxEqual(want) {
		t.Errorf("scaled+translated = %v, want %v", got, want)
	}
}

func TestNormalMatrixInverseScale(t *testing.T) {
	trs := TRS{Translation: mgl32.Vec3{5, 5, 5}, Scale: mgl32.Vec3{2, 1, 0.5}}
	n := trs.NormalMatrix()
	if !mgl32.FloatEqual(n.At(0, 0), 0.5) || !mgl32.FloatEqual(n.At(2, 2), 2) {
		t.Errorf("normal matrix diagonal = (%v, %v), want (0.5, 2)", n.At(0, 0), n.At(2, 2))
	}
	if n.At(0, 3) != 0 || n.At(1, 3) != 0 || n.At(2, 3) != 0 {
		t.Errorf("normal matrix translation = %v, want zero", n.Col(3))
	}
}

func TestRotationAboutY(t *testing.T) {
	trs := Identity()
	trs.Rotation = mgl32.Vec3{0, 90, 0}
	m4 := trs.Mat4()
	got := m4.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	want := mgl32.Vec3{0, 0, -1}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("rotating +X by 90° about Y = %v, want %v", got, want)
	}
}

func TestMaxAbsScale(t *testing.T) {
	trs := TRS{Scale: mgl32.Vec3{1, -3, 2}}
	if got := trs.MaxAbsScale(); got != 3 {
		t.Errorf("MaxAbsScale() = %v, want 3", got)
	}
}
