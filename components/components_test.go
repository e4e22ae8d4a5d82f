package components

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qwes348/Pseudorandom-Noise/space"
)

func TestSpinAdvance(t *testing.T) {
	tests := []struct {
		name  string
		start mgl32.Vec3
		spin  mgl32.Vec3
		dt    float32
		want  mgl32.Vec3
	}{
		{"still", mgl32.Vec3{10, 20, 30}, mgl32.Vec3{}, 1, mgl32.Vec3{10, 20, 30}},
		{"forward", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 90, 0}, 0.5, mgl32.Vec3{0, 45, 0}},
		{"wraps high", mgl32.Vec3{0, 350, 0}, mgl32.Vec3{0, 20, 0}, 1, mgl32.Vec3{0, 10, 0}},
		{"wraps low", mgl32.Vec3{5, 0, 0}, mgl32.Vec3{-10, 0, 0}, 1, mgl32.Vec3{355, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transform{TRS: space.Identity()}
			tr.Rotation = tt.start
			Spin{DegreesPerSecond: tt.spin}.Advance(&tr, tt.dt)
			for i := range tt.want {
				if math32.Abs(tr.Rotation[i]-tt.want[i]) > 1e-4 {
					t.Errorf("Rotation = %v, want %v", tr.Rotation, tt.want)
					break
				}
			}
		})
	}
}
