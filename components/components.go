// Package components defines ECS components for the scene.
package components

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qwes348/Pseudorandom-Noise/space"
	"github.com/qwes348/Pseudorandom-Noise/visualization"
)

// Transform places an entity in the world.
type Transform struct {
	space.TRS
}

// Spin rotates an entity continuously.
type Spin struct {
	DegreesPerSecond mgl32.Vec3
}

// Advance rotates t by dt seconds of spin. Angles wrap to [0, 360).
func (s Spin) Advance(t *Transform, dt float32) {
	if s.DegreesPerSecond == (mgl32.Vec3{}) {
		return
	}
	for i := range t.Rotation {
		t.Rotation[i] = wrapDegrees(t.Rotation[i] + s.DegreesPerSecond[i]*dt)
	}
}

func wrapDegrees(a float32) float32 {
	a = math32.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Visual links an entity to the controller that samples and draws it.
type Visual struct {
	Controller *visualization.Controller
}
