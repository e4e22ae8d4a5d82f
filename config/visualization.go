package config

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qwes348/Pseudorandom-Noise/shapes"
	"github.com/qwes348/Pseudorandom-Noise/space"
)

// Parameter bounds. Values outside these are clamped, never rejected.
const (
	MinResolution = 1
	MaxResolution = 512

	MinDisplacement = -0.5
	MaxDisplacement = 0.5

	MinInstanceScale = 0.1
	MaxInstanceScale = 10

	MinNoiseDimensions = 0 // 0 disables the noise stage
	MaxNoiseDimensions = 3

	DefaultResolution = 16
)

// Visualization holds the parameters of one point visualization.
type Visualization struct {
	Name            string     `yaml:"name"`
	Resolution      int        `yaml:"resolution"`
	Displacement    float32    `yaml:"displacement"`
	InstanceScale   float32    `yaml:"instance_scale"`
	Shape           string     `yaml:"shape"`
	NoiseDimensions int        `yaml:"noise_dimensions"`
	Seed            int32      `yaml:"seed"`
	Domain          space.TRS  `yaml:"domain"`    // Applied to positions before noise lookup
	Transform       space.TRS  `yaml:"transform"` // Object placement in the scene
	Spin            mgl32.Vec3 `yaml:"spin"`      // Degrees per second, per axis
}

// DefaultVisualization returns a plane with 3D noise at the default resolution.
func DefaultVisualization() Visualization {
	v := Visualization{
		Name:            "default",
		Resolution:      DefaultResolution,
		InstanceScale:   1,
		Shape:           shapes.KindPlane.String(),
		NoiseDimensions: MaxNoiseDimensions,
		Domain:          space.Identity(),
		Transform:       space.Identity(),
	}
	v.Domain.Scale = mgl32.Vec3{8, 8, 8}
	return v
}

// applyDefaults fills fields a partial YAML entry left at zero.
func (v *Visualization) applyDefaults() {
	if v.Resolution == 0 {
		v.Resolution = DefaultResolution
	}
	if v.InstanceScale == 0 {
		v.InstanceScale = 1
	}
	if v.Shape == "" {
		v.Shape = shapes.KindPlane.String()
	}
	if v.Domain.Scale == (mgl32.Vec3{}) {
		v.Domain.Scale = mgl32.Vec3{1, 1, 1}
	}
	if v.Transform.Scale == (mgl32.Vec3{}) {
		v.Transform.Scale = mgl32.Vec3{1, 1, 1}
	}
}

// Clamp returns a copy with every parameter inside its bounds and the
// shape name canonicalized. Unknown shapes become the plane.
func (v Visualization) Clamp() Visualization {
	v.Resolution = ClampResolution(v.Resolution)
	v.Displacement = ClampDisplacement(v.Displacement)
	v.InstanceScale = ClampInstanceScale(v.InstanceScale)
	v.NoiseDimensions = ClampNoiseDimensions(v.NoiseDimensions)
	kind, _ := shapes.ParseKind(v.Shape)
	v.Shape = kind.String()
	return v
}

// Kind returns the shape kind named by the configuration.
func (v Visualization) Kind() shapes.Kind {
	kind, _ := shapes.ParseKind(v.Shape)
	return kind
}

// ClampResolution bounds a grid resolution to [1, 512].
func ClampResolution(r int) int {
	return min(max(r, MinResolution), MaxResolution)
}

// ClampDisplacement bounds a displacement to [-0.5, 0.5]. NaN becomes 0.
func ClampDisplacement(d float32) float32 {
	if math32.IsNaN(d) {
		return 0
	}
	return min(max(d, MinDisplacement), MaxDisplacement)
}

// ClampInstanceScale bounds an instance scale to [0.1, 10]. NaN becomes 1.
func ClampInstanceScale(s float32) float32 {
	if math32.IsNaN(s) {
		return 1
	}
	return min(max(s, MinInstanceScale), MaxInstanceScale)
}

// ClampNoiseDimensions bounds a dimension count to [0, 3].
func ClampNoiseDimensions(d int) int {
	return min(max(d, MinNoiseDimensions), MaxNoiseDimensions)
}
