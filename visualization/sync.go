package visualization

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/qwes348/Pseudorandom-Noise/gpubuf"
	"github.com/qwes348/Pseudorandom-Noise/wide"
)

type (
	Buffer = gpubuf.Buffer
	Device = gpubuf.Device
)

// Scalars per element of each buffer.
const (
	pointStride = 3
	noiseStride = 1
)

// FlattenPoints views lane-major batches as a flat xyz array. No copy is
// made; the result aliases batches.
func FlattenPoints(batches []wide.Float3x4) []float32 {
	if len(batches) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&batches[0])), len(batches)*wide.Lanes*pointStride)
}

// FlattenNoise views noise batches as one scalar per lane. No copy is made.
func FlattenNoise(batches []wide.F32x4) []float32 {
	if len(batches) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&batches[0])), len(batches)*wide.Lanes*noiseStride)
}

// Bounds is an axis-aligned box given by its centre and full size.
type Bounds struct {
	Center mgl32.Vec3
	Size   mgl32.Vec3
}

// Uniforms is the per-draw block shared by every instance.
type Uniforms struct {
	Resolution    float32
	InstanceScale float32 // instance scale divided by resolution
	Displacement  float32
}

// DrawCall describes one instanced draw of a visualization.
type DrawCall struct {
	Name          string
	Positions     Buffer
	Normals       Buffer
	Noise         Buffer
	InstanceCount int // resolution², padding lanes excluded
	Bounds        Bounds
	Uniforms      Uniforms
}

// Renderer issues instanced draws.
type Renderer interface {
	DrawInstances(call DrawCall)
}

// upload copies host batches into b, panicking when sizes disagree.
func upload(name string, b Buffer, batches int, stride int, data []float32) {
	if b.Len() != batches*wide.Lanes || b.Stride() != stride {
		panic(sizeMismatch(name, b, batches))
	}
	b.SetData(data)
}

// DisplacedPosition returns instance i pushed along its normal by its
// noise sample times displacement. The slices are flat buffer contents.
func DisplacedPosition(positions, normals, noise []float32, i int, displacement float32) mgl32.Vec3 {
	p := mgl32.Vec3{positions[3*i], positions[3*i+1], positions[3*i+2]}
	n := mgl32.Vec3{normals[3*i], normals[3*i+1], normals[3*i+2]}
	return p.Add(n.Mul(noise[i] * displacement))
}
