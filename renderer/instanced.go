// Package renderer draws visualizations with raylib.
package renderer

import (
	_ "embed"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/qwes348/Pseudorandom-Noise/camera"
	"github.com/qwes348/Pseudorandom-Noise/gpubuf"
	"github.com/qwes348/Pseudorandom-Noise/visualization"
)

//go:embed shaders/points.vs
var pointsVS string

//go:embed shaders/points.fs
var pointsFS string

// hostData is implemented by buffers whose contents live in host memory.
type hostData interface {
	Data() []float32
}

// uploadCounter is implemented by buffers that count their uploads.
type uploadCounter interface {
	Uploads() int
}

// instanceCache holds the transforms built from one position buffer.
type instanceCache struct {
	uploads    int
	uniforms   visualization.Uniforms
	count      int
	transforms []rl.Matrix
}

// InstancedRenderer draws every sample of a visualization as a small cube
// with a single DrawMeshInstanced call.
type InstancedRenderer struct {
	shader   rl.Shader
	lightLoc int32
	mesh     rl.Mesh
	material rl.Material

	caches *gpubuf.Cache[instanceCache]

	// ShowBounds draws each visualization's bounding box.
	ShowBounds bool

	initialized bool
}

// NewInstancedRenderer creates a renderer. Call Init after the window exists.
func NewInstancedRenderer() *InstancedRenderer {
	return &InstancedRenderer{caches: gpubuf.NewCache[instanceCache]()}
}

// Init loads the shader and the instance mesh.
func (r *InstancedRenderer) Init() {
	if r.initialized {
		return
	}
	r.shader = rl.LoadShaderFromMemory(pointsVS, pointsFS)
	r.shader.UpdateLocation(rl.ShaderLocMatrixMvp, rl.GetShaderLocation(r.shader, "mvp"))
	r.shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(r.shader, "instanceTransform"))
	r.lightLoc = rl.GetShaderLocation(r.shader, "lightDir")
	rl.SetShaderValue(r.shader, r.lightLoc, []float32{-0.4, -1, -0.6}, rl.ShaderUniformVec3)

	r.mesh = rl.GenMeshCube(1, 1, 1)
	r.material = rl.LoadMaterialDefault()
	r.material.Shader = r.shader

	r.initialized = true
}

// DrawInstances implements visualization.Renderer. It must be called
// between BeginMode3D and EndMode3D.
func (r *InstancedRenderer) DrawInstances(call visualization.DrawCall) {
	if !r.initialized || call.InstanceCount == 0 {
		return
	}
	transforms := r.transforms(call)
	rl.DrawMeshInstanced(r.mesh, r.material, transforms, len(transforms))

	if r.ShowBounds {
		b := call.Bounds
		rl.DrawCubeWiresV(
			rl.NewVector3(b.Center[0], b.Center[1], b.Center[2]),
			rl.NewVector3(b.Size[0], b.Size[1], b.Size[2]),
			rl.Gray,
		)
	}
}

// transforms returns the instance matrices for call, rebuilding them only
// when the buffers were re-uploaded or the uniforms changed.
func (r *InstancedRenderer) transforms(call visualization.DrawCall) []rl.Matrix {
	c := r.caches.Get(call.Positions, func() *instanceCache {
		return &instanceCache{uploads: -1}
	})
	uploads := -1
	if u, ok := call.Positions.(uploadCounter); ok {
		uploads = u.Uploads()
	}
	if uploads >= 0 && c.uploads == uploads &&
		c.uniforms == call.Uniforms && c.count == call.InstanceCount {
		return c.transforms
	}

	positions := hostSlice(call.Positions)
	normals := hostSlice(call.Normals)
	noise := hostSlice(call.Noise)

	if cap(c.transforms) < call.InstanceCount {
		c.transforms = make([]rl.Matrix, call.InstanceCount)
	}
	c.transforms = c.transforms[:call.InstanceCount]

	s := call.Uniforms.InstanceScale
	scale := rl.MatrixScale(s, s, s)
	for i := range c.transforms {
		p := visualization.DisplacedPosition(positions, normals, noise, i, call.Uniforms.Displacement)
		c.transforms[i] = rl.MatrixMultiply(scale, rl.MatrixTranslate(p[0], p[1], p[2]))
	}

	c.uploads = uploads
	c.uniforms = call.Uniforms
	c.count = call.InstanceCount
	return c.transforms
}

func hostSlice(b visualization.Buffer) []float32 {
	h, ok := b.(hostData)
	if !ok {
		panic(fmt.Sprintf("renderer: buffer %T has no host data", b))
	}
	return h.Data()
}

// Prune drops cached transforms whose position buffer has been released,
// as happens on resize or disable.
func (r *InstancedRenderer) Prune() int {
	return r.caches.Prune()
}

// Unload frees GPU resources.
func (r *InstancedRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadShader(r.shader)
	rl.UnloadMesh(&r.mesh)
	r.caches.Reset()
	r.initialized = false
}

// Camera3D converts an orbit camera to raylib's camera.
func Camera3D(o *camera.Orbit) rl.Camera3D {
	p, t, u := o.Position(), o.Target, o.Up()
	return rl.Camera3D{
		Position:   rl.NewVector3(p[0], p[1], p[2]),
		Target:     rl.NewVector3(t[0], t[1], t[2]),
		Up:         rl.NewVector3(u[0], u[1], u[2]),
		Fovy:       o.FOV,
		Projection: rl.CameraPerspective,
	}
}
