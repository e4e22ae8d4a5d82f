package visualization

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/qwes348/Pseudorandom-Noise/config"
	"github.com/qwes348/Pseudorandom-Noise/gpubuf"
	"github.com/qwes348/Pseudorandom-Noise/jobs"
	"github.com/qwes348/Pseudorandom-Noise/shapes"
	"github.com/qwes348/Pseudorandom-Noise/space"
	"github.com/qwes348/Pseudorandom-Noise/telemetry"
	"github.com/qwes348/Pseudorandom-Noise/wide"
)

type recordingRenderer struct {
	calls []DrawCall
}

func (r *recordingRenderer) DrawInstances(call DrawCall) {
	r.calls = append(r.calls, call)
}

func newTestController(t *testing.T, settings config.Visualization) (*Controller, *gpubuf.HostDevice) {
	t.Helper()
	pool := jobs.NewPool(4, 2)
	t.Cleanup(pool.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	device := gpubuf.NewHostDevice(logger)
	c := New(settings, Options{Pool: pool, Device: device, Logger: logger})
	return c, device
}

func planeSettings(resolution, dimensions int) config.Visualization {
	v := config.DefaultVisualization()
	v.Name = "test"
	v.Resolution = resolution
	v.Shape = "plane"
	v.NoiseDimensions = dimensions
	v.Displacement = 0
	return v
}

func TestPlaneResolutionTwoWithoutNoise(t *testing.T) {
	c, device := newTestController(t, planeSettings(2, 0))
	c.Enable()

	if !c.Update() {
		t.Fatal("first Update should recompute")
	}
	if c.BatchCount() != 1 {
		t.Fatalf("BatchCount = %d, want 1", c.BatchCount())
	}

	want := wide.Float3x4{
		{-0.25, 0, -0.25},
		{0.25, 0, -0.25},
		{-0.25, 0, 0.25},
		{0.25, 0, 0.25},
	}
	for lane := range want {
		if !c.Positions()[0][lane].ApproxEqual(want[lane]) {
			t.Errorf("lane %d: position %v, want %v", lane, c.Positions()[0][lane], want[lane])
		}
		if c.Normals()[0][lane] != (mgl32.Vec3{0, 1, 0}) {
			t.Errorf("lane %d: normal %v, want up", lane, c.Normals()[0][lane])
		}
	}
	if c.Noise()[0] != (wide.F32x4{}) {
		t.Errorf("noise = %v, want zeros with noise disabled", c.Noise()[0])
	}
	if device.Live() != 3 {
		t.Errorf("live buffers = %d, want 3", device.Live())
	}
}

func TestUploadedBuffersMatchHostBatches(t *testing.T) {
	c, _ := newTestController(t, planeSettings(5, 3))
	c.Enable()
	c.Update()

	r := &recordingRenderer{}
	c.Draw(r)
	if len(r.calls) != 1 {
		t.Fatalf("got %d draw calls, want 1", len(r.calls))
	}
	call := r.calls[0]

	positions := call.Positions.(*gpubuf.HostBuffer).Data()
	flat := FlattenPoints(c.Positions())
	if len(positions) != len(flat) {
		t.Fatalf("uploaded %d scalars, host has %d", len(positions), len(flat))
	}
	for i := range flat {
		if positions[i] != flat[i] {
			t.Fatalf("scalar %d: uploaded %v, host %v", i, positions[i], flat[i])
		}
	}
	// Batch 1, lane 2 is instance 6.
	p := c.Positions()[1][2]
	if positions[6*3] != p[0] || positions[6*3+1] != p[1] || positions[6*3+2] != p[2] {
		t.Errorf("instance 6 not at offset 18: %v vs %v", positions[18:21], p)
	}

	noise := call.Noise.(*gpubuf.HostBuffer).Data()
	if noise[6] != c.Noise()[1][2] {
		t.Errorf("noise instance 6 = %v, want %v", noise[6], c.Noise()[1][2])
	}
	if len(c.NoiseSamples()) != 25 {
		t.Errorf("NoiseSamples len = %d, want 25", len(c.NoiseSamples()))
	}

	if call.InstanceCount != 25 {
		t.Errorf("InstanceCount = %d, want 25", call.InstanceCount)
	}
	if call.Noise.Len() != 28 || call.Positions.Len() != 28 {
		t.Errorf("buffer lengths = %d/%d, want 28", call.Positions.Len(), call.Noise.Len())
	}
}

func TestDirtyCycle(t *testing.T) {
	c, _ := newTestController(t, planeSettings(8, 3))
	c.Enable()

	if !c.Update() {
		t.Fatal("enable should leave the controller dirty")
	}
	if c.Update() {
		t.Fatal("second Update without changes must not recompute")
	}

	mutations := []struct {
		name string
		fn   func()
	}{
		{"displacement", func() { c.SetDisplacement(0.3) }},
		{"instance scale", func() { c.SetInstanceScale(4) }},
		{"shape", func() { c.SetShape(shapes.KindTorus) }},
		{"dimensions", func() { c.SetNoiseDimensions(1) }},
		{"seed", func() { c.SetSeed(42) }},
		{"domain", func() { c.SetDomain(space.TRS{Scale: mgl32.Vec3{3, 3, 3}}) }},
		{"transform", func() { c.SetTransform(space.TRS{Translation: mgl32.Vec3{1, 0, 0}, Scale: mgl32.Vec3{1, 1, 1}}) }},
		{"resolution", func() { c.SetResolution(9) }},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			before := c.Recomputes()
			m.fn()
			if !c.Update() {
				t.Fatal("Update after mutation must recompute")
			}
			if c.Update() {
				t.Fatal("Update without mutation must stay clean")
			}
			if c.Recomputes() != before+1 {
				t.Errorf("Recomputes = %d, want %d", c.Recomputes(), before+1)
			}
		})
	}
}

func TestSettingSameValueStaysClean(t *testing.T) {
	c, _ := newTestController(t, planeSettings(4, 2))
	c.Enable()
	c.Update()

	c.SetResolution(4)
	c.SetSeed(c.Settings().Seed)
	if c.Dirty() {
		t.Error("unchanged settings should not mark dirty")
	}
	if c.Update() {
		t.Error("Update should not recompute")
	}
}

func TestResize(t *testing.T) {
	c, device := newTestController(t, planeSettings(16, 3))
	c.Enable()
	c.Update()
	if c.BatchCount() != 64 {
		t.Fatalf("BatchCount = %d, want 64", c.BatchCount())
	}

	r := &recordingRenderer{}
	c.Draw(r)
	oldPositions := r.calls[0].Positions.(*gpubuf.HostBuffer)

	c.SetResolution(32)

	if !oldPositions.Released() {
		t.Error("old position buffer should be released on resize")
	}
	allocs, releases := device.Counts()
	if allocs != 6 || releases != 3 {
		t.Errorf("Counts = (%d, %d), want (6, 3)", allocs, releases)
	}
	if device.Live() != 3 {
		t.Errorf("live buffers = %d, want 3", device.Live())
	}
	if c.BatchCount() != 256 {
		t.Errorf("BatchCount = %d, want 256", c.BatchCount())
	}
	if len(c.Normals()) != 256 || len(c.Noise()) != 256 {
		t.Errorf("normals/noise = %d/%d, want 256", len(c.Normals()), len(c.Noise()))
	}
	if !c.Dirty() {
		t.Error("resize should mark dirty")
	}
	if !c.Update() {
		t.Error("Update after resize should recompute")
	}

	c.Draw(r)
	if got := r.calls[1].Positions.Len(); got != 1024 {
		t.Errorf("new position buffer len = %d, want 1024", got)
	}
}

func TestBatchCountsAlwaysEqual(t *testing.T) {
	c, _ := newTestController(t, planeSettings(1, 3))
	c.Enable()
	for _, res := range []int{1, 2, 3, 7, 31, 64, 100} {
		c.SetResolution(res)
		c.Update()
		want := (res*res + 3) / 4
		if c.BatchCount() != want || len(c.Normals()) != want || len(c.Noise()) != want {
			t.Errorf("res %d: batches %d/%d/%d, want %d",
				res, c.BatchCount(), len(c.Normals()), len(c.Noise()), want)
		}
	}
}

func TestSettersClamp(t *testing.T) {
	c, _ := newTestController(t, planeSettings(4, 3))
	c.SetResolution(10000)
	c.SetDisplacement(-9)
	c.SetInstanceScale(0)
	c.SetNoiseDimensions(7)

	s := c.Settings()
	if s.Resolution != config.MaxResolution {
		t.Errorf("Resolution = %d", s.Resolution)
	}
	if s.Displacement != config.MinDisplacement {
		t.Errorf("Displacement = %v", s.Displacement)
	}
	if s.InstanceScale != config.MinInstanceScale {
		t.Errorf("InstanceScale = %v", s.InstanceScale)
	}
	if s.NoiseDimensions != config.MaxNoiseDimensions {
		t.Errorf("NoiseDimensions = %d", s.NoiseDimensions)
	}
	// Disabled controllers keep settings without allocating.
	if c.BatchCount() != 0 {
		t.Errorf("BatchCount = %d while disabled, want 0", c.BatchCount())
	}
}

func TestSettersClampNaN(t *testing.T) {
	c, _ := newTestController(t, planeSettings(4, 3))
	c.Enable()
	c.SetDisplacement(0.3)
	c.SetInstanceScale(4)
	c.Update()

	nan := float32(math.NaN())
	c.SetDisplacement(nan)
	c.SetInstanceScale(nan)

	s := c.Settings()
	if s.Displacement != 0 {
		t.Errorf("Displacement = %v, want 0", s.Displacement)
	}
	if s.InstanceScale != 1 {
		t.Errorf("InstanceScale = %v, want 1", s.InstanceScale)
	}

	c.Update()
	for i, v := range c.Bounds().Size {
		if math.IsNaN(float64(v)) {
			t.Errorf("bounds size[%d] is NaN", i)
		}
	}

	// Setting the same NaN again maps to the same values.
	c.SetDisplacement(nan)
	c.SetInstanceScale(nan)
	if c.Dirty() {
		t.Error("repeated NaN set marked the controller dirty")
	}
}

func TestStepSeedKeepsWideSeeds(t *testing.T) {
	tests := []struct {
		name  string
		seed  int32
		delta int32
		want  int32
	}{
		{"negative", -5, 1, -4},
		{"above 99999", 200000, -1, 199999},
		{"large step", 123456, 100, 123556},
		{"wraps at max", math.MaxInt32, 1, math.MinInt32},
		{"wraps at min", math.MinInt32, -1, math.MaxInt32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := planeSettings(4, 3)
			settings.Seed = tt.seed
			c, _ := newTestController(t, settings)
			c.Enable()
			c.Update()
			if got := c.Settings().Seed; got != tt.seed {
				t.Fatalf("configured seed = %d, want %d", got, tt.seed)
			}

			c.StepSeed(tt.delta)
			if got := c.Settings().Seed; got != tt.want {
				t.Errorf("Seed = %d, want %d", got, tt.want)
			}
			if !c.Dirty() {
				t.Error("StepSeed should mark dirty")
			}
		})
	}
}

func TestStepSeedZeroStaysClean(t *testing.T) {
	settings := planeSettings(4, 3)
	settings.Seed = -42
	c, _ := newTestController(t, settings)
	c.Enable()
	c.Update()

	c.StepSeed(0)
	if c.Dirty() {
		t.Error("zero step should not mark dirty")
	}
	if c.Settings().Seed != -42 {
		t.Errorf("Seed = %d, want -42", c.Settings().Seed)
	}
}

func TestUpdateWhileDisabledPanics(t *testing.T) {
	c, _ := newTestController(t, planeSettings(2, 0))
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	c.Update()
}

func TestDisableReleasesBuffers(t *testing.T) {
	c, device := newTestController(t, planeSettings(4, 1))
	c.Enable()
	c.Update()
	c.Disable()

	if device.Live() != 0 {
		t.Errorf("live buffers = %d after Disable, want 0", device.Live())
	}
	if c.State() != StateDisabled || c.BatchCount() != 0 {
		t.Errorf("state = %v, batches = %d", c.State(), c.BatchCount())
	}

	c.Enable()
	if !c.Update() {
		t.Error("re-enabled controller should recompute")
	}
}

func TestUploadSizeMismatchPanics(t *testing.T) {
	c, device := newTestController(t, planeSettings(4, 0))
	c.Enable()
	device.ReleaseBuffer(c.normalBuf)
	c.normalBuf = device.NewBuffer(3, pointStride)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on buffer size mismatch")
		}
	}()
	c.Update()
}

func TestBoundsAndUniforms(t *testing.T) {
	v := planeSettings(10, 3)
	v.Displacement = 0.2
	v.InstanceScale = 2
	v.Transform = space.TRS{
		Translation: mgl32.Vec3{1, 2, 3},
		Scale:       mgl32.Vec3{0.5, -3, 1},
	}
	c, _ := newTestController(t, v)
	c.Enable()
	c.Update()

	b := c.Bounds()
	if b.Center != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Center = %v", b.Center)
	}
	if want := float32(2*3 + 0.2); !b.Size.ApproxEqual(mgl32.Vec3{want, want, want}) {
		t.Errorf("Size = %v, want %v on every axis", b.Size, want)
	}

	r := &recordingRenderer{}
	c.Draw(r)
	u := r.calls[0].Uniforms
	if u.Resolution != 10 || u.InstanceScale != 0.2 || u.Displacement != 0.2 {
		t.Errorf("Uniforms = %+v", u)
	}
}

func TestNoiseMatchesSeed(t *testing.T) {
	a, _ := newTestController(t, planeSettings(6, 3))
	b, _ := newTestController(t, planeSettings(6, 3))
	a.Enable()
	b.Enable()
	a.Update()
	b.Update()
	for i := range a.Noise() {
		if a.Noise()[i] != b.Noise()[i] {
			t.Fatalf("batch %d differs between identical controllers", i)
		}
	}

	b.SetSeed(99)
	b.Update()
	same := true
	for i := range a.Noise() {
		if a.Noise()[i] != b.Noise()[i] {
			same = false
		}
	}
	if same {
		t.Error("changing the seed should change the noise")
	}
}

func TestPerfPhasesRecorded(t *testing.T) {
	pool := jobs.NewPool(2, 1)
	defer pool.Close()
	perf := telemetry.NewPerfCollector(4)
	c := New(planeSettings(8, 3), Options{
		Pool:   pool,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Perf:   perf,
	})
	c.Enable()

	perf.StartTick()
	c.Update()
	perf.EndTick()

	stats := perf.Stats()
	for _, phase := range []string{telemetry.PhaseSchedule, telemetry.PhaseComplete, telemetry.PhaseUpload} {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("phase %q not recorded", phase)
		}
	}
	if stats.Recomputes != 1 {
		t.Errorf("Recomputes = %d, want 1", stats.Recomputes)
	}
}

func TestFlattenLayout(t *testing.T) {
	batches := []wide.Float3x4{{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}}
	flat := FlattenPoints(batches)
	for i, v := range flat {
		if v != float32(i+1) {
			t.Fatalf("flat[%d] = %v, want %v", i, v, i+1)
		}
	}
	if FlattenPoints(nil) != nil || FlattenNoise(nil) != nil {
		t.Error("empty input should flatten to nil")
	}
}

func TestDisplacedPosition(t *testing.T) {
	positions := []float32{0, 0, 0, 1, 2, 3}
	normals := []float32{0, 1, 0, 0, 0, -1}
	noise := []float32{0.5, -1}

	if got := DisplacedPosition(positions, normals, noise, 0, 0.2); !got.ApproxEqual(mgl32.Vec3{0, 0.1, 0}) {
		t.Errorf("instance 0 = %v", got)
	}
	if got := DisplacedPosition(positions, normals, noise, 1, 0.5); !got.ApproxEqual(mgl32.Vec3{1, 2, 3.5}) {
		t.Errorf("instance 1 = %v", got)
	}
}
