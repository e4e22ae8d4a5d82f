// Package gpubuf defines the buffer contract between the point pipeline and
// whatever draws it, plus a host-memory implementation used by the raylib
// renderer, the headless runner and tests.
package gpubuf

import (
	"fmt"
	"log/slog"
	"sync"

	"gonum.org/v1/gonum/blas/blas32"
)

// Buffer is a flat array of float32 elements, Stride scalars each.
type Buffer interface {
	// Len returns the element count.
	Len() int
	// Stride returns the number of scalars per element.
	Stride() int
	// SetData replaces the whole contents. len(data) must equal Len()*Stride().
	SetData(data []float32)
}

// Device allocates and releases buffers.
type Device interface {
	NewBuffer(count, stride int) Buffer
	ReleaseBuffer(b Buffer)
}

// BufferID is an opaque handle to a host buffer.
type BufferID uint64

// InvalidID is the zero value, never handed out.
const InvalidID BufferID = 0

// HostBuffer is a Buffer backed by a Go slice.
type HostBuffer struct {
	id       BufferID
	count    int
	stride   int
	data     []float32
	uploads  int
	released bool
}

func (b *HostBuffer) ID() BufferID { return b.id }
func (b *HostBuffer) Len() int     { return b.count }
func (b *HostBuffer) Stride() int  { return b.stride }

// Uploads returns how many times SetData has been called.
func (b *HostBuffer) Uploads() int { return b.uploads }

// Released reports whether the owning device released the buffer.
func (b *HostBuffer) Released() bool { return b.released }

// Data returns the current contents. The slice is owned by the buffer.
func (b *HostBuffer) Data() []float32 { return b.data }

// SetData copies data into the buffer. A size mismatch or a write to a
// released buffer panics.
func (b *HostBuffer) SetData(data []float32) {
	if b.released {
		panic(fmt.Sprintf("gpubuf: SetData on released buffer %d", b.id))
	}
	if len(data) != len(b.data) {
		panic(fmt.Sprintf("gpubuf: buffer %d holds %d scalars, got %d", b.id, len(b.data), len(data)))
	}
	if len(data) > 0 {
		blas32.Copy(
			blas32.Vector{N: len(data), Inc: 1, Data: data},
			blas32.Vector{N: len(b.data), Inc: 1, Data: b.data},
		)
	}
	b.uploads++
}

// HostDevice hands out HostBuffers and tracks which are live.
type HostDevice struct {
	mu       sync.Mutex
	nextID   BufferID
	live     map[BufferID]*HostBuffer
	allocs   int
	releases int
	logger   *slog.Logger
}

// NewHostDevice creates a device. A nil logger uses slog.Default().
func NewHostDevice(logger *slog.Logger) *HostDevice {
	if logger == nil {
		logger = slog.Default()
	}
	return &HostDevice{
		live:   make(map[BufferID]*HostBuffer),
		logger: logger,
	}
}

// NewBuffer allocates a zeroed buffer of count elements.
func (d *HostDevice) NewBuffer(count, stride int) Buffer {
	if count < 0 || stride < 1 {
		panic(fmt.Sprintf("gpubuf: invalid buffer shape %dx%d", count, stride))
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	b := &HostBuffer{
		id:     d.nextID,
		count:  count,
		stride: stride,
		data:   make([]float32, count*stride),
	}
	d.live[b.id] = b
	d.allocs++
	d.logger.Debug("buffer allocated", "id", b.id, "count", count, "stride", stride)
	return b
}

// ReleaseBuffer frees b. Releasing a buffer twice, or one from another
// device, panics.
func (d *HostDevice) ReleaseBuffer(b Buffer) {
	hb, ok := b.(*HostBuffer)
	if !ok {
		panic(fmt.Sprintf("gpubuf: cannot release foreign buffer %T", b))
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.live[hb.id] != hb {
		panic(fmt.Sprintf("gpubuf: buffer %d is not live on this device", hb.id))
	}
	delete(d.live, hb.id)
	hb.released = true
	hb.data = nil
	d.releases++
	d.logger.Debug("buffer released", "id", hb.id)
}

// Live returns the number of allocated, unreleased buffers.
func (d *HostDevice) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.live)
}

// Counts returns the total allocations and releases so far.
func (d *HostDevice) Counts() (allocs, releases int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.allocs, d.releases
}
