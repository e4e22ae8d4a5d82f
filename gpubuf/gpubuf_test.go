package gpubuf

import (
	"testing"
)

func TestNewBufferShape(t *testing.T) {
	d := NewHostDevice(nil)
	b := d.NewBuffer(8, 3).(*HostBuffer)

	if b.Len() != 8 || b.Stride() != 3 {
		t.Errorf("shape = %dx%d, want 8x3", b.Len(), b.Stride())
	}
	if len(b.Data()) != 24 {
		t.Errorf("len(Data) = %d, want 24", len(b.Data()))
	}
	if b.ID() == InvalidID {
		t.Error("expected a valid ID")
	}
	if d.Live() != 1 {
		t.Errorf("Live = %d, want 1", d.Live())
	}
}

func TestSetDataCopies(t *testing.T) {
	d := NewHostDevice(nil)
	b := d.NewBuffer(2, 2).(*HostBuffer)

	src := []float32{1, 2, 3, 4}
	b.SetData(src)
	src[0] = 99

	want := []float32{1, 2, 3, 4}
	for i, v := range b.Data() {
		if v != want[i] {
			t.Errorf("Data[%d] = %v, want %v", i, v, want[i])
		}
	}
	if b.Uploads() != 1 {
		t.Errorf("Uploads = %d, want 1", b.Uploads())
	}
}

func TestSetDataSizeMismatchPanics(t *testing.T) {
	d := NewHostDevice(nil)
	b := d.NewBuffer(4, 3)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on size mismatch")
		}
	}()
	b.SetData(make([]float32, 11))
}

func TestReleaseTracking(t *testing.T) {
	d := NewHostDevice(nil)
	a := d.NewBuffer(4, 1)
	b := d.NewBuffer(4, 1)

	d.ReleaseBuffer(a)
	if d.Live() != 1 {
		t.Errorf("Live = %d, want 1", d.Live())
	}
	if !a.(*HostBuffer).Released() {
		t.Error("expected a to be marked released")
	}
	d.ReleaseBuffer(b)

	allocs, releases := d.Counts()
	if allocs != 2 || releases != 2 {
		t.Errorf("Counts = (%d, %d), want (2, 2)", allocs, releases)
	}
}

func TestDoubleReleasePanics(t *testing.T) {
	d := NewHostDevice(nil)
	b := d.NewBuffer(1, 1)
	d.ReleaseBuffer(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on double release")
		}
	}()
	d.ReleaseBuffer(b)
}

func TestReleaseFromOtherDevicePanics(t *testing.T) {
	d1 := NewHostDevice(nil)
	d2 := NewHostDevice(nil)
	b := d1.NewBuffer(1, 1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic releasing buffer on wrong device")
		}
	}()
	d2.ReleaseBuffer(b)
}

func TestSetDataAfterReleasePanics(t *testing.T) {
	d := NewHostDevice(nil)
	b := d.NewBuffer(1, 1)
	d.ReleaseBuffer(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic writing released buffer")
		}
	}()
	b.SetData([]float32{1})
}

func BenchmarkSetData(b *testing.B) {
	d := NewHostDevice(nil)
	buf := d.NewBuffer(512*512, 3)
	data := make([]float32, 512*512*3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.SetData(data)
	}
}
