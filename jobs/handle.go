package jobs

// Handle tracks completion of scheduled work. The zero Handle is already
// complete and can be passed as "no dependency".
type Handle struct {
	done <-chan struct{}
}

// Complete blocks until the work behind h has finished. Every write made
// by that work is visible to the caller afterwards.
func (h Handle) Complete() {
	if h.done != nil {
		<-h.done
	}
}

// IsCompleted reports whether the work has finished, without blocking.
func (h Handle) IsCompleted() bool {
	if h.done == nil {
		return true
	}
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// CombineDependencies returns a Handle that completes once all of hs have.
func CombineDependencies(hs ...Handle) Handle {
	pending := make([]Handle, 0, len(hs))
	for _, h := range hs {
		if !h.IsCompleted() {
			pending = append(pending, h)
		}
	}
	switch len(pending) {
	case 0:
		return Handle{}
	case 1:
		return pending[0]
	}

	done := make(chan struct{})
	go func() {
		for _, h := range pending {
			h.Complete()
		}
		close(done)
	}()
	return Handle{done: done}
}
