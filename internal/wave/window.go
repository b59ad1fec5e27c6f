// Package wave implements the waving-gesture detection core: the sliding
// window of hand positions, the reversal-count detector, the alert state
// machine, and the frame throttler.
package wave

// DefaultWindowSize is the number of recent positions analyzed for oscillation.
const DefaultWindowSize = 20

// Window is a fixed-capacity FIFO of the most recent horizontal hand
// positions. Insertion order encodes the temporal order of motion; once the
// window is full the oldest sample is evicted on each insert.
type Window struct {
	samples []float64
	size    int
}

// NewWindow creates a Window holding up to size samples.
// Sizes less than or equal to zero fall back to DefaultWindowSize.
func NewWindow(size int) *Window {
	if size <= 0 {
		size = DefaultWindowSize
	}
	return &Window{
		samples: make([]float64, 0, size),
		size:    size,
	}
}

// Observe appends a horizontal position, evicting the oldest sample once
// the window is at capacity. The coordinate is not range-checked; the
// caller guarantees a valid pixel position.
func (w *Window) Observe(x float64) {
	if len(w.samples) >= w.size {
		// Shift left by one, dropping the oldest sample
		copy(w.samples, w.samples[1:])
		w.samples = w.samples[:w.size-1]
	}
	w.samples = append(w.samples, x)
}

// Len returns the number of samples currently held.
func (w *Window) Len() int {
	return len(w.samples)
}

// Size returns the window capacity.
func (w *Window) Size() int {
	return w.size
}

// Full reports whether the window has accumulated a complete history.
func (w *Window) Full() bool {
	return len(w.samples) == w.size
}

// Samples returns a copy of the current contents, oldest first.
func (w *Window) Samples() []float64 {
	out := make([]float64, len(w.samples))
	copy(out, w.samples)
	return out
}

// Reset discards all samples.
func (w *Window) Reset() {
	w.samples = w.samples[:0]
}
