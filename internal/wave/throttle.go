package wave

// DefaultStride forwards every second captured frame to the estimator.
const DefaultStride = 2

// Throttler decides which captured frames are forwarded to the landmark
// estimator. Every strideth frame is admitted; the rest are still read
// from the capture device, so its buffer does not build up, but are
// discarded without further processing.
type Throttler struct {
	stride uint64
	frames uint64
}

// NewThrottler creates a Throttler with the given stride. A stride less
// than or equal to zero falls back to DefaultStride; a stride of one
// admits every frame.
func NewThrottler(stride int) *Throttler {
	if stride <= 0 {
		stride = DefaultStride
	}
	return &Throttler{stride: uint64(stride)}
}

// Admit consumes one frame and reports whether it should be processed.
// Frame zero is always admitted.
func (t *Throttler) Admit() bool {
	admit := t.frames%t.stride == 0
	t.frames++
	return admit
}

// Frames returns the number of frames seen so far.
func (t *Throttler) Frames() uint64 {
	return t.frames
}

// Stride returns the configured sampling interval.
func (t *Throttler) Stride() int {
	return int(t.stride)
}
