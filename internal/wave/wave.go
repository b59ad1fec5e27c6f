package wave

// DefaultMinReversals is the direction-change count required before the
// window qualifies as a wave. A deliberate three-round-trip wave produces
// up to six reversals; requiring three tolerates noisy or partially lost
// tracking while rejecting single accidental hand movements, which produce
// at most one reversal.
const DefaultMinReversals = 3

// Reversals counts direction changes in a position sequence. A reversal is
// a sign flip between consecutive frame-to-frame deltas: for each triple of
// samples the previous and current delta are multiplied, and a strictly
// negative product counts as one change. A zero delta yields a zero product
// and never counts, so momentary stillness neither registers as a reversal
// nor breaks a run.
func Reversals(xs []float64) int {
	count := 0
	for i := 2; i < len(xs); i++ {
		prev := xs[i-1] - xs[i-2]
		curr := xs[i] - xs[i-1]
		if prev*curr < 0 {
			count++
		}
	}
	return count
}

// Detector reports whether its window currently exhibits the waving
// pattern. It keeps no state between evaluations beyond the window itself,
// so Active is idempotent and side-effect free.
type Detector struct {
	window       *Window
	minReversals int
}

// NewDetector creates a Detector with the given window size and reversal
// threshold. Non-positive arguments fall back to the defaults.
func NewDetector(windowSize, minReversals int) *Detector {
	if minReversals <= 0 {
		minReversals = DefaultMinReversals
	}
	return &Detector{
		window:       NewWindow(windowSize),
		minReversals: minReversals,
	}
}

// Observe records a new horizontal hand position. It is not called for
// frames where no hand is visible, so temporal gaps simply do not advance
// the window.
func (d *Detector) Observe(x float64) {
	d.window.Observe(x)
}

// Active reports whether the window currently qualifies as a wave.
// It is false until the window holds a complete history.
func (d *Detector) Active() bool {
	if !d.window.Full() {
		return false
	}
	return Reversals(d.window.samples) >= d.minReversals
}

// Window returns the underlying gesture window.
func (d *Detector) Window() *Window {
	return d.window
}

// Reset clears the gesture window.
func (d *Detector) Reset() {
	d.window.Reset()
}
