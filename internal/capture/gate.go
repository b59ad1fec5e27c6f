package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// MotionGate decides whether anything in the scene is moving at all, using
// frame differencing with Gaussian blur for noise reduction. The pipeline
// idles at a low frame rate and only pays for hand estimation while the
// gate reports motion; it has no influence on what counts as a wave.
type MotionGate struct {
	threshold float64
	baseline  gocv.Mat
	primed    bool
	mu        sync.Mutex
}

// Gate tuning constants
const (
	// blurKernelSize is the kernel size for Gaussian blur (21x21)
	blurKernelSize = 21
	// diffThreshold is the binary threshold for difference detection
	diffThreshold = 25
)

// NewMotionGate creates a MotionGate with the given threshold: the
// percentage of pixels that must change between consecutive frames for the
// scene to count as moving (1.0 means 1%).
func NewMotionGate(threshold float64) *MotionGate {
	return &MotionGate{
		threshold: threshold,
		baseline:  gocv.NewMat(),
	}
}

// Detect compares a frame against the previous one and reports whether the
// scene is moving, along with the percentage of pixels that changed.
// The first frame primes the baseline and always reports no motion.
func (g *MotionGate) Detect(frame *gocv.Mat) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernelSize, Y: blurKernelSize}, 0, 0, gocv.BorderDefault)

	if !g.primed {
		blurred.CopyTo(&g.baseline)
		g.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.baseline, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, diffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()
	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&g.baseline)

	return changePercent > g.threshold, changePercent
}

// Reset clears the baseline so the next frame primes the gate anew.
func (g *MotionGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.baseline.Empty() {
		g.baseline.Close()
		g.baseline = gocv.NewMat()
	}
	g.primed = false
}

// Close releases resources used by the gate.
func (g *MotionGate) Close() {
	g.Reset()
}

// SetThreshold sets the pixel-change percentage required for motion.
// Values less than or equal to 0 are ignored.
func (g *MotionGate) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.threshold = threshold
}
