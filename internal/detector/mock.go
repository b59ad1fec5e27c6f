package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockEstimator is a test implementation of the Estimator interface.
// It plays back a scripted sequence of keypoints, one per Detect call;
// nil entries stand for frames where no hand is visible.
type MockEstimator struct {
	mu       sync.Mutex
	sequence []*Keypoint
	index    int
	fixed    *Keypoint
	err      error
	calls    int
}

// NewMockEstimator creates a new MockEstimator instance.
func NewMockEstimator() *MockEstimator {
	return &MockEstimator{}
}

// SetKeypoint sets a fixed keypoint returned by every Detect call once the
// scripted sequence is exhausted. Pass nil for "no hand".
func (m *MockEstimator) SetKeypoint(kp *Keypoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixed = kp
}

// SetSequence sets the scripted keypoint sequence, consumed one entry per
// Detect call.
func (m *MockEstimator) SetSequence(kps []*Keypoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = kps
	m.index = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockEstimator) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next scripted keypoint, the fixed keypoint once the
// script is exhausted, or the configured error.
func (m *MockEstimator) Detect(frame *gocv.Mat) (*Keypoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++

	if m.err != nil {
		return nil, m.err
	}

	if m.index < len(m.sequence) {
		kp := m.sequence[m.index]
		m.index++
		return kp, nil
	}

	return m.fixed, nil
}

// Calls returns how many times Detect has been invoked.
func (m *MockEstimator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Close is a no-op for the mock estimator.
func (m *MockEstimator) Close() error {
	return nil
}

// WaveKeypoints returns n keypoints alternating between two horizontal
// positions, the motion signature of a deliberate wave.
func WaveKeypoints(n int, lo, hi float64) []*Keypoint {
	kps := make([]*Keypoint, n)
	for i := range kps {
		x := lo
		if i%2 == 1 {
			x = hi
		}
		kps[i] = &Keypoint{X: x, Y: 120}
	}
	return kps
}

// RampKeypoints returns n keypoints drifting steadily in one direction,
// the signature of ordinary non-waving motion.
func RampKeypoints(n int, start, step float64) []*Keypoint {
	kps := make([]*Keypoint, n)
	x := start
	for i := range kps {
		kps[i] = &Keypoint{X: x, Y: 120}
		x += step
	}
	return kps
}
