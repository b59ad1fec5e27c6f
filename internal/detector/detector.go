package detector

import "gocv.io/x/gocv"

// Estimator defines the interface for hand keypoint estimation
// implementations. It reduces a full landmark estimate to the single
// reference point the wave detector tracks.
type Estimator interface {
	// Detect analyzes a video frame and returns the designated landmark of
	// the most confident hand, in pixel coordinates of the frame.
	// It returns nil when no hand is visible; that is a frequent, valid
	// outcome and not an error.
	Detect(frame *gocv.Mat) (*Keypoint, error)

	// Close releases any resources held by the estimator.
	Close() error
}

// Config holds configuration options for hand keypoint estimation.
type Config struct {
	// Landmark is the hand landmark index used as the motion reference
	// point (default: Wrist).
	Landmark int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Landmark:        Wrist,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
