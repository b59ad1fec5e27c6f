// Package testdata provides synthetic video frames for pipeline tests.
package testdata

import "gocv.io/x/gocv"

// SolidFrame builds a single-channel frame filled with one brightness value.
func SolidFrame(width, height int, brightness float64) *gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(brightness, brightness, brightness, 0),
		height, width, gocv.MatTypeCV8UC3,
	)
	return &mat
}

// FlickerFrames builds n frames alternating between dark and bright, enough
// pixel change between consecutive frames to register as motion.
func FlickerFrames(n, width, height int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		brightness := 30.0
		if i%2 == 1 {
			brightness = 220.0
		}
		frames = append(frames, SolidFrame(width, height, brightness))
	}
	return frames
}

// CloseFrames releases every frame in the slice.
func CloseFrames(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}
