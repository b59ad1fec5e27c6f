package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back a canned frame sequence for tests. It can loop the
// sequence and inject transient read failures to exercise the pipeline's
// skip-and-continue behavior.
type MockCamera struct {
	mu       sync.Mutex
	frames   []*gocv.Mat
	index    int
	loop     bool
	running  bool
	failNext error
	reads    int
	fps      int
}

// NewMockCamera creates a MockCamera over the given frames.
// With loop set, playback restarts from the first frame after the last.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{
		frames: frames,
		loop:   loop,
		fps:    DefaultFPS,
	}
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.index = 0
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

// ReadFrame returns a clone of the next frame in the sequence, so callers
// may close it without touching the canned originals.
func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}

	if c.failNext != nil {
		err := c.failNext
		c.failNext = nil
		return nil, err
	}

	if len(c.frames) == 0 {
		return nil, ErrCameraNotOpen
	}

	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, ErrCameraNotOpen
		}
		c.index = 0
	}

	frame := c.frames[c.index].Clone()
	c.index++
	c.reads++

	return &frame, nil
}

func (c *MockCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

func (c *MockCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// FailNextRead makes the next ReadFrame return err once, simulating a
// transient capture failure.
func (c *MockCamera) FailNextRead(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failNext = err
}

// Reads returns the number of successful frame reads.
func (c *MockCamera) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// SetFrames replaces the frame sequence and restarts playback.
func (c *MockCamera) SetFrames(frames []*gocv.Mat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = frames
	c.index = 0
}
