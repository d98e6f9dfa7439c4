package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back pre-recorded frames for testing. It can also be made
// to fail on Open to simulate a missing device or denied permission.
type MockCamera struct {
	frames  []*gocv.Mat
	index   int
	loop    bool
	openErr error
	opens   int
	fps     int
	mu      sync.Mutex
	running bool
}

// NewMockCamera creates a MockCamera over frames. With loop set, playback
// restarts after the last frame.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{
		frames: frames,
		loop:   loop,
		fps:    DefaultFPS,
	}
}

// SetOpenError makes subsequent Open calls fail with err.
func (c *MockCamera) SetOpenError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openErr = err
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.opens++
	if c.openErr != nil {
		return c.openErr
	}
	c.running = true
	c.index = 0
	return nil
}

// Opens returns how many times Open was called.
func (c *MockCamera) Opens() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opens
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}
	if len(c.frames) == 0 {
		return nil, fmt.Errorf("no frames available")
	}
	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, fmt.Errorf("no more frames")
		}
		c.index = 0
	}

	// Clone so the caller may close it.
	frame := c.frames[c.index].Clone()
	c.index++

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
