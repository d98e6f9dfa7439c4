// Package capture owns the camera: frame capture through GoCV and the
// lifecycle that opens the device once the user has consented.
package capture

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"gocv.io/x/gocv"
)

// Default camera settings.
const (
	DefaultFPS    = 15
	DefaultWidth  = 640
	DefaultHeight = 480
)

var (
	// ErrCameraNotOpen is returned when trying to read from a camera that is not open.
	ErrCameraNotOpen = errors.New("camera is not open")
	// ErrNoDevice is returned when the capture device cannot be opened, either
	// because it does not exist or because access was denied.
	ErrNoDevice = errors.New("camera device unavailable")
)

// Camera defines the interface for camera capture implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// Config selects and sizes the capture device.
type Config struct {
	// Device is a device index ("0") or a video file path.
	Device string `yaml:"device"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

// DefaultConfig returns the settings used for gesture capture.
func DefaultConfig() Config {
	return Config{
		Device: "0",
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FPS:    DefaultFPS,
	}
}

// cameraImpl manages video capture from a device or file using GoCV.
type cameraImpl struct {
	config  Config
	capture *gocv.VideoCapture
	mu      sync.Mutex
	running bool
	fps     int
}

// NewCamera creates a Camera for cfg. Nothing is opened until Open.
func NewCamera(cfg Config) Camera {
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &cameraImpl{
		config: cfg,
		fps:    fps,
	}
}

// source converts the configured device into what OpenVideoCapture expects.
func (c *cameraImpl) source() interface{} {
	if id, err := strconv.Atoi(c.config.Device); err == nil {
		return id
	}
	return c.config.Device
}

// Open opens the capture device. Failures wrap ErrNoDevice.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.source())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return fmt.Errorf("%w: device %q did not open", ErrNoDevice, c.config.Device)
	}

	if c.config.Width > 0 && c.config.Height > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(c.config.Width))
		capture.Set(gocv.VideoCaptureFrameHeight, float64(c.config.Height))
	}
	capture.Set(gocv.VideoCaptureFPS, float64(c.fps))

	c.capture = capture
	c.running = true

	return nil
}

// Close closes the camera and releases resources.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame. The caller must close the returned Mat.
func (c *cameraImpl) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, errors.New("failed to read frame from camera")
	}
	if mat.Empty() {
		mat.Close()
		return nil, errors.New("captured frame is empty")
	}

	return &mat, nil
}

// SetFPS sets the capture rate. Values less than or equal to 0 are ignored.
func (c *cameraImpl) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps
	if c.capture != nil {
		c.capture.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the current capture rate.
func (c *cameraImpl) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

// IsOpen returns true if the camera is currently open.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
