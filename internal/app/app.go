// Package app wires the camera, the landmark source and the gesture engine
// into the frame loop.
package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/palmdeck/internal/bus"
	"github.com/ayusman/palmdeck/internal/capture"
	"github.com/ayusman/palmdeck/internal/detector"
	"github.com/ayusman/palmdeck/internal/gesture"
)

// Config holds the configuration of the pipeline parts.
type Config struct {
	Gesture  gesture.Config
	Detector detector.Config
	Camera   capture.Config
}

// App owns the camera, the landmark source and the gesture engine. Frames
// flow only after start-camera has been published and the camera opened.
type App struct {
	bus       bus.PubSub
	camera    capture.Camera
	lifecycle *capture.Lifecycle
	detector  detector.Detector
	engine    *gesture.Engine
	limits    gesture.Config

	mu     sync.RWMutex
	stopCh chan struct{}
	done   chan struct{}
	status bus.HandStatus
	frames int
}

// New creates an App over the real camera and the MediaPipe landmark
// service. It fails with detector.ErrServiceUnavailable when the service
// cannot be found, before any camera is touched.
func New(cfg Config, b bus.PubSub) (*App, error) {
	det, err := detector.NewMediaPipeDetector(cfg.Detector)
	if err != nil {
		return nil, fmt.Errorf("hand tracking: %w", err)
	}
	log.Println("Using MediaPipe hand detection")
	return NewWithDevices(cfg, b, capture.NewCamera(cfg.Camera), det), nil
}

// NewWithDevices creates an App over the given camera and detector.
func NewWithDevices(cfg Config, b bus.PubSub, camera capture.Camera, det detector.Detector) *App {
	return &App{
		bus:       b,
		camera:    camera,
		lifecycle: capture.NewLifecycle(camera, b),
		detector:  det,
		engine:    gesture.New(cfg.Gesture, b),
		limits:    cfg.Gesture,
	}
}

// ProcessFrame runs one frame through the landmark source and the engine and
// publishes hand-status when the reading differs from the previous frame.
// A detection error leaves the engine untouched.
func (a *App) ProcessFrame(frame *gocv.Mat, now time.Time) (gesture.Result, error) {
	hands, err := a.detector.Detect(frame)
	if err != nil {
		return gesture.Result{Mode: a.engine.Mode()}, fmt.Errorf("detect hands: %w", err)
	}

	res := a.engine.Process(detector.FirstHand(hands), now)

	status := handStatus(res, a.limits)

	a.mu.Lock()
	changed := a.frames == 0 || status != a.status
	a.status = status
	a.frames++
	a.mu.Unlock()

	if changed {
		a.bus.Publish(bus.Event{Topic: bus.HandStatusChanged, Hand: status})
	}
	return res, nil
}

func handStatus(res gesture.Result, cfg gesture.Config) bus.HandStatus {
	if !res.HandPresent {
		return bus.HandStatus{}
	}
	return bus.HandStatus{
		Present:      true,
		Hand:         string(res.Handedness),
		FingersUp:    res.FingersUp,
		Fist:         res.Fist.IsFist,
		ClosingFist:  res.Fist.ClosingFist,
		FistFrames:   res.FistFrames,
		FistRequired: cfg.FistFramesRequired,
		LiftFrames:   res.LiftFrames,
		LiftRequired: cfg.LiftFramesRequired,
	}
}

// Start attaches to the bus and starts the frame loop. It does not open the
// camera; that waits for start-camera.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	a.lifecycle.Attach()
	a.engine.Start(a.bus)

	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	go a.runPipeline(a.stopCh, a.done)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the frame loop and releases the camera and the detector.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, done := a.stopCh, a.done
	a.stopCh, a.done = nil, nil
	a.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-done

	a.engine.Stop()
	if err := a.lifecycle.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if err := a.detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}

	log.Println("Detection pipeline stopped")
}

// Run starts the App and stops it when ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	a.Stop()
	return nil
}

// Engine returns the gesture engine.
func (a *App) Engine() *gesture.Engine {
	return a.engine
}

// Lifecycle returns the camera lifecycle.
func (a *App) Lifecycle() *capture.Lifecycle {
	return a.lifecycle
}

// Frames returns the number of frames processed.
func (a *App) Frames() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frames
}
