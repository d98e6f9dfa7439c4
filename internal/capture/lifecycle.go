package capture

import (
	"log"
	"sync"

	"github.com/ayusman/palmdeck/internal/bus"
)

// Lifecycle owns the camera handle on behalf of the rest of the program.
// It opens the device when start-camera is published, reports the result as
// camera-state-changed, and never retries a failed acquisition.
type Lifecycle struct {
	camera Camera
	bus    bus.PubSub

	mu      sync.Mutex
	started bool
	active  bool
	failure error
	unsubs  []func()
}

// NewLifecycle creates a Lifecycle for camera publishing on b.
func NewLifecycle(camera Camera, b bus.PubSub) *Lifecycle {
	return &Lifecycle{
		camera: camera,
		bus:    b,
	}
}

// Attach subscribes to start-camera and camera-state-changed.
func (l *Lifecycle) Attach() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.unsubs) > 0 {
		return
	}
	l.unsubs = append(l.unsubs,
		l.bus.Subscribe(bus.StartCamera, func(bus.Event) { l.start() }),
		l.bus.Subscribe(bus.CameraStateChanged, func(e bus.Event) { l.track(e.Active) }),
	)
}

// Detach removes the bus subscriptions.
func (l *Lifecycle) Detach() {
	l.mu.Lock()
	unsubs := l.unsubs
	l.unsubs = nil
	l.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
}

func (l *Lifecycle) start() {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		log.Println("Camera already started")
		return
	}
	if l.failure != nil {
		l.mu.Unlock()
		log.Printf("Camera unavailable, not retrying: %v", l.failure)
		return
	}

	if err := l.camera.Open(); err != nil {
		l.failure = err
		l.mu.Unlock()
		log.Printf("Camera acquisition failed: %v", err)
		return
	}
	l.started = true
	l.mu.Unlock()

	log.Println("Camera started")
	l.bus.Publish(bus.Event{Topic: bus.CameraStateChanged, Active: true})
}

func (l *Lifecycle) track(active bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = active
}

// SetActive publishes camera-state-changed. Turning gestures on before the
// camera has started is ignored.
func (l *Lifecycle) SetActive(active bool) {
	l.mu.Lock()
	started := l.started
	l.mu.Unlock()

	if active && !started {
		log.Println("Camera not started, ignoring enable request")
		return
	}
	l.bus.Publish(bus.Event{Topic: bus.CameraStateChanged, Active: active})
}

// Toggle flips the gesture processing state and returns the new value.
func (l *Lifecycle) Toggle() bool {
	next := !l.Active()
	l.SetActive(next)
	return l.Active()
}

// Active reports the last camera-state-changed value seen on the bus.
func (l *Lifecycle) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Started reports whether the camera has been opened.
func (l *Lifecycle) Started() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}

// Err returns the terminal acquisition failure, if any.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failure
}

// Close detaches from the bus and releases the camera.
func (l *Lifecycle) Close() error {
	l.Detach()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.started = false
	l.active = false
	return l.camera.Close()
}
