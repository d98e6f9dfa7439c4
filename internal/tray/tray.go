// Package tray provides the system tray menu for palmdeck.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/palmdeck/internal/bus"
)

// Status is what the tray currently displays.
type Status struct {
	CameraStarted bool
	GesturesOn    bool
	Paused        bool
	LastGesture   string
	Hand          bus.HandStatus
	CameraError   string
}

// Tray is the system tray menu. It follows the event bus for its status and
// reports clicks through the registered callbacks.
type Tray struct {
	mu       sync.RWMutex
	status   Status
	onToggle func()
	onCamera func()
	onQuit   func()
	unsubs   []func()

	menuCamera *systray.MenuItem
	menuToggle *systray.MenuItem
	menuMode   *systray.MenuItem
	menuHand   *systray.MenuItem
	menuLast   *systray.MenuItem
}

// New creates a Tray with gestures off and the camera not yet started.
func New() *Tray {
	return &Tray{}
}

// OnToggle sets the callback for the gestures on/off item.
func (t *Tray) OnToggle(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnStartCamera sets the callback for the start camera item.
func (t *Tray) OnStartCamera(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onCamera = fn
}

// OnQuit sets the callback for the quit item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Attach follows camera state and gesture events on sub.
func (t *Tray) Attach(sub bus.Subscriber) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.unsubs) > 0 {
		return
	}
	t.unsubs = append(t.unsubs,
		sub.Subscribe(bus.CameraStateChanged, func(e bus.Event) {
			t.update(func(s *Status) {
				s.GesturesOn = e.Active
				if e.Active {
					s.CameraStarted = true
				}
			})
		}),
		sub.Subscribe(bus.GestureNext, func(bus.Event) {
			t.update(func(s *Status) { s.LastGesture = "next slide" })
		}),
		sub.Subscribe(bus.GesturePrev, func(bus.Event) {
			t.update(func(s *Status) { s.LastGesture = "previous slide" })
		}),
		sub.Subscribe(bus.GesturePaused, func(bus.Event) {
			t.update(func(s *Status) {
				s.Paused = true
				s.LastGesture = "pause"
			})
		}),
		sub.Subscribe(bus.GestureResumed, func(bus.Event) {
			t.update(func(s *Status) {
				s.Paused = false
				s.LastGesture = "resume"
			})
		}),
		sub.Subscribe(bus.GestureResumeExpected, func(bus.Event) {
			t.update(func(s *Status) { s.LastGesture = "paused, make a right fist to resume" })
		}),
		sub.Subscribe(bus.HandStatusChanged, func(e bus.Event) {
			t.update(func(s *Status) { s.Hand = e.Hand })
		}),
	)
}

// Detach removes the bus subscriptions.
func (t *Tray) Detach() {
	t.mu.Lock()
	unsubs := t.unsubs
	t.unsubs = nil
	t.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
}

// SetCameraFailure shows that the camera could not be acquired.
func (t *Tray) SetCameraFailure(err error) {
	if err == nil {
		return
	}
	t.update(func(s *Status) { s.CameraError = err.Error() })
}

// Status returns a copy of the displayed status.
func (t *Tray) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *Tray) update(fn func(*Status)) {
	t.mu.Lock()
	fn(&t.status)
	t.mu.Unlock()
	t.refresh()
}

// Run starts the tray. It blocks until Quit and must be called from the main
// goroutine on macOS.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

// Quit closes the tray, unblocking Run.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("palmdeck")
	systray.SetTooltip("Gesture slide control")

	menuCamera := systray.AddMenuItem("Start camera", "Allow camera access for gesture control")
	menuToggle := systray.AddMenuItem(toggleTitle(false), "Turn gesture control on or off")
	systray.AddSeparator()
	menuMode := systray.AddMenuItem(modeTitle(false), "Navigation mode")
	menuMode.Disable()
	menuHand := systray.AddMenuItem(handTitle(bus.HandStatus{}), "Hand seen in the last frame")
	menuHand.Disable()
	menuLast := systray.AddMenuItem(lastTitle(""), "Last recognized gesture")
	menuLast.Disable()
	systray.AddSeparator()
	menuQuit := systray.AddMenuItem("Quit", "Quit palmdeck")

	t.mu.Lock()
	t.menuCamera = menuCamera
	t.menuToggle = menuToggle
	t.menuMode = menuMode
	t.menuHand = menuHand
	t.menuLast = menuLast
	t.mu.Unlock()
	t.refresh()

	go func() {
		for {
			select {
			case <-menuCamera.ClickedCh:
				t.call(func() func() { return t.onCamera })
			case <-menuToggle.ClickedCh:
				t.call(func() func() { return t.onToggle })
			case <-menuQuit.ClickedCh:
				t.call(func() func() { return t.onQuit })
				systray.Quit()
				return
			}
		}
	}()
}

// call runs the callback selected by get outside the lock.
func (t *Tray) call(get func() func()) {
	t.mu.RLock()
	fn := get()
	t.mu.RUnlock()

	if fn != nil {
		fn()
	}
}

func (t *Tray) refresh() {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuToggle == nil {
		return
	}
	s := t.status
	switch {
	case s.CameraError != "":
		t.menuCamera.SetTitle("Camera unavailable")
		t.menuCamera.SetTooltip(s.CameraError)
		t.menuCamera.Disable()
	case s.CameraStarted:
		t.menuCamera.SetTitle("Camera started")
		t.menuCamera.Disable()
	}
	t.menuToggle.SetTitle(toggleTitle(s.GesturesOn))
	t.menuMode.SetTitle(modeTitle(s.Paused))
	t.menuHand.SetTitle(handTitle(s.Hand))
	t.menuLast.SetTitle(lastTitle(s.LastGesture))
}

func toggleTitle(on bool) string {
	if on {
		return "● Gestures on"
	}
	return "○ Gestures off"
}

func modeTitle(paused bool) string {
	if paused {
		return "Mode: paused"
	}
	return "Mode: active"
}

func lastTitle(name string) string {
	if name == "" {
		return "Last: none"
	}
	return "Last: " + name
}

// handTitle renders the per-frame reading, e.g. "Hand: Left, 2 up, lift 3/5".
func handTitle(h bus.HandStatus) string {
	if !h.Present {
		return "Hand: none"
	}
	switch {
	case h.Fist:
		return fmt.Sprintf("Hand: %s, fist %d/%d", h.Hand, h.FistFrames, h.FistRequired)
	case h.ClosingFist:
		return fmt.Sprintf("Hand: %s, closing fist", h.Hand)
	case h.LiftFrames > 0:
		return fmt.Sprintf("Hand: %s, %d up, lift %d/%d", h.Hand, h.FingersUp, h.LiftFrames, h.LiftRequired)
	}
	return fmt.Sprintf("Hand: %s, %d up", h.Hand, h.FingersUp)
}
