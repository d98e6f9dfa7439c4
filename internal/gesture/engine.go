package gesture

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/palmdeck/internal/bus"
	"github.com/ayusman/palmdeck/internal/detector"
)

// Mode is the navigation mode of the engine.
type Mode string

const (
	// ModeNormal lets open-hand lifts navigate.
	ModeNormal Mode = "NORMAL"
	// ModePaused ignores lifts until a resume fist.
	ModePaused Mode = "PAUSED"
)

// Gesture is a discrete gesture fired by the engine.
type Gesture string

const (
	GestureNone   Gesture = ""
	GestureNext   Gesture = "next"
	GesturePrev   Gesture = "prev"
	GesturePause  Gesture = "pause"
	GestureResume Gesture = "resume"
)

// Label-to-action mapping. Labels are mirrored: Right is the viewer's left hand.
const (
	PauseHand  = detector.Right
	ResumeHand = detector.Left
	NextHand   = detector.Left
	PrevHand   = detector.Right
)

// Result describes how one frame was interpreted.
type Result struct {
	HandPresent bool
	Handedness  detector.Handedness
	FingersUp   int
	Fist        FistAnalysis
	Mode        Mode
	Gesture     Gesture
	LiftFrames  int
	FistFrames  int
	SmoothedX   float64
}

// Engine is the debouncing state machine. It is driven by Process once per
// frame and reports gestures on the bus it was created with.
type Engine struct {
	cfg        Config
	classifier Classifier
	pub        bus.Publisher

	mu          sync.Mutex
	session     string
	started     bool
	enabled     bool
	unsubscribe func()

	mode            Mode
	liftHand        detector.Handedness
	liftFrames      int
	fistFrames      int
	lastGesture     time.Time
	lastSlideChange time.Time
	resumeHinted    bool
	smoother        *Smoother
}

// New creates an Engine in ModeNormal. It does nothing until Start is called.
func New(cfg Config, pub bus.Publisher) *Engine {
	return &Engine{
		cfg:        cfg,
		classifier: NewClassifier(cfg.Classifier),
		pub:        pub,
		mode:       ModeNormal,
		smoother:   NewSmoother(cfg.HistoryLength, cfg.SmoothingFactor),
	}
}

// Start enables frame processing and follows camera-state-changed on sub.
// sub may be nil when nothing else toggles gesture processing.
func (e *Engine) Start(sub bus.Subscriber) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return
	}
	e.started = true
	e.enabled = true
	e.session = uuid.NewString()
	if sub != nil {
		e.unsubscribe = sub.Subscribe(bus.CameraStateChanged, func(ev bus.Event) {
			e.SetEnabled(ev.Active)
		})
	}
	log.Printf("Gesture engine started (session %s)", e.session)
}

// Stop detaches from the bus and clears the detection state. The mode is kept.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.started = false
	e.enabled = false
	e.resetLocked()
	log.Printf("Gesture engine stopped (session %s)", e.session)
}

// SetEnabled turns frame processing on or off. Disabling clears the
// detection state.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.enabled == enabled {
		return
	}
	e.enabled = enabled
	if !enabled {
		e.resetLocked()
	}
	log.Printf("Gesture processing enabled: %t", enabled)
}

// Enabled reports whether frames are currently processed.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started && e.enabled
}

// Mode returns the current navigation mode.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Reset clears counters and smoothing history as if the hand was lost.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	e.liftHand = ""
	e.liftFrames = 0
	e.fistFrames = 0
	e.resumeHinted = false
	e.smoother.Reset()
}

// Process interprets one frame. hand is nil when no hand was detected;
// an invalid hand is treated the same way. Events are published after the
// engine state has been updated and before Process returns.
func (e *Engine) Process(hand *detector.HandLandmarks, now time.Time) Result {
	e.mu.Lock()
	res, events := e.processLocked(hand, now)
	e.mu.Unlock()

	if e.pub != nil {
		for _, ev := range events {
			e.pub.Publish(ev)
		}
	}
	return res
}

func (e *Engine) processLocked(hand *detector.HandLandmarks, now time.Time) (Result, []bus.Event) {
	res := Result{Mode: e.mode}
	if !e.started || !e.enabled {
		return res, nil
	}

	if hand.Validate() != nil {
		e.resetLocked()
		return res, nil
	}

	label := hand.Handedness
	fingersUp := e.classifier.CountFingersUp(hand)
	fist := e.classifier.AnalyzeFist(hand)

	res.HandPresent = true
	res.Handedness = label
	res.FingersUp = fingersUp
	res.Fist = fist
	res.SmoothedX = e.smoother.Add(hand.Points[detector.PalmCenter].X)

	var events []bus.Event

	if fist.IsFist {
		e.fistFrames++
		res.FistFrames = e.fistFrames
		if e.fistFrames >= e.cfg.FistFramesRequired && elapsed(e.lastGesture, now, e.cfg.Cooldown) {
			if g, ev, ok := e.transitionLocked(label, now); ok {
				res.Gesture = g
				events = append(events, ev)
			}
			e.liftFrames = 0
			e.liftHand = ""
			e.fistFrames = 0
		}
	} else {
		e.fistFrames = 0
	}

	if !fist.IsFist && fingersUp > 0 {
		switch e.mode {
		case ModeNormal:
			if g, ev, ok := e.liftLocked(label, now); ok {
				res.Gesture = g
				events = append(events, ev)
			}
		case ModePaused:
			e.liftFrames = 0
			e.liftHand = ""
			if !e.resumeHinted {
				e.resumeHinted = true
				events = append(events, bus.Event{Topic: bus.GestureResumeExpected})
			}
		}
	}

	res.Mode = e.mode
	res.LiftFrames = e.liftFrames
	return res, events
}

// transitionLocked applies a qualifying fist. Only the pause hand pauses and
// only the resume hand resumes; any other combination is a no-op.
func (e *Engine) transitionLocked(label detector.Handedness, now time.Time) (Gesture, bus.Event, bool) {
	switch {
	case e.mode == ModeNormal && label == PauseHand:
		e.mode = ModePaused
		e.lastGesture = now
		e.resumeHinted = false
		log.Printf("Fist (%s): gestures paused", label)
		return GesturePause, bus.Event{Topic: bus.GesturePaused}, true
	case e.mode == ModePaused && label == ResumeHand:
		e.mode = ModeNormal
		e.lastGesture = now
		e.resumeHinted = false
		log.Printf("Fist (%s): gestures resumed", label)
		return GestureResume, bus.Event{Topic: bus.GestureResumed}, true
	}
	return GestureNone, bus.Event{}, false
}

// liftLocked counts consecutive open-hand frames of the same label and fires
// one navigation event once enough have been seen.
func (e *Engine) liftLocked(label detector.Handedness, now time.Time) (Gesture, bus.Event, bool) {
	if e.liftHand == label {
		e.liftFrames++
	} else {
		e.liftFrames = 1
		e.liftHand = label
	}

	if e.liftFrames < e.cfg.LiftFramesRequired || !elapsed(e.lastSlideChange, now, e.cfg.SlideChangeCooldown) {
		return GestureNone, bus.Event{}, false
	}

	var g Gesture
	var ev bus.Event
	switch label {
	case NextHand:
		g, ev = GestureNext, bus.Event{Topic: bus.GestureNext}
	case PrevHand:
		g, ev = GesturePrev, bus.Event{Topic: bus.GesturePrev}
	}

	e.lastSlideChange = now
	e.liftFrames = 0
	e.liftHand = ""
	log.Printf("Hand lift (%s): %s", label, g)
	return g, ev, true
}

// elapsed reports whether at least d has passed since last. A zero last
// means the gesture has never fired.
func elapsed(last, now time.Time, d time.Duration) bool {
	return last.IsZero() || now.Sub(last) >= d
}
