// Package bus provides the synchronous publish/subscribe medium that connects
// the gesture engine, the camera lifecycle and the presentation controller.
package bus

import (
	"sync"
)

// Topic names a signal carried by the bus.
type Topic string

const (
	// StartCamera is published once the user has consented to camera use.
	StartCamera Topic = "start-camera"
	// CameraStateChanged enables or disables gesture processing (payload: Active).
	CameraStateChanged Topic = "camera-state-changed"
	// GestureNext asks the presentation to advance one slide.
	GestureNext Topic = "gesture-next"
	// GesturePrev asks the presentation to retreat one slide.
	GesturePrev Topic = "gesture-prev"
	// GesturePaused reports that gesture navigation has been paused.
	GesturePaused Topic = "gesture-paused"
	// GestureResumed reports that gesture navigation has been resumed.
	GestureResumed Topic = "gesture-resumed"
	// GestureResumeExpected reports an open hand seen while paused.
	GestureResumeExpected Topic = "gesture-resume-expected"
	// HandStatusChanged reports a change in how the current frame was read
	// (payload: Hand).
	HandStatusChanged Topic = "hand-status"
)

// HandStatus is the per-frame reading shown to the presenter.
type HandStatus struct {
	Present     bool
	Hand        string
	FingersUp   int
	Fist        bool
	ClosingFist bool

	FistFrames   int
	FistRequired int
	LiftFrames   int
	LiftRequired int
}

// Event is one published signal.
type Event struct {
	Topic Topic

	// Active is the payload of CameraStateChanged.
	Active bool
	// Hand is the payload of HandStatusChanged.
	Hand HandStatus
}

// Handler receives events for a subscribed topic.
type Handler func(Event)

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(e Event)
}

// Subscriber registers handlers for topics.
type Subscriber interface {
	// Subscribe registers h for topic and returns a function that removes it.
	Subscribe(topic Topic, h Handler) (unsubscribe func())
}

// PubSub is both ends of the bus.
type PubSub interface {
	Publisher
	Subscriber
}

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a synchronous, same-goroutine fan-out bus. Publish returns after
// every handler registered for the topic at the time of the call has run,
// in registration order.
type Bus struct {
	mu     sync.Mutex
	subs   map[Topic][]subscription
	nextID uint64
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{
		subs: make(map[Topic][]subscription),
	}
}

// Subscribe registers h for topic. Calling the returned function more than
// once is harmless.
func (b *Bus) Subscribe(topic Topic, h Handler) func() {
	if h == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			// Copy so that a Publish iterating the old slice is unaffected.
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			b.subs[topic] = next
			return
		}
	}
}

// Publish delivers e to the current subscribers of e.Topic. Handlers run
// without the bus lock held, so they may publish or subscribe themselves.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := b.subs[e.Topic]
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(e)
	}
}

func (b *Bus) subscriberCount(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
