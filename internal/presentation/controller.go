// Package presentation holds the slide state driven by gesture events and the
// renderers that show it.
package presentation

import (
	"log"
	"sync"

	"github.com/ayusman/palmdeck/internal/bus"
)

// Renderer shows the slide at index of total.
type Renderer interface {
	Render(index, total int) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(index, total int) error

// Render calls f.
func (f RendererFunc) Render(index, total int) error {
	return f(index, total)
}

// Controller tracks the current slide. It moves on gesture-next and
// gesture-prev, ignoring moves past either end, and asks for camera access
// at most once.
type Controller struct {
	pub      bus.Publisher
	renderer Renderer

	mu              sync.Mutex
	index           int
	total           int
	consented       bool
	gesturesEnabled bool
	unsubs          []func()
}

// NewController creates a Controller at slide 0 of total. renderer may be nil.
func NewController(total int, renderer Renderer, pub bus.Publisher) *Controller {
	if total < 0 {
		total = 0
	}
	return &Controller{
		pub:      pub,
		renderer: renderer,
		total:    total,
	}
}

// Attach subscribes to navigation and camera state events on sub.
func (c *Controller) Attach(sub bus.Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.unsubs) > 0 {
		return
	}
	c.unsubs = append(c.unsubs,
		sub.Subscribe(bus.GestureNext, func(bus.Event) { c.Advance() }),
		sub.Subscribe(bus.GesturePrev, func(bus.Event) { c.Retreat() }),
		sub.Subscribe(bus.CameraStateChanged, func(e bus.Event) {
			c.mu.Lock()
			c.gesturesEnabled = e.Active
			c.mu.Unlock()
		}),
	)
}

// Detach removes the subscriptions made by Attach.
func (c *Controller) Detach() {
	c.mu.Lock()
	unsubs := c.unsubs
	c.unsubs = nil
	c.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
}

// Advance moves to the next slide and reports whether the index changed.
func (c *Controller) Advance() bool {
	return c.move(1)
}

// Retreat moves to the previous slide and reports whether the index changed.
func (c *Controller) Retreat() bool {
	return c.move(-1)
}

func (c *Controller) move(delta int) bool {
	c.mu.Lock()
	next := c.index + delta
	if next < 0 || next >= c.total {
		c.mu.Unlock()
		return false
	}
	c.index = next
	total := c.total
	c.mu.Unlock()

	c.render(next, total)
	return true
}

// Show renders the current slide without moving.
func (c *Controller) Show() error {
	c.mu.Lock()
	index, total := c.index, c.total
	c.mu.Unlock()

	if c.renderer == nil || total == 0 {
		return nil
	}
	return c.renderer.Render(index, total)
}

func (c *Controller) render(index, total int) {
	if c.renderer == nil {
		return
	}
	if err := c.renderer.Render(index, total); err != nil {
		log.Printf("Render slide %d/%d: %v", index+1, total, err)
	}
}

// SetTotal changes the slide count, clamping the current index into range.
func (c *Controller) SetTotal(total int) {
	if total < 0 {
		total = 0
	}

	c.mu.Lock()
	c.total = total
	if c.index >= total {
		c.index = total - 1
	}
	if c.index < 0 {
		c.index = 0
	}
	c.mu.Unlock()
}

// Consent records that the user allowed camera access and publishes
// start-camera. Only the first call publishes; it reports whether it did.
func (c *Controller) Consent() bool {
	c.mu.Lock()
	if c.consented {
		c.mu.Unlock()
		return false
	}
	c.consented = true
	c.mu.Unlock()

	log.Println("Camera consent given")
	if c.pub != nil {
		c.pub.Publish(bus.Event{Topic: bus.StartCamera})
	}
	return true
}

// Index returns the zero-based current slide.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Total returns the slide count.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// GesturesEnabled reports the last camera-state-changed value.
func (c *Controller) GesturesEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gesturesEnabled
}
