package presentation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ayusman/palmdeck/internal/bus"
)

type recordingRenderer struct {
	calls [][2]int
	err   error
}

func (r *recordingRenderer) Render(index, total int) error {
	r.calls = append(r.calls, [2]int{index, total})
	return r.err
}

func TestController_Bounds(t *testing.T) {
	r := &recordingRenderer{}
	c := NewController(3, r, nil)

	if c.Retreat() {
		t.Error("Retreat() at slide 0 should be a no-op")
	}
	if !c.Advance() || !c.Advance() {
		t.Fatal("Advance() should move within the deck")
	}
	if c.Advance() {
		t.Error("Advance() at the last slide should be a no-op")
	}
	if got := c.Index(); got != 2 {
		t.Errorf("Index() = %d, want 2", got)
	}
	if !c.Retreat() {
		t.Error("Retreat() from the last slide should move")
	}

	want := [][2]int{{1, 3}, {2, 3}, {1, 3}}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("render calls mismatch (-want +got):\n%s", diff)
	}
}

func TestController_EmptyDeck(t *testing.T) {
	r := &recordingRenderer{}
	c := NewController(0, r, nil)

	if c.Advance() || c.Retreat() {
		t.Error("an empty deck should never move")
	}
	if err := c.Show(); err != nil {
		t.Errorf("Show() error = %v", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("empty deck should not render, got %v", r.calls)
	}
}

func TestController_RenderErrorDoesNotBlockNavigation(t *testing.T) {
	r := &recordingRenderer{err: errors.New("window closed")}
	c := NewController(5, r, nil)

	if !c.Advance() {
		t.Fatal("Advance() should succeed even when rendering fails")
	}
	if got := c.Index(); got != 1 {
		t.Errorf("Index() = %d, want 1", got)
	}
	if err := c.Show(); err == nil {
		t.Error("Show() should return the renderer error")
	}
}

func TestController_Attach(t *testing.T) {
	b := bus.New()
	c := NewController(10, nil, b)
	c.Attach(b)
	c.Attach(b)

	b.Publish(bus.Event{Topic: bus.GestureNext})
	b.Publish(bus.Event{Topic: bus.GestureNext})
	b.Publish(bus.Event{Topic: bus.GesturePrev})
	if got := c.Index(); got != 1 {
		t.Errorf("Index() = %d, want 1", got)
	}

	b.Publish(bus.Event{Topic: bus.CameraStateChanged, Active: true})
	if !c.GesturesEnabled() {
		t.Error("GesturesEnabled() should follow camera-state-changed")
	}
	b.Publish(bus.Event{Topic: bus.CameraStateChanged, Active: false})
	if c.GesturesEnabled() {
		t.Error("GesturesEnabled() should follow camera-state-changed")
	}

	c.Detach()
	b.Publish(bus.Event{Topic: bus.GestureNext})
	if got := c.Index(); got != 1 {
		t.Errorf("Index() after Detach = %d, want 1", got)
	}
}

func TestController_ConsentOnce(t *testing.T) {
	b := bus.New()
	starts := 0
	b.Subscribe(bus.StartCamera, func(bus.Event) { starts++ })

	c := NewController(1, nil, b)
	if !c.Consent() {
		t.Error("first Consent() should publish")
	}
	if c.Consent() {
		t.Error("second Consent() should not publish")
	}
	if starts != 1 {
		t.Errorf("start-camera published %d times, want 1", starts)
	}
}

func TestController_SetTotal(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		total     int
		wantIndex int
	}{
		{"grow keeps index", 3, 20, 3},
		{"shrink clamps", 7, 4, 3},
		{"empty resets", 2, 0, 0},
		{"negative treated as empty", 2, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(10, nil, nil)
			for i := 0; i < tt.start; i++ {
				c.Advance()
			}
			c.SetTotal(tt.total)
			if got := c.Index(); got != tt.wantIndex {
				t.Errorf("Index() = %d, want %d", got, tt.wantIndex)
			}
		})
	}
}

func TestMultiRenderer(t *testing.T) {
	a := &recordingRenderer{}
	bad := &recordingRenderer{err: errors.New("a failed")}
	worse := &recordingRenderer{err: errors.New("b failed")}

	err := MultiRenderer{a, bad, worse}.Render(2, 5)
	if err == nil {
		t.Fatal("expected joined error")
	}
	if !errors.Is(err, bad.err) || !errors.Is(err, worse.err) {
		t.Errorf("joined error %v should wrap both failures", err)
	}
	for _, r := range []*recordingRenderer{a, bad, worse} {
		if len(r.calls) != 1 {
			t.Errorf("every renderer should be called once, got %d", len(r.calls))
		}
	}

	if err := (MultiRenderer{a}).Render(3, 5); err != nil {
		t.Errorf("Render() error = %v, want nil", err)
	}
}

func TestRendererFunc(t *testing.T) {
	var got int
	r := RendererFunc(func(index, total int) error {
		got = index
		return nil
	})
	if err := r.Render(4, 9); err != nil || got != 4 {
		t.Errorf("RendererFunc.Render() = %v, index %d", err, got)
	}
}
