package tray

import (
	"errors"
	"testing"

	"github.com/ayusman/palmdeck/internal/bus"
)

func TestTray_FollowsBus(t *testing.T) {
	b := bus.New()
	tr := New()
	tr.Attach(b)
	defer tr.Detach()

	steps := []struct {
		event bus.Event
		want  Status
	}{
		{
			event: bus.Event{Topic: bus.CameraStateChanged, Active: true},
			want:  Status{CameraStarted: true, GesturesOn: true},
		},
		{
			event: bus.Event{Topic: bus.GestureNext},
			want:  Status{CameraStarted: true, GesturesOn: true, LastGesture: "next slide"},
		},
		{
			event: bus.Event{Topic: bus.GesturePaused},
			want:  Status{CameraStarted: true, GesturesOn: true, Paused: true, LastGesture: "pause"},
		},
		{
			event: bus.Event{Topic: bus.GestureResumeExpected},
			want:  Status{CameraStarted: true, GesturesOn: true, Paused: true, LastGesture: "paused, make a right fist to resume"},
		},
		{
			event: bus.Event{Topic: bus.GestureResumed},
			want:  Status{CameraStarted: true, GesturesOn: true, LastGesture: "resume"},
		},
		{
			event: bus.Event{Topic: bus.GesturePrev},
			want:  Status{CameraStarted: true, GesturesOn: true, LastGesture: "previous slide"},
		},
		{
			event: bus.Event{Topic: bus.CameraStateChanged, Active: false},
			want:  Status{CameraStarted: true, LastGesture: "previous slide"},
		},
	}

	for _, step := range steps {
		b.Publish(step.event)
		if got := tr.Status(); got != step.want {
			t.Fatalf("after %s: Status() = %+v, want %+v", step.event.Topic, got, step.want)
		}
	}
}

func TestTray_Detach(t *testing.T) {
	b := bus.New()
	tr := New()
	tr.Attach(b)
	tr.Attach(b)

	tr.Detach()
	b.Publish(bus.Event{Topic: bus.GestureNext})
	if got := tr.Status().LastGesture; got != "" {
		t.Errorf("LastGesture after Detach = %q, want empty", got)
	}
}

func TestTray_HandStatus(t *testing.T) {
	b := bus.New()
	tr := New()
	tr.Attach(b)
	defer tr.Detach()

	tests := []struct {
		name  string
		hand  bus.HandStatus
		title string
	}{
		{
			name:  "no hand",
			hand:  bus.HandStatus{},
			title: "Hand: none",
		},
		{
			name:  "lift in progress",
			hand:  bus.HandStatus{Present: true, Hand: "Left", FingersUp: 4, LiftFrames: 3, LiftRequired: 5},
			title: "Hand: Left, 4 up, lift 3/5",
		},
		{
			name:  "fist counting",
			hand:  bus.HandStatus{Present: true, Hand: "Right", Fist: true, FistFrames: 2, FistRequired: 3},
			title: "Hand: Right, fist 2/3",
		},
		{
			name:  "closing fist",
			hand:  bus.HandStatus{Present: true, Hand: "Right", ClosingFist: true},
			title: "Hand: Right, closing fist",
		},
		{
			name:  "open hand while paused",
			hand:  bus.HandStatus{Present: true, Hand: "Left", FingersUp: 5},
			title: "Hand: Left, 5 up",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.Publish(bus.Event{Topic: bus.HandStatusChanged, Hand: tt.hand})

			got := tr.Status().Hand
			if got != tt.hand {
				t.Fatalf("Status().Hand = %+v, want %+v", got, tt.hand)
			}
			if title := handTitle(got); title != tt.title {
				t.Errorf("handTitle() = %q, want %q", title, tt.title)
			}
		})
	}
}

func TestTray_CameraFailure(t *testing.T) {
	tr := New()
	tr.SetCameraFailure(nil)
	if got := tr.Status().CameraError; got != "" {
		t.Fatalf("CameraError = %q after nil error, want empty", got)
	}

	tr.SetCameraFailure(errors.New("no camera device"))
	if got := tr.Status().CameraError; got != "no camera device" {
		t.Errorf("CameraError = %q, want %q", got, "no camera device")
	}
}

func TestTray_Callbacks(t *testing.T) {
	tr := New()
	var toggled, started int
	tr.OnToggle(func() { toggled++ })
	tr.OnStartCamera(func() { started++ })

	tr.call(func() func() { return tr.onToggle })
	tr.call(func() func() { return tr.onCamera })
	tr.call(func() func() { return tr.onQuit })

	if toggled != 1 || started != 1 {
		t.Errorf("toggled=%d started=%d, want 1 and 1", toggled, started)
	}
}

func TestTitles(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{toggleTitle(true), "● Gestures on"},
		{toggleTitle(false), "○ Gestures off"},
		{modeTitle(true), "Mode: paused"},
		{modeTitle(false), "Mode: active"},
		{lastTitle(""), "Last: none"},
		{lastTitle("next slide"), "Last: next slide"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("title = %q, want %q", tt.got, tt.want)
		}
	}
}
