package hotkey

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		combo   string
		want    []string
		wantErr bool
	}{
		{combo: "ctrl+shift+g", want: []string{"g", "ctrl", "shift"}},
		{combo: "Control + Option + Right", want: []string{"right", "ctrl", "alt"}},
		{combo: "cmd+command+space", want: []string{"space", "cmd"}},
		{combo: "f5", want: []string{"f5"}},
		{combo: "ctrl+shift", wantErr: true},
		{combo: "ctrl+a+b", wantErr: true},
		{combo: "ctrl++g", wantErr: true},
		{combo: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			got, err := ParseCombo(tt.combo)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCombo() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseCombo() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNew(t *testing.T) {
	noop := func() {}

	l, err := New(DefaultConfig(), noop, noop)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}

	l, err = New(Config{Consent: "ctrl+g"}, noop, noop)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("empty combination should be skipped, Len() = %d", l.Len())
	}

	l, err = New(DefaultConfig(), nil, noop)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("nil action should be skipped, Len() = %d", l.Len())
	}

	if _, err := New(Config{Toggle: "ctrl+shift"}, noop, noop); err == nil {
		t.Error("New() should reject an invalid combination")
	}
}

func TestListener_RunWithoutBindings(t *testing.T) {
	l, err := New(Config{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Run(ctx); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
