package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/palmdeck/internal/gesture"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "palmdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, gesture.DefaultConfig(), cfg.Gesture)
	assert.Equal(t, 1, cfg.Detector.MaxHands)
	assert.Equal(t, "0", cfg.Camera.Device)
	assert.Equal(t, 10, cfg.Presentation.BlankSlides)
	assert.True(t, cfg.Tray)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Overlay(t *testing.T) {
	path := writeConfig(t, `
gesture:
  lift_frames_required: 7
  slide_change_cooldown: 1500ms
  classifier:
    finger_lift: 0.04
camera:
  device: "1"
  fps: 30
presentation:
  deck: talk.pdf
plugins:
  name: presenter-keys
  timeout: 3s
  settings:
    next: pagedown
hotkeys:
  toggle: ctrl+alt+p
tray: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Gesture.LiftFramesRequired)
	assert.Equal(t, 1500*time.Millisecond, cfg.Gesture.SlideChangeCooldown)
	assert.Equal(t, 0.04, cfg.Gesture.Classifier.FingerLift)
	assert.Equal(t, 3, cfg.Gesture.FistFramesRequired, "unset fields keep defaults")
	assert.Equal(t, 0.05, cfg.Gesture.Classifier.ThumbOffset, "unset nested fields keep defaults")
	assert.Equal(t, "1", cfg.Camera.Device)
	assert.Equal(t, 30, cfg.Camera.FPS)
	assert.Equal(t, "talk.pdf", cfg.Presentation.Deck)
	assert.Equal(t, "presenter-keys", cfg.Plugins.Name)
	assert.Equal(t, 3*time.Second, cfg.Plugins.Timeout)
	assert.Equal(t, "ctrl+alt+p", cfg.Hotkeys.Toggle)
	assert.Equal(t, "ctrl+shift+g", cfg.Hotkeys.Consent)
	assert.False(t, cfg.Tray)

	settings, err := cfg.Plugins.SettingsJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"next":"pagedown"}`, string(settings))
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown key", body: "gestures:\n  cooldown: 1s\n", want: "field gestures not found"},
		{name: "bad yaml", body: "gesture: [\n", want: "parse config"},
		{name: "bad duration", body: "gesture:\n  cooldown: soon\n", want: "parse config"},
		{name: "invalid gesture", body: "gesture:\n  fist_frames_required: 0\n", want: "fist_frames_required"},
		{name: "invalid detector", body: "detector:\n  min_confidence: 1.5\n", want: "min_confidence"},
		{name: "empty device", body: "camera:\n  device: \"\"\n", want: "device is required"},
		{name: "no slides", body: "presentation:\n  blank_slides: 0\n", want: "blank_slides"},
		{name: "negative timeout", body: "plugins:\n  timeout: -1s\n", want: "timeout"},
		{name: "bad hotkey", body: "hotkeys:\n  consent: ctrl+shift\n", want: "hotkeys: consent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestValidate_DeckAllowsZeroBlankSlides(t *testing.T) {
	cfg := Default()
	cfg.Presentation.Deck = "talk.pdf"
	cfg.Presentation.BlankSlides = 0
	assert.NoError(t, cfg.Validate())
}

func TestSettingsJSON_Empty(t *testing.T) {
	data, err := PluginConfig{}.SettingsJSON()
	require.NoError(t, err)
	assert.Nil(t, data)
}
