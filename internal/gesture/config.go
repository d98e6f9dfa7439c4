package gesture

import (
	"fmt"
	"time"
)

// ClassifierConfig holds the empirical tolerances used to classify one frame.
// Coordinates are normalized image-space units.
type ClassifierConfig struct {
	// ThumbOffset is how far the thumb tip must sit outward of the thumb MCP.
	ThumbOffset float64 `yaml:"thumb_offset"`
	// FingerLift is how far a fingertip must sit above its PIP joint.
	FingerLift float64 `yaml:"finger_lift"`
	// NearPalmRadius is the distance under which a fingertip counts as tucked.
	NearPalmRadius float64 `yaml:"near_palm_radius"`
	// CenterTolerance bounds every fingertip's distance to the palm center.
	CenterTolerance float64 `yaml:"center_tolerance"`
	// HorizontalTolerance bounds the vertical spread of the fingertips.
	HorizontalTolerance float64 `yaml:"horizontal_tolerance"`
}

// Config holds the classifier tolerances and the debounce parameters.
type Config struct {
	Classifier ClassifierConfig `yaml:"classifier"`

	// FistFramesRequired is the number of consecutive fist frames for a mode change.
	FistFramesRequired int `yaml:"fist_frames_required"`
	// LiftFramesRequired is the number of consecutive same-hand lift frames for navigation.
	LiftFramesRequired int `yaml:"lift_frames_required"`
	// Cooldown is the minimum time between two mode changes.
	Cooldown time.Duration `yaml:"cooldown"`
	// SlideChangeCooldown is the minimum time between two navigation events.
	SlideChangeCooldown time.Duration `yaml:"slide_change_cooldown"`

	// HistoryLength is the capacity of the position smoothing history.
	HistoryLength int `yaml:"history_length"`
	// SmoothingFactor is the per-sample decay of the smoothing weights.
	SmoothingFactor float64 `yaml:"smoothing_factor"`
}

// DefaultClassifierConfig returns the calibrated classifier tolerances.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ThumbOffset:         0.05,
		FingerLift:          0.03,
		NearPalmRadius:      0.12,
		CenterTolerance:     0.15,
		HorizontalTolerance: 0.10,
	}
}

// DefaultConfig returns the engine configuration used for slide control.
func DefaultConfig() Config {
	return Config{
		Classifier:          DefaultClassifierConfig(),
		FistFramesRequired:  3,
		LiftFramesRequired:  5,
		Cooldown:            800 * time.Millisecond,
		SlideChangeCooldown: 1000 * time.Millisecond,
		HistoryLength:       3,
		SmoothingFactor:     0.6,
	}
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	cc := c.Classifier
	switch {
	case cc.ThumbOffset < 0 || cc.FingerLift < 0:
		return fmt.Errorf("classifier offsets must not be negative")
	case cc.NearPalmRadius <= 0 || cc.CenterTolerance <= 0 || cc.HorizontalTolerance <= 0:
		return fmt.Errorf("classifier tolerances must be positive")
	case cc.NearPalmRadius > cc.CenterTolerance:
		return fmt.Errorf("near_palm_radius %.3f exceeds center_tolerance %.3f", cc.NearPalmRadius, cc.CenterTolerance)
	case c.FistFramesRequired < 1:
		return fmt.Errorf("fist_frames_required must be at least 1, got %d", c.FistFramesRequired)
	case c.LiftFramesRequired < 1:
		return fmt.Errorf("lift_frames_required must be at least 1, got %d", c.LiftFramesRequired)
	case c.Cooldown < 0 || c.SlideChangeCooldown < 0:
		return fmt.Errorf("cooldowns must not be negative")
	case c.HistoryLength < 1:
		return fmt.Errorf("history_length must be at least 1, got %d", c.HistoryLength)
	case c.SmoothingFactor <= 0 || c.SmoothingFactor > 1:
		return fmt.Errorf("smoothing_factor must be in (0, 1], got %f", c.SmoothingFactor)
	}
	return nil
}
