package detector

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrServiceUnavailable is returned when the landmark service cannot be located
// or launched. It is fatal for gesture control and distinct from "no hand".
var ErrServiceUnavailable = errors.New("landmark service unavailable")

// Detector defines the interface for landmark source implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands the service reports.
	MaxHands int `yaml:"max_hands"`

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64 `yaml:"min_confidence"`

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64 `yaml:"min_tracking_confidence"`

	// ScriptPath overrides the lookup of mediapipe_service.py.
	ScriptPath string `yaml:"script_path"`

	// PythonPath overrides the interpreter used to run the service.
	PythonPath string `yaml:"python_path"`
}

// DefaultConfig returns the single-hand configuration used for slide control.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
	}
}

// FirstHand returns the first hand of a detection result, or nil when the
// frame carried none.
func FirstHand(hands []HandLandmarks) *HandLandmarks {
	if len(hands) == 0 {
		return nil
	}
	return &hands[0]
}
