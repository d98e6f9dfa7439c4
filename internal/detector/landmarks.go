// Package detector provides the landmark source adapter and the hand landmark
// types consumed by the gesture classifier.
package detector

import (
	"errors"
	"fmt"
	"math"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// PalmCenter is the landmark used as the palm reference point.
const PalmCenter = MiddleMCP

// Fingertips lists the tip landmark of every digit, thumb first.
var Fingertips = [5]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

// ErrMalformedHand is returned when a hand record cannot be used for classification.
var ErrMalformedHand = errors.New("malformed hand landmarks")

// Handedness is the classifier-assigned label of a detected hand.
// The camera image is mirrored, so "Left" denotes the viewer's right hand.
type Handedness string

const (
	Left  Handedness = "Left"
	Right Handedness = "Right"
)

// Valid reports whether h is one of the two known labels.
func (h Handedness) Valid() bool {
	return h == Left || h == Right
}

// Point3D represents a landmark in normalized image space.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Distance2D returns the Euclidean distance between a and b in the image plane.
func Distance2D(a, b Point3D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// HandLandmarks is one detected hand: 21 keypoints plus its handedness label.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness Handedness            `json:"handedness"`
	Score      float64               `json:"score"`
}

// NewHandLandmarks builds a HandLandmarks from a variable-length point list,
// rejecting anything that is not exactly one full hand.
func NewHandLandmarks(points []Point3D, handedness string, score float64) (HandLandmarks, error) {
	var h HandLandmarks
	if len(points) != NumLandmarks {
		return h, fmt.Errorf("%w: got %d points, want %d", ErrMalformedHand, len(points), NumLandmarks)
	}
	copy(h.Points[:], points)
	h.Handedness = Handedness(handedness)
	h.Score = score
	if err := h.Validate(); err != nil {
		return HandLandmarks{}, err
	}
	return h, nil
}

// Validate checks that the hand carries a known label and finite coordinates.
func (h *HandLandmarks) Validate() error {
	if h == nil {
		return fmt.Errorf("%w: nil hand", ErrMalformedHand)
	}
	if !h.Handedness.Valid() {
		return fmt.Errorf("%w: unknown handedness %q", ErrMalformedHand, h.Handedness)
	}
	for i, p := range h.Points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return fmt.Errorf("%w: landmark %d is not finite", ErrMalformedHand, i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
