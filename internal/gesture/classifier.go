// Package gesture turns per-frame hand landmarks into discrete slide-control
// gestures: a pure classifier plus a debouncing state machine.
package gesture

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ayusman/palmdeck/internal/detector"
)

// digit pairs a fingertip with the joint it must be extended beyond.
type digit struct {
	tip, ref int
}

var (
	thumb   = digit{tip: detector.ThumbTip, ref: detector.ThumbMCP}
	fingers = [4]digit{
		{tip: detector.IndexTip, ref: detector.IndexPIP},
		{tip: detector.MiddleTip, ref: detector.MiddlePIP},
		{tip: detector.RingTip, ref: detector.RingPIP},
		{tip: detector.PinkyTip, ref: detector.PinkyPIP},
	}
)

// FistAnalysis is the result of AnalyzeFist.
type FistAnalysis struct {
	IsFist      bool
	ClosingFist bool
	Confidence  float64
}

// Classifier applies a ClassifierConfig to single frames. It holds no state.
type Classifier struct {
	cfg ClassifierConfig
}

// NewClassifier creates a Classifier with the given tolerances.
func NewClassifier(cfg ClassifierConfig) Classifier {
	return Classifier{cfg: cfg}
}

// CountFingersUp counts the extended digits of hand, 0 to 5.
// The thumb is extended when its tip lies outward (greater X) of its MCP;
// the other fingers when the tip lies above (smaller Y) its PIP joint.
func (c Classifier) CountFingersUp(hand *detector.HandLandmarks) int {
	if hand == nil {
		return 0
	}
	p := hand.Points

	count := 0
	if p[thumb.tip].X > p[thumb.ref].X+c.cfg.ThumbOffset {
		count++
	}
	for _, f := range fingers {
		if p[f.tip].Y < p[f.ref].Y-c.cfg.FingerLift {
			count++
		}
	}
	return count
}

// AnalyzeFist decides whether hand is a compact fist held flat to the camera.
// Any extended digit rules a fist out.
func (c Classifier) AnalyzeFist(hand *detector.HandLandmarks) FistAnalysis {
	if hand == nil || c.CountFingersUp(hand) > 0 {
		return FistAnalysis{}
	}

	palm := hand.Points[detector.PalmCenter]
	near := 0
	centered := true
	tipY := make([]float64, 0, len(detector.Fingertips))

	for _, idx := range detector.Fingertips {
		tip := hand.Points[idx]
		d := detector.Distance2D(tip, palm)
		if d < c.cfg.NearPalmRadius {
			near++
		}
		if d > c.cfg.CenterTolerance {
			centered = false
		}
		tipY = append(tipY, tip.Y)
	}

	horizontal := floats.Max(tipY)-floats.Min(tipY) < c.cfg.HorizontalTolerance

	return FistAnalysis{
		IsFist:      near >= 4 && centered && horizontal,
		ClosingFist: near >= 2 && near < 4 && centered,
		Confidence:  float64(near) / float64(len(detector.Fingertips)),
	}
}

var defaultClassifier = NewClassifier(DefaultClassifierConfig())

// CountFingersUp counts extended digits using the default tolerances.
func CountFingersUp(hand *detector.HandLandmarks) int {
	return defaultClassifier.CountFingersUp(hand)
}

// AnalyzeFist analyzes hand using the default tolerances.
func AnalyzeFist(hand *detector.HandLandmarks) FistAnalysis {
	return defaultClassifier.AnalyzeFist(hand)
}
