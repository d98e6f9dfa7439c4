package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// Queued results are returned one per frame; once the queue is drained
// the fixed result set by SetHands is returned.
type MockDetector struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	queue  [][]HandLandmarks
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// Enqueue appends per-frame results. A nil entry means "no hand".
func (m *MockDetector) Enqueue(frames ...[]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, frames...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next queued result, the fixed hands, or the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	return m.hands, nil
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Close marks the detector closed.
func (m *MockDetector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockDetector) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// FistLandmarks returns a closed fist facing the camera: no digit extended,
// every fingertip tucked within a few hundredths of the palm center and the
// fingertips lying on a nearly flat horizontal line.
func FistLandmarks(handedness Handedness) HandLandmarks {
	h := HandLandmarks{Handedness: handedness, Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.65}

	h.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.60}
	h.Points[ThumbMCP] = Point3D{X: 0.47, Y: 0.57}
	h.Points[ThumbIP] = Point3D{X: 0.49, Y: 0.55}
	h.Points[ThumbTip] = Point3D{X: 0.50, Y: 0.53}

	h.Points[IndexMCP] = Point3D{X: 0.46, Y: 0.50}
	h.Points[IndexPIP] = Point3D{X: 0.46, Y: 0.46, Z: -0.03}
	h.Points[IndexDIP] = Point3D{X: 0.46, Y: 0.50, Z: -0.05}
	h.Points[IndexTip] = Point3D{X: 0.46, Y: 0.54, Z: -0.03}

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.50}
	h.Points[MiddlePIP] = Point3D{X: 0.49, Y: 0.45, Z: -0.03}
	h.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.50, Z: -0.05}
	h.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.55, Z: -0.03}

	h.Points[RingMCP] = Point3D{X: 0.53, Y: 0.51}
	h.Points[RingPIP] = Point3D{X: 0.52, Y: 0.46, Z: -0.03}
	h.Points[RingDIP] = Point3D{X: 0.52, Y: 0.51, Z: -0.05}
	h.Points[RingTip] = Point3D{X: 0.52, Y: 0.55, Z: -0.03}

	h.Points[PinkyMCP] = Point3D{X: 0.56, Y: 0.52}
	h.Points[PinkyPIP] = Point3D{X: 0.55, Y: 0.48, Z: -0.03}
	h.Points[PinkyDIP] = Point3D{X: 0.55, Y: 0.51, Z: -0.05}
	h.Points[PinkyTip] = Point3D{X: 0.55, Y: 0.54, Z: -0.03}

	return h
}

// ClosingFistLandmarks returns a fist that is still forming: no digit is
// extended, but the index and middle tips are not yet tucked near the palm.
func ClosingFistLandmarks(handedness Handedness) HandLandmarks {
	h := FistLandmarks(handedness)
	h.Points[IndexTip] = Point3D{X: 0.37, Y: 0.54}
	h.Points[MiddleTip] = Point3D{X: 0.63, Y: 0.55}
	return h
}

// OpenPalmLandmarks returns an open hand with all five digits extended.
func OpenPalmLandmarks(handedness Handedness) HandLandmarks {
	h := HandLandmarks{Handedness: handedness, Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	h.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	h.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55}
	h.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	h.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	h.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55}
	h.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.35}

	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	h.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60}
	h.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50}
	h.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42}

	return h
}
