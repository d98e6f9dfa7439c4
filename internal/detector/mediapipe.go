package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

const (
	serviceScript = "mediapipe_service.py"

	// idleShutdown stops the service after this long without frames.
	idleShutdown = 30 * time.Second
)

// MediaPipeDetector implements Detector by driving the MediaPipe Hands service
// as a subprocess: a length-prefixed JPEG goes in, one JSON line comes out.
type MediaPipeDetector struct {
	config     Config
	scriptPath string
	pythonPath string

	mu        sync.Mutex
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	started   bool
	idleTimer *time.Timer
}

// NewMediaPipeDetector locates the landmark service. The subprocess itself is
// started lazily on the first frame. A missing script yields ErrServiceUnavailable.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	script := config.ScriptPath
	if script == "" {
		script = findServiceFile(filepath.Join("scripts", serviceScript))
	} else if _, err := os.Stat(script); err != nil {
		script = ""
	}
	if script == "" {
		return nil, fmt.Errorf("%w: %s not found", ErrServiceUnavailable, serviceScript)
	}

	python := config.PythonPath
	if python == "" {
		python = findServiceFile(filepath.Join("venv", "bin", "python"))
	}
	if python == "" {
		python = "python3"
	}
	if _, err := exec.LookPath(python); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return &MediaPipeDetector{
		config:     config,
		scriptPath: script,
		pythonPath: python,
	}, nil
}

// Detect sends one frame to the service and returns the hands it reported.
// Hands that fail validation are dropped from the result.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if frame == nil || frame.Empty() {
		return nil, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return nil, err
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	if err := writeFrame(d.stdin, buf.GetBytes()); err != nil {
		d.shutdown()
		return nil, err
	}

	line, err := d.stdout.ReadBytes('\n')
	if err != nil {
		d.shutdown()
		return nil, fmt.Errorf("read response: %w", err)
	}

	hands, err := parseResponse(line, d.config.MaxHands)
	if err != nil {
		return nil, err
	}

	d.resetIdleTimer()
	return hands, nil
}

// Close shuts down the service process.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

func writeFrame(w io.Writer, data []byte) error {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(data)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write length: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	return nil
}

// serviceResponse is the JSON line emitted by the service for each frame.
type serviceResponse struct {
	Hands []serviceHand `json:"hands"`
	Error string        `json:"error,omitempty"`
}

type serviceHand struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"`
	Score      float64   `json:"score"`
}

// parseResponse decodes one service line, keeping at most maxHands valid hands.
func parseResponse(line []byte, maxHands int) ([]HandLandmarks, error) {
	var resp serviceResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("landmark service: %s", resp.Error)
	}

	hands := make([]HandLandmarks, 0, len(resp.Hands))
	for _, sh := range resp.Hands {
		if maxHands > 0 && len(hands) >= maxHands {
			break
		}
		h, err := NewHandLandmarks(sh.Points, sh.Handedness, sh.Score)
		if err != nil {
			log.Printf("Dropping hand: %v", err)
			continue
		}
		hands = append(hands, h)
	}
	return hands, nil
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	d.cmd = exec.Command(d.pythonPath, d.scriptPath,
		"--max-hands", strconv.Itoa(d.config.MaxHands),
		"--min-detection-confidence", strconv.FormatFloat(d.config.MinConfidence, 'f', -1, 64),
		"--min-tracking-confidence", strconv.FormatFloat(d.config.MinTrackingConf, 'f', -1, 64),
	)

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrServiceUnavailable, err)
	}

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true
	log.Printf("Landmark service started (pid %d)", d.cmd.Process.Pid)
	return nil
}

func (d *MediaPipeDetector) shutdown() error {
	if !d.started {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Printf("Landmark service exited: %v", exitErr)
		return nil
	}
	return err
}

func (d *MediaPipeDetector) resetIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(idleShutdown, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.shutdown()
	})
}

// findServiceFile looks for rel next to the working directory, the executable
// and ~/.palmdeck. Returns an absolute path or "".
func findServiceFile(rel string) string {
	candidates := []string{rel, filepath.Join("..", rel), filepath.Join("..", "..", rel)}

	if execPath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(execPath), rel))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".palmdeck", rel))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}
