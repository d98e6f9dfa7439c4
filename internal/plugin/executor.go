package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single plugin run.
const DefaultTimeout = 2 * time.Second

// ErrUnsupportedAction is returned when a plugin's manifest does not list the
// requested action.
var ErrUnsupportedAction = errors.New("plugin does not support action")

// Executor runs plugins with a per-call timeout.
type Executor struct {
	timeout time.Duration
}

// NewExecutor creates an Executor. A non-positive timeout uses DefaultTimeout.
func NewExecutor(timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{timeout: timeout}
}

// Timeout returns the per-call timeout.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// Execute runs plugin with req on stdin and parses its stdout as a Response.
// A request without an ID is given a fresh one.
func (e *Executor) Execute(ctx context.Context, plugin *Plugin, req *Request) (*Response, error) {
	if !plugin.Supports(req.Action) {
		return nil, fmt.Errorf("%s: %w: %s", plugin.Manifest.Name, ErrUnsupportedAction, req.Action)
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	cmd := exec.CommandContext(ctx, plugin.Executable)
	cmd.Dir = plugin.Path
	cmd.Stdin = bytes.NewReader(reqJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("plugin %s timed out after %s", plugin.Manifest.Name, e.timeout)
	}
	if err != nil {
		if s := stderr.String(); s != "" {
			return nil, fmt.Errorf("plugin %s failed: %w, stderr: %s", plugin.Manifest.Name, err, s)
		}
		return nil, fmt.Errorf("plugin %s failed: %w", plugin.Manifest.Name, err)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse plugin response: %w, stdout: %s", err, stdout.String())
	}
	if !resp.Success {
		return &resp, fmt.Errorf("plugin %s reported failure: %s", plugin.Manifest.Name, resp.Error)
	}

	return &resp, nil
}
