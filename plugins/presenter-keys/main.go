// Command presenter-keys is a palmdeck plugin that forwards slide changes to
// the focused presentation application as key presses.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-vgo/robotgo"
)

// Request mirrors plugin.Request.
type Request struct {
	ID      string          `json:"id"`
	Action  string          `json:"action"`
	Gesture string          `json:"gesture,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response mirrors plugin.Response.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// KeyConfig selects the keys sent for each action.
type KeyConfig struct {
	Next string `json:"next"`
	Prev string `json:"prev"`
}

// SlideParams carries the target slide for goto.
type SlideParams struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

var defaultKeys = KeyConfig{Next: "right", Prev: "left"}

// tapper sends one key with optional modifiers.
type tapper func(key string, modifiers ...interface{}) error

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	keys, err := handle(req, robotgo.KeyTap)
	if err != nil {
		writeResponse(Response{Error: fmt.Sprintf("action %s failed: %v", req.Action, err)})
		return
	}

	data, _ := json.Marshal(map[string]interface{}{"id": req.ID, "keys": keys})
	writeResponse(Response{Success: true, Data: data})
}

// handle resolves req into key presses and sends them through tap. It
// returns the keys that were sent.
func handle(req Request, tap tapper) ([]string, error) {
	keys, err := keysFor(req)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if err := tap(k); err != nil {
			return nil, fmt.Errorf("key %s: %w", k, err)
		}
	}
	return keys, nil
}

func keysFor(req Request) ([]string, error) {
	cfg := defaultKeys
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if cfg.Next == "" {
			cfg.Next = defaultKeys.Next
		}
		if cfg.Prev == "" {
			cfg.Prev = defaultKeys.Prev
		}
	}

	switch req.Action {
	case "next":
		return []string{cfg.Next}, nil
	case "prev":
		return []string{cfg.Prev}, nil
	case "goto":
		// Most presentation apps jump to a slide on its number then Enter.
		var p SlideParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return nil, fmt.Errorf("failed to parse params: %w", err)
		}
		if p.Index < 0 {
			return nil, fmt.Errorf("invalid slide index %d", p.Index)
		}
		var keys []string
		for _, r := range strconv.Itoa(p.Index + 1) {
			keys = append(keys, string(r))
		}
		return append(keys, "enter"), nil
	default:
		return nil, fmt.Errorf("unknown action: %s", req.Action)
	}
}

func writeResponse(resp Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
