// Package plugin discovers and runs external action executables. A plugin is
// a directory holding a plugin.json manifest and an executable that reads one
// Request as JSON on stdin and writes one Response as JSON on stdout.
package plugin

import "encoding/json"

// Actions understood by presenter plugins.
const (
	ActionNext   = "next"
	ActionPrev   = "prev"
	ActionGoto   = "goto"
	ActionPause  = "pause"
	ActionResume = "resume"
)

// Manifest describes a plugin's metadata and the actions it accepts.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request is sent to a plugin for one action.
type Request struct {
	ID      string          `json:"id"`
	Action  string          `json:"action"`
	Gesture string          `json:"gesture,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// SlideParams is the Params payload of slide navigation requests.
type SlideParams struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// Response is what a plugin writes back.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin is a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Supports reports whether the manifest lists action. An empty action list
// accepts everything.
func (p *Plugin) Supports(action string) bool {
	if len(p.Manifest.Actions) == 0 {
		return true
	}
	for _, a := range p.Manifest.Actions {
		if a == action {
			return true
		}
	}
	return false
}
