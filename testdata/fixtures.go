// Package testdata holds recorded gesture scenarios used by end-to-end tests.
package testdata

import (
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/palmdeck/internal/detector"
)

//go:embed scenarios/*.yaml
var scenariosFS embed.FS

// Scenario is a scripted sequence of hand poses and the expected outcome
// after each step.
type Scenario struct {
	Name   string `yaml:"name"`
	Slides int    `yaml:"slides"`
	Steps  []Step `yaml:"steps"`
}

// Step shows one pose for a number of frames.
type Step struct {
	// Hand is one of open, fist, closing or none.
	Hand       string        `yaml:"hand"`
	Handedness string        `yaml:"handedness"`
	Frames     int           `yaml:"frames"`
	Wait       time.Duration `yaml:"wait"`
	Expect     *Expect       `yaml:"expect"`
}

// Expect is checked after a step.
type Expect struct {
	Slide int    `yaml:"slide"`
	Mode  string `yaml:"mode"`
}

// LoadScenario loads scenarios/<name>.yaml.
func LoadScenario(name string) (*Scenario, error) {
	data, err := scenariosFS.ReadFile("scenarios/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", name, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", name, err)
	}
	for i, step := range s.Steps {
		if step.Frames < 1 {
			return nil, fmt.Errorf("scenario %s step %d: frames must be at least 1", name, i)
		}
		if _, err := step.Landmarks(); err != nil {
			return nil, fmt.Errorf("scenario %s step %d: %w", name, i, err)
		}
	}
	return &s, nil
}

// ListScenarios returns the names of all embedded scenarios.
func ListScenarios() ([]string, error) {
	entries, err := scenariosFS.ReadDir("scenarios")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		n := e.Name()
		names = append(names, n[:len(n)-len(".yaml")])
	}
	return names, nil
}

// Landmarks returns the pose for the step, or nil for "none".
func (s Step) Landmarks() (*detector.HandLandmarks, error) {
	if s.Hand == "none" {
		return nil, nil
	}

	h := detector.Handedness(s.Handedness)
	if !h.Valid() {
		return nil, fmt.Errorf("unknown handedness %q", s.Handedness)
	}

	var l detector.HandLandmarks
	switch s.Hand {
	case "open":
		l = detector.OpenPalmLandmarks(h)
	case "fist":
		l = detector.FistLandmarks(h)
	case "closing":
		l = detector.ClosingFistLandmarks(h)
	default:
		return nil, fmt.Errorf("unknown hand pose %q", s.Hand)
	}
	return &l, nil
}
