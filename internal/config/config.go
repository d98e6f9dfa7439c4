// Package config loads the palmdeck YAML configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/palmdeck/internal/capture"
	"github.com/ayusman/palmdeck/internal/detector"
	"github.com/ayusman/palmdeck/internal/gesture"
	"github.com/ayusman/palmdeck/internal/hotkey"
	"github.com/ayusman/palmdeck/internal/plugin"
)

// Config is the whole application configuration. Every section starts from
// its package defaults and the file only needs to name what it changes.
type Config struct {
	Gesture      gesture.Config     `yaml:"gesture"`
	Detector     detector.Config    `yaml:"detector"`
	Camera       capture.Config     `yaml:"camera"`
	Presentation PresentationConfig `yaml:"presentation"`
	Plugins      PluginConfig       `yaml:"plugins"`
	Hotkeys      hotkey.Config      `yaml:"hotkeys"`
	Tray         bool               `yaml:"tray"`
}

// PresentationConfig selects the deck and how it is shown.
type PresentationConfig struct {
	// Deck is a PDF file. Without one a blank deck of BlankSlides is used.
	Deck        string  `yaml:"deck"`
	DPI         float64 `yaml:"dpi"`
	BlankSlides int     `yaml:"blank_slides"`
	Window      bool    `yaml:"window"`
	WindowTitle string  `yaml:"window_title"`
}

// PluginConfig selects the plugin that receives slide changes.
type PluginConfig struct {
	Dir string `yaml:"dir"`
	// Name of the plugin to forward to. Empty disables forwarding.
	Name     string                 `yaml:"name"`
	Timeout  time.Duration          `yaml:"timeout"`
	Settings map[string]interface{} `yaml:"settings"`
}

// SettingsJSON returns Settings encoded for a plugin request, or nil when
// there are none.
func (p PluginConfig) SettingsJSON() (json.RawMessage, error) {
	if len(p.Settings) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(p.Settings)
	if err != nil {
		return nil, fmt.Errorf("encode plugin settings: %w", err)
	}
	return data, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Gesture:  gesture.DefaultConfig(),
		Detector: detector.DefaultConfig(),
		Camera:   capture.DefaultConfig(),
		Presentation: PresentationConfig{
			DPI:         96,
			BlankSlides: 10,
			Window:      true,
			WindowTitle: "palmdeck",
		},
		Plugins: PluginConfig{
			Dir:     "plugins",
			Timeout: plugin.DefaultTimeout,
		},
		Hotkeys: hotkey.DefaultConfig(),
		Tray:    true,
	}
}

// Load reads path over the defaults and validates the result. An empty path
// returns the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays YAML data onto cfg.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Gesture.Validate(); err != nil {
		return fmt.Errorf("gesture: %w", err)
	}

	d := c.Detector
	switch {
	case d.MaxHands < 1:
		return fmt.Errorf("detector: max_hands must be at least 1, got %d", d.MaxHands)
	case d.MinConfidence < 0 || d.MinConfidence > 1:
		return fmt.Errorf("detector: min_confidence must be in [0, 1], got %f", d.MinConfidence)
	case d.MinTrackingConf < 0 || d.MinTrackingConf > 1:
		return fmt.Errorf("detector: min_tracking_confidence must be in [0, 1], got %f", d.MinTrackingConf)
	}

	switch {
	case c.Camera.Device == "":
		return errors.New("camera: device is required")
	case c.Camera.FPS < 0:
		return fmt.Errorf("camera: fps must not be negative, got %d", c.Camera.FPS)
	case c.Camera.Width < 0 || c.Camera.Height < 0:
		return errors.New("camera: width and height must not be negative")
	}

	p := c.Presentation
	switch {
	case p.Deck == "" && p.BlankSlides < 1:
		return fmt.Errorf("presentation: blank_slides must be at least 1 without a deck, got %d", p.BlankSlides)
	case p.DPI < 0:
		return fmt.Errorf("presentation: dpi must not be negative, got %f", p.DPI)
	}

	if c.Plugins.Timeout < 0 {
		return fmt.Errorf("plugins: timeout must not be negative, got %s", c.Plugins.Timeout)
	}

	for name, combo := range map[string]string{"consent": c.Hotkeys.Consent, "toggle": c.Hotkeys.Toggle} {
		if combo == "" {
			continue
		}
		if _, err := hotkey.ParseCombo(combo); err != nil {
			return fmt.Errorf("hotkeys: %s: %w", name, err)
		}
	}
	return nil
}
