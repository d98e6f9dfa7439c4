// Package hotkey registers global keyboard shortcuts.
package hotkey

import (
	"context"
	"fmt"
	"log"
	"strings"

	hook "github.com/robotn/gohook"
)

// Config holds the key combinations, written like "ctrl+shift+g".
// An empty combination disables that shortcut.
type Config struct {
	Consent string `yaml:"consent"`
	Toggle  string `yaml:"toggle"`
}

// DefaultConfig returns the default shortcuts.
func DefaultConfig() Config {
	return Config{
		Consent: "ctrl+shift+g",
		Toggle:  "ctrl+shift+t",
	}
}

var modifiers = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"shift":   "shift",
	"alt":     "alt",
	"option":  "alt",
	"cmd":     "cmd",
	"command": "cmd",
}

// ParseCombo splits a combination into the key names gohook expects, with
// the main key first followed by the modifiers. Exactly one non-modifier key
// is required.
func ParseCombo(combo string) ([]string, error) {
	var key string
	var mods []string
	seen := make(map[string]bool)

	for _, part := range strings.Split(combo, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			return nil, fmt.Errorf("invalid combination %q: empty key", combo)
		}
		if m, ok := modifiers[part]; ok {
			if !seen[m] {
				seen[m] = true
				mods = append(mods, m)
			}
			continue
		}
		if key != "" {
			return nil, fmt.Errorf("invalid combination %q: more than one key", combo)
		}
		key = part
	}
	if key == "" {
		return nil, fmt.Errorf("invalid combination %q: no key", combo)
	}

	return append([]string{key}, mods...), nil
}

type binding struct {
	name   string
	keys   []string
	action func()
}

// Listener dispatches registered shortcuts to their actions.
type Listener struct {
	bindings []binding
}

// New builds a Listener for cfg. Either action may be nil to skip it.
func New(cfg Config, onConsent, onToggle func()) (*Listener, error) {
	l := &Listener{}
	for _, b := range []struct {
		name   string
		combo  string
		action func()
	}{
		{"consent", cfg.Consent, onConsent},
		{"toggle", cfg.Toggle, onToggle},
	} {
		if b.combo == "" || b.action == nil {
			continue
		}
		keys, err := ParseCombo(b.combo)
		if err != nil {
			return nil, fmt.Errorf("%s shortcut: %w", b.name, err)
		}
		l.bindings = append(l.bindings, binding{name: b.name, keys: keys, action: b.action})
	}
	return l, nil
}

// Len returns the number of active shortcuts.
func (l *Listener) Len() int {
	return len(l.bindings)
}

// Run hooks the keyboard and blocks until ctx is done.
func (l *Listener) Run(ctx context.Context) error {
	if len(l.bindings) == 0 {
		<-ctx.Done()
		return nil
	}

	for _, b := range l.bindings {
		b := b
		hook.Register(hook.KeyDown, b.keys, func(hook.Event) {
			log.Printf("Hotkey %s (%s)", b.name, strings.Join(b.keys, "+"))
			b.action()
		})
	}

	s := hook.Start()
	go func() {
		<-ctx.Done()
		hook.End()
	}()

	log.Printf("Listening for %d hotkey(s)", len(l.bindings))
	<-hook.Process(s)
	return nil
}
