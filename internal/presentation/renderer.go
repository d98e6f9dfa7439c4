package presentation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ayusman/palmdeck/internal/plugin"
)

// MultiRenderer renders to every renderer in order and joins their errors.
type MultiRenderer []Renderer

func (m MultiRenderer) Render(index, total int) error {
	var errs []error
	for _, r := range m {
		if err := r.Render(index, total); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PluginRenderer forwards slide changes to a plugin as next, prev or goto
// actions so an external presentation application follows along.
type PluginRenderer struct {
	ctx      context.Context
	executor *plugin.Executor
	plugin   *plugin.Plugin
	config   json.RawMessage
	last     int
}

// NewPluginRenderer creates a PluginRenderer. The current slide is taken to be
// 0, matching a freshly opened presentation. config is passed through to the
// plugin unchanged and may be nil.
func NewPluginRenderer(ctx context.Context, executor *plugin.Executor, p *plugin.Plugin, config json.RawMessage) *PluginRenderer {
	return &PluginRenderer{
		ctx:      ctx,
		executor: executor,
		plugin:   p,
		config:   config,
	}
}

func (r *PluginRenderer) Render(index, total int) error {
	action := actionFor(r.last, index)
	if action == "" {
		return nil
	}

	params, err := json.Marshal(plugin.SlideParams{Index: index, Total: total})
	if err != nil {
		return fmt.Errorf("marshal slide params: %w", err)
	}

	req := &plugin.Request{
		Action: action,
		Config: r.config,
		Params: params,
	}
	if _, err := r.executor.Execute(r.ctx, r.plugin, req); err != nil {
		return fmt.Errorf("forward %s to %s: %w", action, r.plugin.Manifest.Name, err)
	}
	r.last = index
	return nil
}

func actionFor(last, index int) string {
	switch index - last {
	case 0:
		return ""
	case 1:
		return plugin.ActionNext
	case -1:
		return plugin.ActionPrev
	default:
		return plugin.ActionGoto
	}
}
