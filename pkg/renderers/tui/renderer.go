package tui

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/fieldspec"
	"github.com/goliatone/go-formfield/pkg/render"
)

// Renderer adapts Host to render.Renderer: it prompts for every view and
// returns the collected results as JSON.
type Renderer struct {
	host *Host
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a terminal renderer.
func New(options ...Option) *Renderer {
	return &Renderer{host: NewHost(options...)}
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, views []render.View, _ render.RenderOptions) ([]byte, error) {
	specs := make([]fieldspec.Spec, 0, len(views))
	for _, view := range views {
		spec := fieldspec.Spec{
			Name:        view.Name,
			Label:       view.Label,
			Kind:        view.Kind,
			Pattern:     view.Pattern,
			InputMode:   view.InputMode,
			Explanation: view.Explanation,
			AllowEmpty:  view.AllowEmpty,
		}
		if view.Kind == field.KindEmail {
			delay := view.DelayMs
			spec.DelayMs = &delay
		}
		specs = append(specs, spec)
	}
	results, err := r.host.Run(ctx, specs)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(map[string]any{"fields": results}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode results: %w", err)
	}
	return out, nil
}
