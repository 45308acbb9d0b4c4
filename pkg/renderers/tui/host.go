package tui

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/fieldspec"
)

// Option configures a Host.
type Option func(*Host)

// WithPromptDriver replaces the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(h *Host) {
		if driver != nil {
			h.driver = driver
		}
	}
}

// FieldResult is the outcome of hosting one field.
type FieldResult struct {
	Name  string      `json:"name"`
	Value string      `json:"value"`
	State field.State `json:"state"`
}

// Host drives widgets through terminal prompts. Showing a prompt is a focus
// and submitting it is an edit followed by a blur; a blur that asks for focus
// back prints the explanation and prompts again.
type Host struct {
	driver PromptDriver
}

// NewHost constructs a host backed by survey unless a driver is supplied.
func NewHost(options ...Option) *Host {
	h := &Host{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	if h.driver == nil {
		h.driver = NewSurveyDriver(nil)
	}
	return h
}

// Run hosts every spec in order.
func (h *Host) Run(ctx context.Context, specs []fieldspec.Spec) ([]FieldResult, error) {
	results := make([]FieldResult, 0, len(specs))
	for _, spec := range specs {
		w, err := spec.Build()
		if err != nil {
			return nil, err
		}
		result, err := h.RunWidget(ctx, spec, w)
		w.Close()
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

type flusher interface {
	Flush()
}

// RunWidget hosts a single widget until a blur goes through.
func (h *Host) RunWidget(ctx context.Context, spec fieldspec.Spec, w field.Widget) (FieldResult, error) {
	if h == nil || h.driver == nil {
		return FieldResult{}, ErrNoDriver
	}
	spec = spec.WithDefaults()
	explanation := PlainText(spec.Explanation)

	w.Focus()
	for {
		if err := ctx.Err(); err != nil {
			return FieldResult{}, err
		}
		help := ""
		if field.Present(w.State()).ShowExplanation {
			help = explanation
		}
		value, err := h.driver.Input(ctx, InputConfig{
			Message: strings.TrimSpace(spec.Label),
			Default: w.Value(),
			Help:    help,
		})
		if err != nil {
			return FieldResult{}, fmt.Errorf("tui: prompt %q: %w", spec.Name, err)
		}

		w.Edit(value)
		// A submitted line is final, so there is nothing to wait for.
		if f, ok := w.(flusher); ok {
			f.Flush()
		}

		if res := w.Blur(); !res.Refocus {
			return FieldResult{Name: spec.Name, Value: w.Value(), State: w.State()}, nil
		}
		// Printed only when the field takes focus back.
		if err := h.driver.Info(ctx, explanation); err != nil {
			return FieldResult{}, err
		}
		w.Focus()
	}
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// PlainText strips explanation markup for terminal output.
func PlainText(markup string) string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(markup)))
}
