package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/render"
	rendertemplate "github.com/goliatone/go-formfield/pkg/render/template"
	gotemplate "github.com/goliatone/go-formfield/pkg/render/template/gotemplate"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       *string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. It must
// provide templates/page.tmpl, templates/fields.tmpl and templates/field.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the embedded stylesheet inlined into full pages.
// An empty string disables it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// Renderer emits server-rendered HTML for field views.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}

	return &Renderer{templates: renderer, stylesheet: stylesheet}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws every view. Fragment output omits the document shell.
func (r *Renderer) Render(ctx context.Context, views []render.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	fields := make([]map[string]any, 0, len(views))
	for _, view := range views {
		fields = append(fields, fieldContext(view))
	}

	method := strings.ToLower(strings.TrimSpace(options.Method))
	if method == "" {
		method = "post"
	}
	submit := strings.TrimSpace(options.SubmitLabel)
	if submit == "" {
		submit = "Submit"
	}
	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = "Form"
	}

	data := map[string]any{
		"fields":       fields,
		"title":        title,
		"action":       strings.TrimSpace(options.Action),
		"method":       method,
		"submit_label": submit,
		"theme_css":    render.CSSVarsStyle(options.ResolvedTheme()),
		"stylesheet":   r.stylesheet,
	}

	name := "templates/page.tmpl"
	if options.Fragment {
		name = "templates/fields.tmpl"
	}
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func fieldContext(view render.View) map[string]any {
	presentation := field.Present(view.State)
	return map[string]any{
		"id":               view.ID,
		"name":             view.Name,
		"label":            view.Label,
		"kind":             string(view.Kind),
		"input_mode":       view.InputMode,
		"pattern":          view.HTMLPattern,
		"value":            view.Value,
		"state":            view.State.String(),
		"delay_ms":         view.DelayMs,
		"error_style":      presentation.Style == field.StyleError,
		"show_explanation": presentation.ShowExplanation,
		// Email fields keep the explanation in the markup and let CSS reveal
		// it while the focused input is invalid.
		"css_driven":  view.Kind == field.KindEmail,
		"explanation": SanitizeExplanation(view.Explanation),
	}
}
