package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/debounce"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/fieldspec"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves theme tokens through a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider builds a go-theme selector over provider, typically a
// theme.MemoryRegistry, and uses its defaults for requests that name no theme.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithDefaultTheme sets the theme and variant used when a request names none.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// WithScheduler is forwarded to email widgets.
func WithScheduler(s debounce.Scheduler) Option {
	return func(o *Orchestrator) {
		o.scheduler = s
	}
}

// Orchestrator coordinates the pipeline from field document to rendered
// output. The vanilla renderer is registered when no registry is supplied.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	scheduler       debounce.Scheduler
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a render. Interactions are replayed per field in this
// order: focus and edit for every entry in Values, blur for every name in
// Blurred, then focus for Focused.
type Request struct {
	// Document allows callers to bypass loading.
	Document *fieldspec.Document
	// Path is a YAML or OpenAPI file used when Document is nil.
	Path string
	// SchemaName selects the OpenAPI component schema.
	SchemaName string

	Values  map[string]string
	Blurred []string
	Focused string

	// Renderer names the renderer to use; empty selects the default.
	Renderer string

	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Generate loads, replays, snapshots and renders.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	views, err := o.Views(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		resolved, err := o.resolveTheme(req)
		if err != nil {
			return nil, err
		}
		options.Theme = resolved
	}

	output, err := renderer.Render(ctx, views, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Views builds a widget per spec, replays the request interactions and
// returns the resulting snapshots. Widgets are closed before returning.
func (o *Orchestrator) Views(ctx context.Context, req Request) ([]render.View, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	blurred := make(map[string]struct{}, len(req.Blurred))
	for _, name := range req.Blurred {
		blurred[name] = struct{}{}
	}

	var buildOpts []fieldspec.BuildOption
	if o.scheduler != nil {
		buildOpts = append(buildOpts, fieldspec.WithScheduler(o.scheduler))
	}

	views := make([]render.View, 0, len(doc.Fields))
	for _, spec := range doc.Fields {
		spec = spec.WithDefaults()
		w, err := spec.Build(buildOpts...)
		if err != nil {
			return nil, err
		}
		replay(w, spec.Name, req, blurred)
		views = append(views, render.NewView(spec, w))
		w.Close()
	}
	return views, nil
}

type flusher interface {
	Flush()
}

func replay(w field.Widget, name string, req Request, blurred map[string]struct{}) {
	if value, ok := req.Values[name]; ok {
		w.Focus()
		w.Edit(value)
		// Server-side values are final.
		if f, ok := w.(flusher); ok {
			f.Flush()
		}
	}
	if _, ok := blurred[name]; ok {
		w.Blur()
	}
	if req.Focused == name {
		w.Focus()
	}
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (fieldspec.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Path == "" {
		return fieldspec.Document{}, errors.New("orchestrator: path or document is required")
	}
	doc, err := fieldspec.LoadFile(ctx, req.Path, req.SchemaName)
	if err != nil {
		return fieldspec.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	name := req.ThemeName
	if name == "" {
		name = o.defaultTheme
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = o.defaultVariant
	}
	resolved, err := render.ResolveTheme(o.themeSelector, name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return resolved, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
			o.registry.MustRegister(render.JSONRenderer{})
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
