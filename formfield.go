package formfield

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/fieldspec"
	"github.com/goliatone/go-formfield/pkg/orchestrator"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/vanilla"
)

// RenderOptions aliases render.RenderOptions for callers of the root package.
type RenderOptions = render.RenderOptions

// Document aliases fieldspec.Document.
type Document = fieldspec.Document

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewNumberField returns a numeric field in its initial clean state.
func NewNumberField(options ...field.NumberOption) *field.NumberField {
	return field.NewNumber(options...)
}

// NewEmailField returns an email-like field. Callers must Close it.
func NewEmailField(options ...field.EmailOption) *field.EmailField {
	return field.NewEmail(options...)
}

// GenerateHTML loads the field document at path and renders it with the
// named renderer (vanilla when empty).
func GenerateHTML(ctx context.Context, path, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Path:     path,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDocument renders a pre-loaded document.
func GenerateHTMLFromDocument(ctx context.Context, doc Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}

// WithThemeProvider constructs a go-theme selector from a ThemeProvider and
// the default theme/variant pair.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet served next to rendered fields.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formfield.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
