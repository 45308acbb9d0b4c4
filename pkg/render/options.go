package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching field state.
type RenderOptions struct {
	// Title is used by renderers that emit a full document.
	Title string
	// Fragment skips the surrounding document and stylesheet so the output can
	// be swapped into an existing page.
	Fragment bool
	// Action and Method, when Action is set, wrap the fields in a form.
	Action string
	Method string
	// SubmitLabel names the submit button rendered inside the form.
	SubmitLabel string
	// Theme carries the resolved go-theme config. Nil means DefaultTheme.
	Theme *theme.RendererConfig
}

// ResolvedTheme returns the configured theme or DefaultTheme.
func (o RenderOptions) ResolvedTheme() *theme.RendererConfig {
	if o.Theme == nil {
		return DefaultTheme()
	}
	return o.Theme
}
