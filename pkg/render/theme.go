package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Token names understood by the built-in renderers.
const (
	TokenErrorBackground = "color-error-background"
	TokenErrorText       = "color-error-text"
)

const defaultThemeName = "default"

// DefaultTokens are used when no theme overrides them.
func DefaultTokens() map[string]string {
	return map[string]string{
		TokenErrorBackground: "#fde8e8",
		TokenErrorText:       "#b42318",
	}
}

// DefaultTheme returns the renderer config built from DefaultTokens.
func DefaultTheme() *theme.RendererConfig {
	selection := theme.Selection{
		Theme: defaultThemeName,
		Manifest: &theme.Manifest{
			Name:    defaultThemeName,
			Version: "1.0.0",
			Tokens:  DefaultTokens(),
		},
	}
	cfg := selection.RendererTheme(nil)
	return &cfg
}

// NewThemeSelector registers manifests in a go-theme memory registry and
// returns a selector over it. A blank defaultTheme uses the first manifest.
func NewThemeSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (theme.Selector, error) {
	registry := theme.NewRegistry()
	for _, manifest := range manifests {
		if err := registry.Register(manifest); err != nil {
			return theme.Selector{}, fmt.Errorf("render: register theme: %w", err)
		}
		if strings.TrimSpace(defaultTheme) == "" {
			defaultTheme = manifest.Name
		}
	}
	return theme.Selector{
		Registry:       registry,
		DefaultTheme:   defaultTheme,
		DefaultVariant: defaultVariant,
	}, nil
}

// ResolveTheme asks selector for name/variant and layers the selection's
// tokens over DefaultTokens. A nil selector yields DefaultTheme.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return DefaultTheme(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil {
		return DefaultTheme(), nil
	}

	cfg := selection.RendererTheme(nil)
	for key, value := range DefaultTokens() {
		if _, ok := cfg.Tokens[key]; ok {
			continue
		}
		cfg.Tokens[key] = value
		cfg.CSSVars["--"+key] = value
	}
	return &cfg, nil
}

// CSSVarsStyle renders the config's CSS variables as a :root block in key
// order. A nil config or empty var set renders nothing.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
