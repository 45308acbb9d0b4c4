package render

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/fieldspec"
	"github.com/goliatone/go-formfield/pkg/testsupport"
)

func TestNewView_SnapshotsWidget(t *testing.T) {
	f := field.NewNumber()
	f.Edit("x")
	f.Blur()

	view := NewView(fieldspec.Spec{Name: "amount", Kind: field.KindNumber}, f)
	want := View{
		ID:           "amount-input-field",
		Name:         "amount",
		Label:        "Enter a number: ",
		Kind:         field.KindNumber,
		InputMode:    "decimal",
		Pattern:      "[-]?[0-9]*[.,]?[0-9]+",
		HTMLPattern:  `[\-]?[0-9]*[.,]?[0-9]+`,
		Value:        "x",
		State:        field.StateInvalidShown,
		Presentation: field.Presentation{Style: field.StyleError, ShowExplanation: true},
		Explanation:  fieldspec.DefaultNumberExplanation,
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestNewView_NilWidget(t *testing.T) {
	view := NewView(fieldspec.Spec{Name: "contact", Kind: field.KindEmail}, nil)
	if view.State != field.StateClean || view.Value != "" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.DelayMs != 300 {
		t.Fatalf("delay = %d, want 300", view.DelayMs)
	}
}

func TestJSONRenderer(t *testing.T) {
	f := field.NewNumber()
	f.Edit("x")
	f.Blur()
	f.Blur()
	views := []View{NewView(fieldspec.Spec{Name: "amount", Kind: field.KindNumber}, f)}

	out, err := JSONRenderer{}.Render(context.Background(), views, RenderOptions{Title: "Demo"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var payload struct {
		Title  string `json:"title"`
		Fields []struct {
			Name            string      `json:"name"`
			State           field.State `json:"state"`
			Style           string      `json:"style"`
			ShowExplanation bool        `json:"show_explanation"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if payload.Title != "Demo" || len(payload.Fields) != 1 {
		t.Fatalf("unexpected payload: %s", out)
	}
	got := payload.Fields[0]
	if got.Name != "amount" || got.State != field.StateInvalidHidden || got.Style != "error" || got.ShowExplanation {
		t.Fatalf("unexpected field: %+v", got)
	}
}

func TestJSONRenderer_Golden(t *testing.T) {
	f := field.NewNumber()
	f.Edit("12a")
	f.Blur()
	views := []View{NewView(fieldspec.Spec{Name: "amount", Kind: field.KindNumber}, f)}

	out, err := JSONRenderer{}.Render(context.Background(), views, RenderOptions{Title: "Amounts"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "rejected_number.golden.json"), out)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get(""); err == nil {
		t.Fatalf("expected error on empty registry")
	}
	reg.MustRegister(JSONRenderer{})
	if err := reg.Register(JSONRenderer{}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	got, err := reg.Get("")
	if err != nil || got.Name() != "json" {
		t.Fatalf("default lookup = %v, %v", got, err)
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if diff := cmp.Diff([]string{"json"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveTheme(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenErrorBackground: "#111111",
			"brand":              "#123456",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					TokenErrorBackground: "#222222",
				},
			},
		},
	}
	selector, err := NewThemeSelector("", "", manifest)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	got, err := ResolveTheme(selector, "", "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Theme != "acme" || got.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", got.Theme, got.Variant)
	}
	want := map[string]string{
		"--" + TokenErrorBackground: "#222222",
		"--" + TokenErrorText:       DefaultTokens()[TokenErrorText],
		"--brand":                   "#123456",
	}
	if diff := cmp.Diff(want, got.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}

	unknownVariant, err := ResolveTheme(selector, "acme", "sepia")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if unknownVariant.Tokens[TokenErrorBackground] != "#111111" {
		t.Fatalf("unknown variant should fall back to base tokens: %+v", unknownVariant.Tokens)
	}

	fallback, err := ResolveTheme(selector, "other", "")
	if err != nil {
		t.Fatalf("unknown theme should fall back to the default manifest: %v", err)
	}
	if fallback.Tokens["brand"] != "#123456" {
		t.Fatalf("unexpected fallback tokens: %+v", fallback.Tokens)
	}

	empty := theme.Selector{Registry: theme.NewRegistry()}
	if _, err := ResolveTheme(empty, "other", ""); !errors.Is(err, theme.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}

	def, err := ResolveTheme(nil, "", "")
	if err != nil || def.Theme != "default" {
		t.Fatalf("nil selector should yield default theme: %+v %v", def, err)
	}
}

func TestNewThemeSelector_RejectsInvalidManifest(t *testing.T) {
	if _, err := NewThemeSelector("", "", &theme.Manifest{Name: "acme"}); err == nil {
		t.Fatalf("expected validation error for manifest without version")
	}
}

func TestCSSVarsStyleIsSorted(t *testing.T) {
	style := CSSVarsStyle(DefaultTheme())
	bg := strings.Index(style, "--color-error-background")
	text := strings.Index(style, "--color-error-text")
	if bg < 0 || text < 0 || bg > text {
		t.Fatalf("unexpected style block:\n%s", style)
	}
	if CSSVarsStyle(nil) != "" || CSSVarsStyle(&theme.RendererConfig{}) != "" {
		t.Fatalf("empty theme should render no style")
	}
}
