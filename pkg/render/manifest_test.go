package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeManifest(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, "theme.yaml", `
name: acme
version: 1.0.0
tokens:
  color-error-text: "#111111"
variants:
  dark:
    tokens:
      color-error-background: "#222222"
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}

	selector, err := NewThemeSelector("", "", manifest)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	resolved, err := ResolveTheme(selector, "", "dark")
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}
	want := map[string]string{
		TokenErrorText:       "#111111",
		TokenErrorBackground: "#222222",
	}
	if diff := cmp.Diff(want, resolved.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if resolved.Theme != "acme" || resolved.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", resolved.Theme, resolved.Variant)
	}
}

func TestLoadManifest_JSON(t *testing.T) {
	path := writeManifest(t, "theme.json", `{"name":"acme","version":"2.0.0","tokens":{"color-error-text":"#333333"}}`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if manifest.Version != "2.0.0" || manifest.Tokens[TokenErrorText] != "#333333" {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	cases := map[string]string{
		"missing name":    "version: 1.0.0\ntokens: {}\n",
		"missing version": "name: acme\n",
		"empty token":     "name: acme\nversion: 1.0.0\ntokens:\n  color-error-text: \"\"\n",
	}
	for name, input := range cases {
		if _, err := LoadManifest(writeManifest(t, "theme.yaml", input)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
