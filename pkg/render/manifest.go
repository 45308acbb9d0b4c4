package render

import (
	"fmt"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
)

// LoadManifest reads a go-theme manifest from disk. The format follows the
// file extension (.json, .yaml or .yml):
//
//	name: acme
//	version: 1.0.0
//	tokens:
//	  color-error-text: "#b42318"
//	variants:
//	  dark:
//	    tokens:
//	      color-error-background: "#3b0a0a"
func LoadManifest(path string) (*theme.Manifest, error) {
	manifest, err := theme.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("render: load theme manifest: %w", err)
	}
	return manifest, nil
}
