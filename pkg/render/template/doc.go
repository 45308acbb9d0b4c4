// Package template defines the renderer-agnostic template seam used by the
// HTML renderers. The gotemplate subpackage backs it with pongo2.
package template
