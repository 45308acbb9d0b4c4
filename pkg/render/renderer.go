package render

import (
	"context"
)

// Renderer converts field views into a byte representation (HTML, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, views []View, options RenderOptions) ([]byte, error)
}
