package fieldcheck

import "net/http"

// Component bundles the check handler with its configuration and routing.
type Component struct {
	opts    Options
	handler http.Handler
}

// New constructs a component, compiling registered fields eagerly.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)
	handler, err := HandlerWithOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Component{opts: opts, handler: handler}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the net/http handler.
func (c *Component) Handler() http.Handler {
	return c.handler
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	if mux == nil {
		return RegisterRoutesWithOptions(mux, basePath, c.opts)
	}
	pattern := mountPath(basePath, c.opts.RoutePath)
	mux.Handle(pattern, c.handler)
	return pattern, nil
}
