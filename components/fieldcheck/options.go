package fieldcheck

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-formfield/pkg/fieldspec"
)

const defaultRoutePath = "/api/fields/check"

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath  string
	KindParam  string
	FieldParam string
	ValueParam string
	Guard      GuardFunc
	Logger     *slog.Logger

	Fields []fieldspec.Spec
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:  defaultRoutePath,
		KindParam:  "kind",
		FieldParam: "field",
		ValueParam: "value",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.KindParam == "" {
		opts.KindParam = "kind"
	}
	if opts.FieldParam == "" {
		opts.FieldParam = "field"
	}
	if opts.ValueParam == "" {
		opts.ValueParam = "value"
	}
	if opts.Fields != nil {
		opts.Fields = append([]fieldspec.Spec{}, opts.Fields...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithKindParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.KindParam = name
	}
}

func WithFieldParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FieldParam = name
	}
}

func WithValueParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValueParam = name
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithLogger enables a debug record per check and a warning per rejected request.
func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithFields registers named fields addressable through the field parameter.
func WithFields(fields []fieldspec.Spec) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if fields == nil {
			o.Fields = nil
			return
		}
		o.Fields = append([]fieldspec.Spec{}, fields...)
	}
}
