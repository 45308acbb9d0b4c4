package fieldcheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/fieldspec"
	"github.com/goliatone/go-formfield/pkg/pattern"
)

var (
	ErrUnknownField = errors.New("fieldcheck: unknown field")
	ErrMissingKind  = errors.New("fieldcheck: kind or field is required")
)

// Result is the outcome of a single check.
type Result struct {
	Kind  field.Kind `json:"kind"`
	Field string     `json:"field,omitempty"`
	Value string     `json:"value"`
	Valid bool       `json:"valid"`
}

type checker struct {
	pattern    *pattern.Pattern
	allowEmpty bool
}

// Checker resolves kinds and named fields to their patterns.
type Checker struct {
	fields map[string]fieldChecker
}

type fieldChecker struct {
	kind field.Kind
	checker
}

// NewChecker compiles the patterns of fields up front.
func NewChecker(fields []fieldspec.Spec) (*Checker, error) {
	c := &Checker{fields: make(map[string]fieldChecker, len(fields))}
	for _, spec := range fields {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		spec = spec.WithDefaults()
		p, err := spec.CompiledPattern()
		if err != nil {
			return nil, fmt.Errorf("fieldcheck: %q: %w", spec.Name, err)
		}
		c.fields[spec.Name] = fieldChecker{
			kind:    spec.Kind,
			checker: checker{pattern: p, allowEmpty: spec.AllowEmpty || spec.Kind == field.KindEmail},
		}
	}
	return c, nil
}

// Check validates value against a named field when name is set and against
// the built-in kind otherwise.
func (c *Checker) Check(kind, name, value string) (Result, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		fc, ok := c.lookup(name)
		if !ok {
			return Result{}, fmt.Errorf("%w %q", ErrUnknownField, name)
		}
		return Result{
			Kind:  fc.kind,
			Field: name,
			Value: value,
			Valid: !pattern.Mismatch(fc.pattern, value, fc.allowEmpty),
		}, nil
	}

	k := field.Kind(strings.ToLower(strings.TrimSpace(kind)))
	var ch checker
	switch k {
	case field.KindNumber:
		ch = checker{pattern: pattern.Numeric}
	case field.KindEmail:
		ch = checker{pattern: pattern.Email, allowEmpty: true}
	case "":
		return Result{}, ErrMissingKind
	default:
		return Result{}, fmt.Errorf("%w %q", fieldspec.ErrUnknownKind, kind)
	}
	return Result{
		Kind:  k,
		Value: value,
		Valid: !pattern.Mismatch(ch.pattern, value, ch.allowEmpty),
	}, nil
}

func (c *Checker) lookup(name string) (fieldChecker, bool) {
	if c == nil {
		return fieldChecker{}, false
	}
	fc, ok := c.fields[name]
	return fc, ok
}
