package fieldspec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formfield/pkg/debounce"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/pattern"
)

// Default explanation markup per kind.
const (
	DefaultNumberExplanation = "Please make sure you've entered a <em>number</em>"
	DefaultEmailExplanation  = "Please make sure you've entered an <em>email address</em>"
)

// ErrUnknownKind is returned for kinds other than number and email.
var ErrUnknownKind = errors.New("fieldspec: unknown field kind")

// Spec declares a single field.
type Spec struct {
	Name        string     `yaml:"name" json:"name"`
	Label       string     `yaml:"label,omitempty" json:"label,omitempty"`
	Kind        field.Kind `yaml:"kind" json:"kind"`
	Pattern     string     `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	DelayMs     *int       `yaml:"delay_ms,omitempty" json:"delay_ms,omitempty"`
	InputMode   string     `yaml:"input_mode,omitempty" json:"input_mode,omitempty"`
	Explanation string     `yaml:"explanation,omitempty" json:"explanation,omitempty"`
	AllowEmpty  bool       `yaml:"allow_empty,omitempty" json:"allow_empty,omitempty"`
}

// Document is a collection of specs in display order.
type Document struct {
	Fields []Spec `yaml:"fields" json:"fields"`
}

// WithDefaults fills the label, input mode and explanation from the kind.
func (s Spec) WithDefaults() Spec {
	s.Name = strings.TrimSpace(s.Name)
	s.Kind = field.Kind(strings.ToLower(strings.TrimSpace(string(s.Kind))))
	if s.Label == "" {
		s.Label = defaultLabel(s)
	}
	if s.InputMode == "" {
		switch s.Kind {
		case field.KindNumber:
			s.InputMode = "decimal"
		case field.KindEmail:
			s.InputMode = "email"
		}
	}
	if s.Explanation == "" {
		switch s.Kind {
		case field.KindNumber:
			s.Explanation = DefaultNumberExplanation
		case field.KindEmail:
			s.Explanation = DefaultEmailExplanation
		}
	}
	return s
}

// Validate checks the spec can be built.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("fieldspec: name is required")
	}
	switch field.Kind(strings.ToLower(strings.TrimSpace(string(s.Kind)))) {
	case field.KindNumber, field.KindEmail:
	default:
		return fmt.Errorf("%w %q for %q", ErrUnknownKind, s.Kind, s.Name)
	}
	if s.DelayMs != nil && *s.DelayMs < 0 {
		return fmt.Errorf("fieldspec: %q delay_ms must not be negative", s.Name)
	}
	if s.Pattern != "" {
		if _, err := pattern.Compile(s.Pattern); err != nil {
			return fmt.Errorf("fieldspec: %q: %w", s.Name, err)
		}
	}
	return nil
}

// Delay returns the configured quiet period, or the email default.
func (s Spec) Delay() time.Duration {
	if s.DelayMs == nil {
		return field.DefaultEmailDelay
	}
	return time.Duration(*s.DelayMs) * time.Millisecond
}

// CompiledPattern returns the override pattern or the kind's built-in one.
func (s Spec) CompiledPattern() (*pattern.Pattern, error) {
	if s.Pattern != "" {
		return pattern.Compile(s.Pattern)
	}
	switch field.Kind(strings.ToLower(string(s.Kind))) {
	case field.KindEmail:
		return pattern.Email, nil
	default:
		return pattern.Numeric, nil
	}
}

// BuildOption customises widget construction.
type BuildOption func(*buildConfig)

type buildConfig struct {
	scheduler debounce.Scheduler
	onDisplay func(name, value string)
}

// WithScheduler is forwarded to email fields.
func WithScheduler(s debounce.Scheduler) BuildOption {
	return func(cfg *buildConfig) {
		cfg.scheduler = s
	}
}

// WithOnDisplay observes settled email values.
func WithOnDisplay(fn func(name, value string)) BuildOption {
	return func(cfg *buildConfig) {
		cfg.onDisplay = fn
	}
}

// Build constructs the widget described by the spec.
func (s Spec) Build(options ...BuildOption) (field.Widget, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cfg := buildConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	p, err := s.CompiledPattern()
	if err != nil {
		return nil, fmt.Errorf("fieldspec: %q: %w", s.Name, err)
	}

	spec := s.WithDefaults()
	switch spec.Kind {
	case field.KindNumber:
		return field.NewNumber(
			field.WithPattern(p),
			field.WithAllowEmpty(spec.AllowEmpty),
		), nil
	case field.KindEmail:
		opts := []field.EmailOption{
			field.WithEmailPattern(p),
			field.WithDelay(spec.Delay()),
		}
		if cfg.scheduler != nil {
			opts = append(opts, field.WithScheduler(cfg.scheduler))
		}
		if cfg.onDisplay != nil {
			name := spec.Name
			notify := cfg.onDisplay
			opts = append(opts, field.WithOnDisplay(func(value string) { notify(name, value) }))
		}
		return field.NewEmail(opts...), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, spec.Kind)
}

// Validate checks every spec and rejects duplicate names.
func (d Document) Validate() error {
	if len(d.Fields) == 0 {
		return errors.New("fieldspec: document has no fields")
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for _, spec := range d.Fields {
		if err := spec.Validate(); err != nil {
			return err
		}
		name := strings.TrimSpace(spec.Name)
		if _, ok := seen[name]; ok {
			return fmt.Errorf("fieldspec: duplicate field %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Lookup finds a spec by name.
func (d Document) Lookup(name string) (Spec, bool) {
	for _, spec := range d.Fields {
		if strings.TrimSpace(spec.Name) == name {
			return spec, true
		}
	}
	return Spec{}, false
}

func defaultLabel(s Spec) string {
	switch s.Kind {
	case field.KindEmail:
		return "Enter an email address: "
	case field.KindNumber:
		return "Enter a number: "
	}
	return s.Name
}
