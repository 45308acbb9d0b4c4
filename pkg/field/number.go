package field

import (
	"sync"

	"github.com/goliatone/go-formfield/pkg/pattern"
)

// NumberOption configures a NumberField.
type NumberOption func(*NumberField)

// WithPattern replaces pattern.Numeric.
func WithPattern(p *pattern.Pattern) NumberOption {
	return func(f *NumberField) {
		if p != nil {
			f.pattern = p
		}
	}
}

// WithAllowEmpty treats an empty value as matching, the way browsers skip
// pattern checks on blank inputs. It is off by default.
func WithAllowEmpty(allow bool) NumberOption {
	return func(f *NumberField) {
		f.allowEmpty = allow
	}
}

// WithInitialValue seeds the value without validating it.
func WithInitialValue(value string) NumberOption {
	return func(f *NumberField) {
		f.value = value
	}
}

// NumberField is the numeric input state machine. The first blur that finds
// an invalid value is rejected: the field asks for focus back and shows its
// explanation. A second blur while still invalid goes through and only hides
// the explanation.
type NumberField struct {
	mu sync.Mutex

	pattern    *pattern.Pattern
	allowEmpty bool
	value      string
	state      State
}

var _ Widget = (*NumberField)(nil)

// NewNumber constructs a clean field with an empty value.
func NewNumber(options ...NumberOption) *NumberField {
	f := &NumberField{pattern: pattern.Numeric}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Kind implements Widget.
func (f *NumberField) Kind() Kind {
	return KindNumber
}

// Edit stores value. An invalid field becomes clean once value matches.
func (f *NumberField) Edit(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = value
	if f.state.Invalid() && !f.mismatch(value) {
		f.state = StateClean
	}
}

// Blur handles focus leaving the field.
func (f *NumberField) Blur() BlurResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Invalid() {
		f.state = StateInvalidHidden
		return BlurResult{}
	}
	if f.mismatch(f.value) {
		f.state = StateInvalidShown
		return BlurResult{Refocus: true}
	}
	return BlurResult{}
}

// Focus re-displays the explanation of a field that was left invalid.
func (f *NumberField) Focus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateInvalidHidden {
		f.state = StateInvalidShown
	}
}

// Value returns the raw input value.
func (f *NumberField) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// State returns the current validation state.
func (f *NumberField) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Pattern returns the pattern values are checked against.
func (f *NumberField) Pattern() *pattern.Pattern {
	return f.pattern
}

// Close implements Widget. A number field owns no timers.
func (f *NumberField) Close() {}

func (f *NumberField) mismatch(value string) bool {
	return pattern.Mismatch(f.pattern, value, f.allowEmpty)
}
