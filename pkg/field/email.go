package field

import (
	"sync"
	"time"

	"github.com/goliatone/go-formfield/pkg/debounce"
	"github.com/goliatone/go-formfield/pkg/pattern"
)

// DefaultEmailDelay is the quiet period before an email edit is displayed.
const DefaultEmailDelay = 300 * time.Millisecond

// EmailOption configures an EmailField.
type EmailOption func(*emailConfig)

type emailConfig struct {
	delay     time.Duration
	pattern   *pattern.Pattern
	producer  []debounce.Option
	onDisplay func(string)
}

// WithDelay overrides DefaultEmailDelay.
func WithDelay(delay time.Duration) EmailOption {
	return func(cfg *emailConfig) {
		if delay >= 0 {
			cfg.delay = delay
		}
	}
}

// WithEmailPattern replaces pattern.Email.
func WithEmailPattern(p *pattern.Pattern) EmailOption {
	return func(cfg *emailConfig) {
		if p != nil {
			cfg.pattern = p
		}
	}
}

// WithScheduler forwards a scheduler to the underlying debounce producer.
func WithScheduler(s debounce.Scheduler) EmailOption {
	return func(cfg *emailConfig) {
		cfg.producer = append(cfg.producer, debounce.WithScheduler(s))
	}
}

// WithOnDisplay is called whenever the displayed value settles on a new value.
func WithOnDisplay(fn func(value string)) EmailOption {
	return func(cfg *emailConfig) {
		cfg.onDisplay = fn
	}
}

// EmailField displays a debounced copy of what the user types and flags it
// when it fails the email pattern. Blank values are never flagged. The
// explanation is only visible while the field has focus.
type EmailField struct {
	mu sync.Mutex

	producer *debounce.Producer
	pattern  *pattern.Pattern
	delay    time.Duration
	raw      string
	focused  bool
}

var _ Widget = (*EmailField)(nil)

// NewEmail constructs an email field with an empty value.
func NewEmail(options ...EmailOption) *EmailField {
	cfg := emailConfig{delay: DefaultEmailDelay, pattern: pattern.Email}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	producerOpts := append([]debounce.Option(nil), cfg.producer...)
	if cfg.onDisplay != nil {
		producerOpts = append(producerOpts, debounce.WithOnCommit(cfg.onDisplay))
	}

	f := &EmailField{
		producer: debounce.New(producerOpts...),
		pattern:  cfg.pattern,
		delay:    cfg.delay,
	}
	f.producer.Observe("", f.delay)
	return f
}

// Kind implements Widget.
func (f *EmailField) Kind() Kind {
	return KindEmail
}

// Edit records the raw value and restarts the quiet period.
func (f *EmailField) Edit(value string) {
	f.mu.Lock()
	f.raw = value
	f.mu.Unlock()
	f.producer.Observe(value, f.delay)
}

// Blur drops focus. Email fields never ask for focus back.
func (f *EmailField) Blur() BlurResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = false
	return BlurResult{}
}

// Focus marks the field as focused.
func (f *EmailField) Focus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = true
}

// Value returns the debounced value shown in the input.
func (f *EmailField) Value() string {
	return f.producer.Value()
}

// Raw returns the latest edit, which may not be displayed yet.
func (f *EmailField) Raw() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw
}

// Settled reports whether the displayed value caught up with the last edit.
func (f *EmailField) Settled() bool {
	return !f.producer.Pending()
}

// Flush displays the latest edit without waiting for the quiet period.
func (f *EmailField) Flush() {
	f.producer.Flush()
}

// State derives the validation state from the displayed value and focus.
func (f *EmailField) State() State {
	value := f.producer.Value()
	if !pattern.Mismatch(f.pattern, value, true) {
		return StateClean
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.focused {
		return StateInvalidShown
	}
	return StateInvalidHidden
}

// Pattern returns the pattern values are checked against.
func (f *EmailField) Pattern() *pattern.Pattern {
	return f.pattern
}

// Delay returns the configured quiet period.
func (f *EmailField) Delay() time.Duration {
	return f.delay
}

// Close cancels any pending display update.
func (f *EmailField) Close() {
	f.producer.Close()
}
