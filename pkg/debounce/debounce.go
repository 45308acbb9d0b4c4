package debounce

import (
	"sync"
	"time"
)

// Option configures a Producer.
type Option func(*Producer)

// WithScheduler replaces the wall clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(p *Producer) {
		if s != nil {
			p.scheduler = s
		}
	}
}

// WithOnCommit registers a callback invoked each time the delayed value
// changes. It runs outside the producer lock, on the scheduler's goroutine.
func WithOnCommit(fn func(value string)) Option {
	return func(p *Producer) {
		p.onCommit = fn
	}
}

// Producer holds the delayed output for a single input. At most one timer is
// pending at any time; starting a new one always cancels the previous one.
type Producer struct {
	mu sync.Mutex

	scheduler Scheduler
	onCommit  func(string)

	value   string
	raw     string
	delay   time.Duration
	pending Timer
	// gen invalidates timers that fire concurrently with their cancellation.
	gen     uint64
	started bool
	closed  bool
}

// New constructs a Producer. The first Observe call seeds its output.
func New(options ...Option) *Producer {
	p := &Producer{scheduler: WallClock}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Observe feeds the current raw value and quiet period, returning the delayed
// output. A change of either argument restarts the quiet period; repeating the
// same pair leaves a running timer alone. Negative delays count as zero and a
// zero delay commits immediately.
func (p *Producer) Observe(value string, delay time.Duration) string {
	if delay < 0 {
		delay = 0
	}

	p.mu.Lock()
	if p.closed {
		out := p.value
		p.mu.Unlock()
		return out
	}
	if !p.started {
		p.started = true
		p.value = value
		p.raw = value
		p.delay = delay
		p.mu.Unlock()
		return value
	}
	if value == p.raw && delay == p.delay {
		out := p.value
		p.mu.Unlock()
		return out
	}

	p.cancelLocked()
	p.raw = value
	p.delay = delay

	if delay == 0 {
		changed := p.value != value
		p.value = value
		cb := p.onCommit
		p.mu.Unlock()
		if changed && cb != nil {
			cb(value)
		}
		return value
	}

	gen := p.gen
	p.pending = p.scheduler.AfterFunc(delay, func() {
		p.commit(gen, value)
	})
	out := p.value
	p.mu.Unlock()
	return out
}

// Value returns the current delayed output.
func (p *Producer) Value() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Pending reports whether a commit is scheduled.
func (p *Producer) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// Flush commits the pending value right away, as if its quiet period had
// elapsed. It reports whether anything was pending.
func (p *Producer) Flush() bool {
	p.mu.Lock()
	if p.closed || p.pending == nil {
		p.mu.Unlock()
		return false
	}
	p.cancelLocked()
	changed := p.value != p.raw
	p.value = p.raw
	value := p.value
	cb := p.onCommit
	p.mu.Unlock()
	if changed && cb != nil {
		cb(value)
	}
	return true
}

// Close cancels any pending commit. No commit lands after Close returns and
// further Observe calls leave the output untouched.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.cancelLocked()
	p.closed = true
}

func (p *Producer) cancelLocked() {
	p.gen++
	if p.pending != nil {
		p.pending.Stop()
		p.pending = nil
	}
}

func (p *Producer) commit(gen uint64, value string) {
	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.pending = nil
	changed := p.value != value
	p.value = value
	cb := p.onCommit
	p.mu.Unlock()
	if changed && cb != nil {
		cb(value)
	}
}
