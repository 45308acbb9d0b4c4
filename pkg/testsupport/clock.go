package testsupport

import (
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-formfield/pkg/debounce"
)

// ManualScheduler is a debounce.Scheduler driven by Advance instead of the wall
// clock. Timers fire synchronously, in due order, from the goroutine calling
// Advance.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

var _ debounce.Scheduler = (*ManualScheduler)(nil)

type manualTimer struct {
	owner   *ManualScheduler
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewManualScheduler returns a scheduler positioned at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements debounce.Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) debounce.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{owner: s, due: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		next.fired = true
		fn := next.fn
		s.mu.Unlock()
		fn()
	}
}

// Now reports the elapsed manual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Active counts timers that are neither stopped nor fired.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			count++
		}
	}
	return count
}

func (s *ManualScheduler) nextDueLocked(target time.Duration) *manualTimer {
	candidates := make([]*manualTimer, 0, len(s.timers))
	for _, t := range s.timers {
		if t.stopped || t.fired || t.due > target {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].due == candidates[j].due {
			return candidates[i].seq < candidates[j].seq
		}
		return candidates[i].due < candidates[j].due
	})
	return candidates[0]
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
