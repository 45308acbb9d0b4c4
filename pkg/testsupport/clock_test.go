package testsupport

import (
	"testing"
	"time"
)

func TestManualScheduler_FiresInDueOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []string
	s.AfterFunc(30*time.Millisecond, func() { order = append(order, "late") })
	s.AfterFunc(10*time.Millisecond, func() { order = append(order, "early") })
	stopped := s.AfterFunc(20*time.Millisecond, func() { order = append(order, "stopped") })

	if !stopped.Stop() {
		t.Fatalf("expected first stop to report true")
	}
	if stopped.Stop() {
		t.Fatalf("expected second stop to be a no-op")
	}

	s.Advance(15 * time.Millisecond)
	if len(order) != 1 || order[0] != "early" {
		t.Fatalf("unexpected order after 15ms: %v", order)
	}
	s.Advance(time.Second)
	if len(order) != 2 || order[1] != "late" {
		t.Fatalf("unexpected order after 1s: %v", order)
	}
	if s.Active() != 0 {
		t.Fatalf("expected no active timers, got %d", s.Active())
	}
	if s.Now() != 15*time.Millisecond+time.Second {
		t.Fatalf("unexpected clock: %v", s.Now())
	}
}

func TestManualScheduler_TimerScheduledDuringAdvance(t *testing.T) {
	s := NewManualScheduler()
	fired := 0
	s.AfterFunc(10*time.Millisecond, func() {
		s.AfterFunc(10*time.Millisecond, func() { fired++ })
	})
	s.Advance(25 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected nested timer to fire once, got %d", fired)
	}
}
