package debounce

import "time"

// Timer is the cancellation handle for a scheduled commit. Stop must be safe to
// call on a timer that already fired or was already stopped.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d elapses.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func()) Timer

// AfterFunc implements Scheduler.
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) Timer {
	return f(d, fn)
}

// WallClock schedules commits with time.AfterFunc.
var WallClock Scheduler = SchedulerFunc(func(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
})
