// Package debounce produces a delayed copy of a rapidly changing string. The
// copy only moves once the input has stayed unchanged for a quiet period, so
// intermediate values typed in quick succession are never surfaced.
//
// Timers are scheduled through a Scheduler so hosts can swap the wall clock
// for a manual one; every pending timer is reachable through its cancellation
// handle and Close cancels whatever is still outstanding.
package debounce
