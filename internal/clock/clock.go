// Package clock abstracts deferred callbacks so schedulers can run against
// wall time in production and a manually advanced clock in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from running. It reports false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Clock provides time-related operations.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// System is the Clock backed by the time package.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Manual is a Clock that only moves when Advance is called.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock    *Manual
	deadline time.Time
	seq      uint64
	f        func()
	done     bool
}

// NewManual creates a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual time.
func (clock *Manual) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// AfterFunc registers f to run once the clock has advanced by d.
func (clock *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	clock.mu.Lock()
	defer clock.mu.Unlock()

	clock.seq++
	timer := &manualTimer{
		clock:    clock,
		deadline: clock.now.Add(d),
		seq:      clock.seq,
		f:        f,
	}
	clock.timers = append(clock.timers, timer)
	return timer
}

// Advance moves time forward by d, running due callbacks in deadline order on
// the calling goroutine. Callbacks may register new timers; those run too if
// they fall due within the same advance.
func (clock *Manual) Advance(d time.Duration) {
	clock.mu.Lock()
	target := clock.now.Add(d)
	for {
		next := clock.nextDueLocked(target)
		if next == nil {
			break
		}
		next.done = true
		clock.removeLocked(next)
		if next.deadline.After(clock.now) {
			clock.now = next.deadline
		}
		clock.mu.Unlock()
		next.f()
		clock.mu.Lock()
	}
	clock.now = target
	clock.mu.Unlock()
}

// Pending returns the number of timers that have neither run nor been stopped.
func (clock *Manual) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.timers)
}

// NextDeadline returns the earliest pending deadline.
func (clock *Manual) NextDeadline() (time.Time, bool) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if len(clock.timers) == 0 {
		return time.Time{}, false
	}
	clock.sortLocked()
	return clock.timers[0].deadline, true
}

func (clock *Manual) nextDueLocked(target time.Time) *manualTimer {
	if len(clock.timers) == 0 {
		return nil
	}
	clock.sortLocked()
	if clock.timers[0].deadline.After(target) {
		return nil
	}
	return clock.timers[0]
}

func (clock *Manual) sortLocked() {
	sort.SliceStable(clock.timers, func(i, j int) bool {
		if clock.timers[i].deadline.Equal(clock.timers[j].deadline) {
			return clock.timers[i].seq < clock.timers[j].seq
		}
		return clock.timers[i].deadline.Before(clock.timers[j].deadline)
	})
}

func (clock *Manual) removeLocked(timer *manualTimer) {
	for i, candidate := range clock.timers {
		if candidate == timer {
			clock.timers = append(clock.timers[:i], clock.timers[i+1:]...)
			return
		}
	}
}

func (timer *manualTimer) Stop() bool {
	timer.clock.mu.Lock()
	defer timer.clock.mu.Unlock()
	if timer.done {
		return false
	}
	timer.done = true
	timer.clock.removeLocked(timer)
	return true
}
