package vibe

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"rudd/internal/clock"
	"rudd/internal/core/model"
)

// ErrSchedulingFailure indicates the platform could not register a timer.
var ErrSchedulingFailure = errors.New("scheduling failure")

// TimerHandle identifies one scheduled one-shot callback. Handles are never reused.
type TimerHandle uint64

// Timers schedules one-shot callbacks on the platform.
type Timers interface {
	ScheduleOneShot(d time.Duration) (TimerHandle, error)
	// CancelTimer is safe on fired or cancelled handles and reports whether
	// it stopped a pending timer.
	CancelTimer(handle TimerHandle) bool
}

// Haptics triggers the device alert.
type Haptics interface {
	TriggerHapticPulse() error
}

// DurationSource reports the interval, in table units, to use at the next scheduling point.
type DurationSource interface {
	CurrentDuration() int
}

// Scheduler is a state machine that keeps one vibration cycle armed.
type Scheduler struct {
	mu         sync.Mutex
	source     DurationSource
	timers     Timers
	haptics    Haptics
	clock      clock.Clock
	options    model.SchedulerConfig
	state      State
	pending    TimerHandle
	hasPending bool
	events     []chan Event
}

// New creates a disarmed Scheduler.
func New(source DurationSource, timers Timers, haptics Haptics, clk clock.Clock, options model.SchedulerConfig) *Scheduler {
	if options.Unit <= 0 {
		options.Unit = time.Minute
	}
	if options.CancelRetryDelay < 0 {
		options.CancelRetryDelay = 0
	}
	if clk == nil {
		clk = clock.System
	}

	return &Scheduler{
		source:  source,
		timers:  timers,
		haptics: haptics,
		clock:   clk,
		options: options,
		state:   StateDisarmed,
	}
}

// Subscribe registers a new observer channel.
func (scheduler *Scheduler) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	scheduler.mu.Lock()
	scheduler.events = append(scheduler.events, ch)
	scheduler.mu.Unlock()
	return ch
}

// Close closes all observer channels.
func (scheduler *Scheduler) Close() {
	scheduler.mu.Lock()
	events := scheduler.events
	scheduler.events = nil
	scheduler.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// State returns the current state.
func (scheduler *Scheduler) State() State {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.state
}

// Armed reports whether a vibration cycle is running.
func (scheduler *Scheduler) Armed() bool {
	return scheduler.State() == StateArmed
}

// Pending returns the outstanding timer handle, if any.
func (scheduler *Scheduler) Pending() (TimerHandle, bool) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.pending, scheduler.hasPending
}

// Toggle flips between armed and disarmed and returns the new state.
// If arming cannot schedule a timer the state is left disarmed.
func (scheduler *Scheduler) Toggle() (State, error) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if scheduler.state == StateArmed {
		scheduler.disarmLocked()
		return scheduler.state, nil
	}

	if err := scheduler.scheduleLocked(); err != nil {
		return scheduler.state, err
	}
	scheduler.state = StateArmed
	scheduler.emitLocked(Event{
		Type:     EventStateChange,
		State:    StateArmed,
		Handle:   scheduler.pending,
		Interval: scheduler.intervalLocked(),
		At:       scheduler.clock.Now(),
	})
	return scheduler.state, nil
}

// Disarm stops the cycle if it is running.
func (scheduler *Scheduler) Disarm() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.state == StateArmed {
		scheduler.disarmLocked()
	}
}

// HandleTimerFired runs the alert for the pending handle and re-arms using the
// interval selected at fire time. Fires for any other handle are dropped and
// reported false. The pulse runs without the scheduler lock held; a cycle
// disarmed or re-armed meanwhile is left as it is.
func (scheduler *Scheduler) HandleTimerFired(handle TimerHandle) (bool, error) {
	scheduler.mu.Lock()
	now := scheduler.clock.Now()
	if scheduler.state != StateArmed || !scheduler.hasPending || scheduler.pending != handle {
		scheduler.emitLocked(Event{
			Type:    EventStaleFire,
			State:   scheduler.state,
			Handle:  handle,
			Message: "fire for inactive timer dropped",
			At:      now,
		})
		scheduler.mu.Unlock()
		return false, nil
	}
	scheduler.hasPending = false
	scheduler.mu.Unlock()

	pulseErr := scheduler.haptics.TriggerHapticPulse()

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if pulseErr != nil {
		scheduler.emitLocked(Event{
			Type:    EventHapticError,
			State:   scheduler.state,
			Handle:  handle,
			Message: pulseErr.Error(),
			At:      now,
		})
	}
	scheduler.emitLocked(Event{
		Type:   EventFired,
		State:  scheduler.state,
		Handle: handle,
		At:     now,
	})

	if scheduler.state != StateArmed || scheduler.hasPending {
		return true, nil
	}
	if err := scheduler.scheduleLocked(); err != nil {
		scheduler.state = StateDisarmed
		scheduler.emitLocked(Event{
			Type:  EventStateChange,
			State: StateDisarmed,
			At:    now,
		})
		return true, err
	}
	return true, nil
}

func (scheduler *Scheduler) scheduleLocked() error {
	interval := scheduler.intervalLocked()
	handle, err := scheduler.timers.ScheduleOneShot(interval)
	if err != nil {
		if !errors.Is(err, ErrSchedulingFailure) {
			err = fmt.Errorf("%w: %v", ErrSchedulingFailure, err)
		}
		scheduler.emitLocked(Event{
			Type:     EventScheduleError,
			State:    scheduler.state,
			Interval: interval,
			Message:  err.Error(),
			At:       scheduler.clock.Now(),
		})
		return fmt.Errorf("schedule %s: %w", interval, err)
	}
	scheduler.pending = handle
	scheduler.hasPending = true
	return nil
}

func (scheduler *Scheduler) disarmLocked() {
	scheduler.state = StateDisarmed
	if scheduler.hasPending {
		handle := scheduler.pending
		scheduler.timers.CancelTimer(handle)
		scheduler.hasPending = false
		// A fire may already be on its way when the first cancel lands.
		if scheduler.options.CancelRetryDelay > 0 {
			timers := scheduler.timers
			scheduler.clock.AfterFunc(scheduler.options.CancelRetryDelay, func() {
				timers.CancelTimer(handle)
			})
		}
	}

	scheduler.emitLocked(Event{
		Type:  EventStateChange,
		State: StateDisarmed,
		At:    scheduler.clock.Now(),
	})
}

func (scheduler *Scheduler) intervalLocked() time.Duration {
	return time.Duration(scheduler.source.CurrentDuration()) * scheduler.options.Unit
}

func (scheduler *Scheduler) emitLocked(event Event) {
	events := append([]chan Event(nil), scheduler.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
