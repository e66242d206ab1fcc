package vibe

import "time"

// State represents the current Scheduler mode.
type State string

const (
	StateDisarmed State = "disarmed"
	StateArmed    State = "armed"
)

// EventType defines the type of Scheduler event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventFired         EventType = "fired"
	EventStaleFire     EventType = "stale_fire"
	EventHapticError   EventType = "haptic_error"
	EventScheduleError EventType = "schedule_error"
)

// Event represents a Scheduler update for observers.
type Event struct {
	Type     EventType
	State    State
	Handle   TimerHandle
	Interval time.Duration
	Message  string
	At       time.Time
}
