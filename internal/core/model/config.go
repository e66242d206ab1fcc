package model

import "time"

var defaultDurations = [...]int{1, 2, 5, 10, 15, 30, 60}

// DefaultDurations returns a copy of the fixed table of selectable intervals, in minutes.
func DefaultDurations() []int {
	return append([]int(nil), defaultDurations[:]...)
}

// DefaultIndex selects the second table entry at startup.
const DefaultIndex = 1

// SchedulerConfig contains runtime settings for the vibration scheduler.
type SchedulerConfig struct {
	// Unit is the length of one table step; minutes on a real device.
	Unit             time.Duration
	CancelRetryDelay time.Duration
}

// TimerConfig limits the platform timer service.
type TimerConfig struct {
	MaxPending int
}

// BuzzerConfig shapes the emulated haptic pulse.
type BuzzerConfig struct {
	PulseDuration time.Duration
	ToneHz        float64
}

// Settings defines the ambient options read from the settings file.
type Settings struct {
	Unit             time.Duration
	CancelRetryDelay time.Duration
	MaxPendingTimers int
	PulseDuration    time.Duration
	ToneHz           float64
	LogLevel         string
	LogFile          string
}

// DefaultSettings returns default settings for rudd.
func DefaultSettings() Settings {
	return Settings{
		Unit:             time.Minute,
		CancelRetryDelay: 10 * time.Millisecond,
		MaxPendingTimers: 1,
		PulseDuration:    500 * time.Millisecond,
		ToneHz:           180,
		LogLevel:         "info",
	}
}

// UnitLabel names one table step for the face. Units other than a whole
// second, minute or hour are shown as a duration.
func (settings Settings) UnitLabel() string {
	switch settings.Unit {
	case 0, time.Minute:
		return "Minutes"
	case time.Second:
		return "Seconds"
	case time.Hour:
		return "Hours"
	}
	return "x " + settings.Unit.String()
}

// SchedulerConfig converts settings to SchedulerConfig.
func (settings Settings) SchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Unit:             settings.Unit,
		CancelRetryDelay: settings.CancelRetryDelay,
	}
}

// TimerConfig converts settings to TimerConfig.
func (settings Settings) TimerConfig() TimerConfig {
	return TimerConfig{MaxPending: settings.MaxPendingTimers}
}

// BuzzerConfig converts settings to BuzzerConfig.
func (settings Settings) BuzzerConfig() BuzzerConfig {
	return BuzzerConfig{
		PulseDuration: settings.PulseDuration,
		ToneHz:        settings.ToneHz,
	}
}
