// Package logic contains the pure scheduler core: countdown timer, buzzer
// interval, and the once-per-minute alarm matcher.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// WallTime is a broken-down local time with minute resolution.
type WallTime struct {
	Hour   int
	Minute int
}

// EventType identifies a scheduler transition.
type EventType string

const (
	// EventTimerFinished fires when the countdown reaches its deadline.
	// Implies the buzzer was energized.
	EventTimerFinished EventType = "TIMER_FINISHED"

	// EventAlarmFired fires when the wall-clock minute matches a stored alarm.
	// Implies the buzzer was energized. Event.Alarm carries the matched HH:MM.
	EventAlarmFired EventType = "ALARM_FIRED"

	// EventBuzzerTimeout fires when an active buzzer interval elapses.
	// Implies the buzzer must be de-energized.
	EventBuzzerTimeout EventType = "BUZZER_OFF"
)

// Event represents a scheduler transition to be acted on by the caller.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Alarm     string // matched HH:MM for EventAlarmFired, empty otherwise
}
