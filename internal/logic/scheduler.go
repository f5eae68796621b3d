package logic

import (
	"fmt"
	"time"
)

// noMinute is the "never observed" sentinel for the minute latch.
const noMinute = -1

// Scheduler tracks timer and buzzer deadlines and the last wall-clock minute
// that was checked against the alarm list.
//
// Timer and buzzer deadlines are compared with time.Time values carrying Go's
// monotonic clock reading, so wall-clock jumps (NTP adjustment, DST) cannot
// cause spurious expiry. The wall clock is only consulted for alarm matching.
//
// Scheduler is not safe for concurrent use; the owner must serialize calls.
type Scheduler struct {
	ring time.Duration

	timerRunning  bool
	timerDeadline time.Time

	buzzerActive bool
	buzzerEnd    time.Time

	lastMinute int
}

// NewScheduler creates a Scheduler. ring is how long the buzzer stays
// energized after a timer expiry or an alarm match.
func NewScheduler(ring time.Duration) *Scheduler {
	return &Scheduler{
		ring:       ring,
		lastMinute: noMinute,
	}
}

// StartTimer arms the countdown to expire at now+d. A non-positive duration
// forces the timer to stopped instead (a zero-total request means "stop").
// Returns whether the timer is running afterwards.
func (s *Scheduler) StartTimer(now time.Time, d time.Duration) bool {
	if d <= 0 {
		s.timerRunning = false
		return false
	}
	s.timerDeadline = now.Add(d)
	s.timerRunning = true
	return true
}

// StopTimer disarms the countdown and clears any active buzzer interval.
// The caller is responsible for de-energizing the buzzer peripheral.
func (s *Scheduler) StopTimer() {
	s.timerRunning = false
	s.buzzerActive = false
}

// Tick advances the scheduler by one loop iteration. wall is nil while the
// clock source is unsynchronized. Checks run in a fixed order: timer expiry,
// buzzer auto-stop, minute-edge alarm match. A timer that expires in this
// tick therefore cannot be auto-stopped in the same tick.
//
// Returned events tell the caller what to do with the peripheral:
// EventTimerFinished and EventAlarmFired mean energize, EventBuzzerTimeout
// means de-energize.
func (s *Scheduler) Tick(now time.Time, wall *WallTime, alarms []string) []Event {
	var events []Event

	if s.timerRunning && !now.Before(s.timerDeadline) {
		s.timerRunning = false
		s.trigger(now)
		events = append(events, Event{Timestamp: now, Type: EventTimerFinished})
	}

	if s.buzzerActive && !now.Before(s.buzzerEnd) {
		s.buzzerActive = false
		events = append(events, Event{Timestamp: now, Type: EventBuzzerTimeout})
	}

	// Alarm check runs once per wall-clock minute. The latch is what keeps a
	// matching alarm from re-firing on every iteration for the whole minute.
	if wall != nil && wall.Minute != s.lastMinute {
		s.lastMinute = wall.Minute
		hhmm := fmt.Sprintf("%02d:%02d", wall.Hour, wall.Minute)
		for _, a := range alarms {
			if a == hhmm {
				s.trigger(now)
				events = append(events, Event{Timestamp: now, Type: EventAlarmFired, Alarm: a})
				break
			}
		}
	}

	return events
}

// trigger starts (or restarts) the buzzer interval. Re-triggering while
// already active replaces the deadline; there is no queueing.
func (s *Scheduler) trigger(now time.Time) {
	s.buzzerActive = true
	s.buzzerEnd = now.Add(s.ring)
}

// TimerRunning reports whether the countdown is armed.
func (s *Scheduler) TimerRunning() bool {
	return s.timerRunning
}

// BuzzerActive reports whether a buzzer interval is in progress.
func (s *Scheduler) BuzzerActive() bool {
	return s.buzzerActive
}

// Remaining returns how long until the countdown expires, zero when stopped
// or already past the deadline.
func (s *Scheduler) Remaining(now time.Time) time.Duration {
	if !s.timerRunning {
		return 0
	}
	d := s.timerDeadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// FormatRemaining renders a duration as "<H>h <M>m <S>s" with no zero
// padding, e.g. "0h 1m 30s".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm %ds", s/3600, (s%3600)/60, s%60)
}
