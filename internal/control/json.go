package control

import (
	"encoding/json"
	"time"

	"github.com/sweeney/lampctl/internal/logic"
)

// statusEvent is the payload shape for system lifecycle events carrying a
// full status snapshot.
type statusEvent struct {
	System statusEventInner `json:"system"`
}

type statusEventInner struct {
	Timestamp string       `json:"timestamp"`
	Event     string       `json:"event"`
	Reason    string       `json:"reason,omitempty"`
	Status    statusDetail `json:"status"`
}

type statusDetail struct {
	TimerRunning  bool   `json:"timerRunning"`
	Remaining     string `json:"remaining"`
	AlarmsCount   int    `json:"alarmsCount"`
	Led1          bool   `json:"led1"`
	Led2          bool   `json:"led2"`
	BuzzerActive  bool   `json:"buzzerActive"`
	ClockSynced   bool   `json:"clockSynced"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// FormatStatusEvent renders a system lifecycle event with an embedded status
// snapshot, for STARTUP and SHUTDOWN messages.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	se := statusEvent{
		System: statusEventInner{
			Timestamp: snap.Now.UTC().Format(time.RFC3339),
			Event:     event,
			Reason:    reason,
			Status: statusDetail{
				TimerRunning:  snap.TimerRunning,
				Remaining:     logic.FormatRemaining(snap.Remaining),
				AlarmsCount:   len(snap.Alarms),
				Led1:          snap.Lamp1,
				Led2:          snap.Lamp2,
				BuzzerActive:  snap.BuzzerActive,
				ClockSynced:   snap.ClockSynced,
				UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
			},
		},
	}
	data, _ := json.Marshal(se)
	return data
}
