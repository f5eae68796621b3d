package web

import (
	"encoding/json"

	"github.com/sweeney/lampctl/internal/control"
	"github.com/sweeney/lampctl/internal/logic"
)

// StatusJSON is the /status response. The key set is part of the UI
// contract: the page's polling script reads exactly these fields.
type StatusJSON struct {
	TimerRunning bool   `json:"timerRunning"`
	Remaining    string `json:"remaining"`
	AlarmsCount  int    `json:"alarmsCount"`
	Led1         bool   `json:"led1"`
	Led2         bool   `json:"led2"`
}

func formatStatus(snap control.Snapshot) []byte {
	sj := StatusJSON{
		TimerRunning: snap.TimerRunning,
		Remaining:    logic.FormatRemaining(snap.Remaining),
		AlarmsCount:  len(snap.Alarms),
		Led1:         snap.Lamp1,
		Led2:         snap.Lamp2,
	}
	data, _ := json.Marshal(sj)
	return data
}
