// Package clock provides the wall-clock source for alarm matching.
// A source reports local broken-down time with minute resolution, or
// "unavailable" while time has never been synchronized. The scheduler
// tolerates indefinite unavailability.
package clock

import (
	"time"

	"github.com/sweeney/lampctl/internal/logic"
)

// Source reports the current local wall-clock time.
type Source interface {
	// NowLocal returns the broken-down local time and true, or false if
	// time has never been synchronized.
	NowLocal() (logic.WallTime, bool)
}

// wallTime applies the GMT and DST offsets to an absolute instant and
// breaks it down to hour and minute.
func wallTime(t time.Time, gmtOffset, dstOffset time.Duration) logic.WallTime {
	local := t.UTC().Add(gmtOffset + dstOffset)
	return logic.WallTime{Hour: local.Hour(), Minute: local.Minute()}
}
