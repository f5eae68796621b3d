package clock

import (
	"time"

	"github.com/sweeney/lampctl/internal/logic"
)

// System is a Source backed by the host clock, which is assumed to already
// be synchronized (most hosts run their own NTP daemon).
type System struct {
	gmtOffset time.Duration
	dstOffset time.Duration
	now       func() time.Time
}

// NewSystem creates a System source with the given offsets from UTC.
func NewSystem(gmtOffset, dstOffset time.Duration) *System {
	return &System{
		gmtOffset: gmtOffset,
		dstOffset: dstOffset,
		now:       time.Now,
	}
}

// NowLocal reports the host clock with the configured offsets applied.
func (s *System) NowLocal() (logic.WallTime, bool) {
	return wallTime(s.now(), s.gmtOffset, s.dstOffset), true
}
