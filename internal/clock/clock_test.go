package clock

import (
	"errors"
	"testing"
	"time"
)

func TestSystemAppliesOffsets(t *testing.T) {
	s := NewSystem(2*time.Hour, 30*time.Minute)
	s.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 45, 0, 0, time.UTC)
	}

	wall, ok := s.NowLocal()
	if !ok {
		t.Fatal("system source must always be available")
	}
	if wall.Hour != 13 || wall.Minute != 15 {
		t.Errorf("wall: got %02d:%02d, want 13:15", wall.Hour, wall.Minute)
	}
}

func TestSystemOffsetWrapsMidnight(t *testing.T) {
	s := NewSystem(3*time.Hour, 0)
	s.now = func() time.Time {
		return time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	}

	wall, _ := s.NowLocal()
	if wall.Hour != 2 || wall.Minute != 30 {
		t.Errorf("wall: got %02d:%02d, want 02:30", wall.Hour, wall.Minute)
	}
}

func TestNTPUnavailableBeforeSync(t *testing.T) {
	n := NewNTP("pool.ntp.org", 0, 0, time.Hour)

	if _, ok := n.NowLocal(); ok {
		t.Error("expected unavailable before first sync")
	}
}

func TestNTPSyncAppliesOffset(t *testing.T) {
	n := NewNTP("pool.ntp.org", time.Hour, 0, time.Hour)
	n.now = func() time.Time {
		return time.Date(2026, 3, 1, 11, 59, 40, 0, time.UTC)
	}
	n.query = func(server string) (time.Duration, error) {
		return 30 * time.Second, nil
	}

	n.sync()

	wall, ok := n.NowLocal()
	if !ok {
		t.Fatal("expected available after sync")
	}
	// 11:59:40 UTC + 30s NTP offset + 1h GMT offset = 13:00:10.
	if wall.Hour != 13 || wall.Minute != 0 {
		t.Errorf("wall: got %02d:%02d, want 13:00", wall.Hour, wall.Minute)
	}
}

func TestNTPStaysUnavailableOnQueryError(t *testing.T) {
	n := NewNTP("pool.ntp.org", 0, 0, time.Hour)
	n.query = func(server string) (time.Duration, error) {
		return 0, errors.New("no route to host")
	}

	n.sync()

	if _, ok := n.NowLocal(); ok {
		t.Error("expected unavailable after failed sync")
	}
}

func TestNTPKeepsLastOffsetOnLaterFailure(t *testing.T) {
	n := NewNTP("pool.ntp.org", 0, 0, time.Hour)
	n.now = func() time.Time {
		return time.Date(2026, 3, 1, 8, 14, 0, 0, time.UTC)
	}
	n.query = func(server string) (time.Duration, error) {
		return time.Minute, nil
	}
	n.sync()

	n.query = func(server string) (time.Duration, error) {
		return 0, errors.New("timeout")
	}
	n.sync()

	wall, ok := n.NowLocal()
	if !ok {
		t.Fatal("expected source to stay available after a failed resync")
	}
	if wall.Hour != 8 || wall.Minute != 15 {
		t.Errorf("wall: got %02d:%02d, want 08:15", wall.Hour, wall.Minute)
	}
}

func TestFakeSource(t *testing.T) {
	f := NewFake()
	if _, ok := f.NowLocal(); ok {
		t.Error("zero-value fake must be unavailable")
	}

	f.Set(8, 15)
	wall, ok := f.NowLocal()
	if !ok || wall.Hour != 8 || wall.Minute != 15 {
		t.Errorf("fake: got %v %v, want 08:15 true", wall, ok)
	}

	f.SetUnavailable()
	if _, ok := f.NowLocal(); ok {
		t.Error("expected unavailable after SetUnavailable")
	}
}
