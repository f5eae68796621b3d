package main

import (
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/sweeney/lampctl/internal/clock"
	"github.com/sweeney/lampctl/internal/control"
	"github.com/sweeney/lampctl/internal/gpio"
	"github.com/sweeney/lampctl/internal/mqtt"
	"github.com/sweeney/lampctl/internal/store"
)

// loopFixture wires a controller against fakes and a mutable clock shared
// with runLoop. The clock is mutex guarded because the test goroutine
// advances it while runLoop's goroutine reads it.
type loopFixture struct {
	ctrl *control.Controller
	out  *gpio.Fake
	pub  *mqtt.FakePublisher

	mu  sync.Mutex
	now time.Time
}

func (f *loopFixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *loopFixture) advance(step time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(step)
}

func newLoopFixture(t *testing.T) *loopFixture {
	t.Helper()
	f := &loopFixture{
		out: gpio.NewFake(),
		pub: mqtt.NewFakePublisher(),
		now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	f.ctrl = control.New(control.Config{
		Outputs:   f.out,
		Buzzer:    gpio.NewBuzzer(f.out, false, gpio.DefaultToneHz),
		Store:     store.NewFake(),
		Clock:     clock.NewFake(),
		Publisher: f.pub,
		Ring:      1800 * time.Millisecond,
		Now:       f.clock,
	})
	return f
}

// drive runs runLoop, advances the clock by step before each of nTicks
// deliveries, then sends sig and waits for the loop to return.
func (f *loopFixture) drive(t *testing.T, heartbeat time.Duration, step time.Duration, nTicks int, sig os.Signal) error {
	t.Helper()
	tick := make(chan time.Time)
	sigCh := make(chan os.Signal, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- runLoop(f.ctrl, f.pub, heartbeat, f.clock, tick, sigCh)
	}()

	for i := 0; i < nTicks; i++ {
		f.advance(step)
		tick <- time.Time{}
	}
	sigCh <- sig

	return <-errCh
}

func TestRunLoopShutdownOnSignal(t *testing.T) {
	f := newLoopFixture(t)

	if err := f.drive(t, 0, 10*time.Millisecond, 3, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if len(f.pub.SystemEvents) != 1 {
		t.Fatalf("expected 1 system event, got %d", len(f.pub.SystemEvents))
	}
	ev := f.pub.SystemEvents[0]
	if ev.Event != "SHUTDOWN" {
		t.Errorf("event: got %q, want SHUTDOWN", ev.Event)
	}
	if ev.Reason != "SIGTERM" {
		t.Errorf("reason: got %q, want SIGTERM", ev.Reason)
	}
	if !ev.Retained {
		t.Error("shutdown event should be retained")
	}
	if len(ev.RawPayload) == 0 {
		t.Error("shutdown event should carry a status snapshot payload")
	}
}

func TestRunLoopShutdownReasonSIGINT(t *testing.T) {
	f := newLoopFixture(t)

	if err := f.drive(t, 0, 10*time.Millisecond, 0, syscall.SIGINT); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}
	if len(f.pub.SystemEvents) != 1 || f.pub.SystemEvents[0].Reason != "SIGINT" {
		t.Errorf("system events: got %+v, want one SHUTDOWN/SIGINT", f.pub.SystemEvents)
	}
}

func TestRunLoopDrivesScheduler(t *testing.T) {
	f := newLoopFixture(t)
	f.ctrl.StartTimer(0, 0, 1)

	// 120 ticks of 10ms walk past the 1s deadline; the loop must observe
	// the expiry and turn the buzzer on.
	if err := f.drive(t, 0, 10*time.Millisecond, 120, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if f.ctrl.Snapshot().TimerRunning {
		t.Error("expected timer stopped after expiry")
	}
	if !f.out.Sounding() {
		t.Error("expected buzzer sounding after expiry")
	}

	types := f.pub.EventTypes()
	if len(types) != 2 || types[0] != mqtt.EventTimerStarted || types[1] != mqtt.EventTimerFinished {
		t.Errorf("event types: got %v, want [TIMER_STARTED TIMER_FINISHED]", types)
	}
}

func TestRunLoopHeartbeat(t *testing.T) {
	f := newLoopFixture(t)

	// 5 ticks of 1s with a 2s heartbeat: beats land at t=2s and t=4s.
	if err := f.drive(t, 2*time.Second, time.Second, 5, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	beats := 0
	for _, ev := range f.pub.SystemEvents {
		if ev.Event == "HEARTBEAT" {
			beats++
			if len(ev.RawPayload) == 0 {
				t.Error("heartbeat should carry a status snapshot payload")
			}
		}
	}
	if beats != 2 {
		t.Errorf("heartbeats: got %d, want 2", beats)
	}
}

func TestRunLoopHeartbeatDisabled(t *testing.T) {
	f := newLoopFixture(t)

	if err := f.drive(t, 0, time.Second, 5, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}
	for _, ev := range f.pub.SystemEvents {
		if ev.Event == "HEARTBEAT" {
			t.Error("heartbeat emitted with interval 0")
		}
	}
}

func TestRunLoopNilPublisher(t *testing.T) {
	f := newLoopFixture(t)
	tick := make(chan time.Time)
	sigCh := make(chan os.Signal, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- runLoop(f.ctrl, nil, time.Second, f.clock, tick, sigCh)
	}()

	for i := 0; i < 3; i++ {
		f.advance(time.Second)
		tick <- time.Time{}
	}
	sigCh <- syscall.SIGTERM

	if err := <-errCh; err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}
}
