// Package control owns all mutable daemon state: the scheduler core, the
// alarm list, and the lamp mirrors. Every mutation and read goes through one
// lock, so HTTP handlers and the tick loop never race and no per-field
// locking is needed.
package control

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sweeney/lampctl/internal/clock"
	"github.com/sweeney/lampctl/internal/gpio"
	"github.com/sweeney/lampctl/internal/logic"
	"github.com/sweeney/lampctl/internal/mqtt"
	"github.com/sweeney/lampctl/internal/store"
)

// AlarmParamPrefix is the request parameter name prefix that marks alarm
// values in /setAlarms (alarm0, alarm1, ...).
const AlarmParamPrefix = "alarm"

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	TimerRunning bool
	Remaining    time.Duration
	Alarms       []string
	Lamp1        bool
	Lamp2        bool
	BuzzerActive bool
	ClockSynced  bool
	StartTime    time.Time
	Now          time.Time
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Config wires a Controller.
type Config struct {
	Outputs   gpio.Outputs
	Buzzer    *gpio.Buzzer
	Store     store.Store
	Clock     clock.Source
	Publisher mqtt.Publisher   // nil disables event publishing
	Ring      time.Duration    // buzzer duration on timer expiry / alarm match
	Now       func() time.Time // nil means time.Now
}

// Controller holds daemon state behind a single lock.
type Controller struct {
	mu sync.Mutex

	sched  *logic.Scheduler
	alarms []string
	lamp1  bool
	lamp2  bool

	out    gpio.Outputs
	buzzer *gpio.Buzzer
	store  store.Store
	clock  clock.Source
	pub    mqtt.Publisher
	now    func() time.Time

	startTime time.Time
}

// New creates a Controller and loads the persisted alarm list. A load
// failure is logged and the daemon starts with no alarms; the store heals
// on the next save.
func New(cfg Config) *Controller {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	c := &Controller{
		sched:     logic.NewScheduler(cfg.Ring),
		out:       cfg.Outputs,
		buzzer:    cfg.Buzzer,
		store:     cfg.Store,
		clock:     cfg.Clock,
		pub:       cfg.Publisher,
		now:       cfg.Now,
		startTime: cfg.Now(),
	}

	alarms, err := cfg.Store.Load()
	if err != nil {
		log.Printf("store: load alarms: %v", err)
	}
	c.alarms = alarms
	return c
}

// SetLamp updates the lamp mirror and drives the pin. n is 1 or 2.
func (c *Controller) SetLamp(n int, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	switch n {
	case 1:
		c.lamp1 = on
		err = c.out.SetLamp1(on)
	case 2:
		c.lamp2 = on
		err = c.out.SetLamp2(on)
	default:
		return fmt.Errorf("no such lamp: %d", n)
	}
	if err != nil {
		return fmt.Errorf("drive lamp %d: %w", n, err)
	}

	c.publish(mqtt.Event{
		Timestamp: c.now(),
		Type:      mqtt.EventLampChanged,
		Detail:    fmt.Sprintf("lamp%d=%s", n, onOff(on)),
	})
	return nil
}

// SetAlarms replaces the alarm list with the values of all request
// parameters whose name starts with "alarm". Invalid values are silently
// dropped; the result is sorted, deduped, capped, and persisted.
func (c *Controller) SetAlarms(params url.Values) {
	var collected []string
	for name, vals := range params {
		if !strings.HasPrefix(name, AlarmParamPrefix) {
			continue
		}
		collected = append(collected, vals...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.alarms = store.Normalize(collected)
	if err := c.store.Save(c.alarms); err != nil {
		// Not surfaced to the client; the previous persisted contents stay.
		log.Printf("store: save alarms: %v", err)
	}

	c.publish(mqtt.Event{
		Timestamp: c.now(),
		Type:      mqtt.EventAlarmsSaved,
		Detail:    fmt.Sprintf("%d", len(c.alarms)),
	})
}

// ClearAlarms empties the alarm list and removes the persisted key.
func (c *Controller) ClearAlarms() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.alarms = nil
	if err := c.store.Clear(); err != nil {
		log.Printf("store: clear alarms: %v", err)
	}

	c.publish(mqtt.Event{Timestamp: c.now(), Type: mqtt.EventAlarmsCleared})
}

// StartTimer arms the countdown for the given total duration. Negative
// components clamp to zero; a zero total forces the timer to stopped.
func (c *Controller) StartTimer(hours, minutes, seconds int) {
	if hours < 0 {
		hours = 0
	}
	if minutes < 0 {
		minutes = 0
	}
	if seconds < 0 {
		seconds = 0
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.sched.StartTimer(now, total) {
		return
	}

	c.publish(mqtt.Event{
		Timestamp: now,
		Type:      mqtt.EventTimerStarted,
		Detail:    logic.FormatRemaining(total),
	})
}

// StopTimer disarms the countdown and silences the buzzer, ringing or not.
func (c *Controller) StopTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sched.StopTimer()
	if err := c.buzzer.Off(); err != nil {
		log.Printf("buzzer off: %v", err)
	}

	c.publish(mqtt.Event{Timestamp: c.now(), Type: mqtt.EventTimerStopped})
}

// Tick advances the scheduler by one loop iteration and applies the
// resulting transitions to the buzzer peripheral.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var wall *logic.WallTime
	if wt, ok := c.clock.NowLocal(); ok {
		wall = &wt
	}

	for _, ev := range c.sched.Tick(now, wall, c.alarms) {
		switch ev.Type {
		case logic.EventTimerFinished:
			log.Printf("timer finished, ringing buzzer")
			if err := c.buzzer.On(); err != nil {
				log.Printf("buzzer on: %v", err)
			}
			c.publish(mqtt.Event{Timestamp: ev.Timestamp, Type: mqtt.EventTimerFinished})

		case logic.EventAlarmFired:
			log.Printf("alarm %s fired, ringing buzzer", ev.Alarm)
			if err := c.buzzer.On(); err != nil {
				log.Printf("buzzer on: %v", err)
			}
			c.publish(mqtt.Event{Timestamp: ev.Timestamp, Type: mqtt.EventAlarmFired, Detail: ev.Alarm})

		case logic.EventBuzzerTimeout:
			if err := c.buzzer.Off(); err != nil {
				log.Printf("buzzer off: %v", err)
			}
			c.publish(mqtt.Event{Timestamp: ev.Timestamp, Type: mqtt.EventBuzzerOff})
		}
	}
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	_, synced := c.clock.NowLocal()

	return Snapshot{
		TimerRunning: c.sched.TimerRunning(),
		Remaining:    c.sched.Remaining(now),
		Alarms:       append([]string(nil), c.alarms...),
		Lamp1:        c.lamp1,
		Lamp2:        c.lamp2,
		BuzzerActive: c.sched.BuzzerActive(),
		ClockSynced:  synced,
		StartTime:    c.startTime,
		Now:          now,
	}
}

// publish sends an event if a publisher is configured. Failures are logged,
// never surfaced: losing an event must not disturb the device.
func (c *Controller) publish(ev mqtt.Event) {
	if c.pub == nil {
		return
	}
	if err := c.pub.Publish(ev); err != nil {
		log.Printf("publish %s: %v", ev.Type, err)
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
