package gpio

import (
	"fmt"
	"sync"
)

// Fake is a test double that records output operations in memory.
type Fake struct {
	mu sync.Mutex

	// Current pin/peripheral state.
	Lamp1       bool
	Lamp2       bool
	BuzzerLevel bool
	ToneHz      int

	// Ops records operations in order, e.g. "lamp1=on", "tone=2000".
	Ops []string

	// Err, if set, is returned by every operation.
	Err error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFake creates a Fake with all outputs LOW.
func NewFake() *Fake {
	return &Fake{}
}

// SetLamp1 records the first lamp state.
func (f *Fake) SetLamp1(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Lamp1 = on
	f.Ops = append(f.Ops, "lamp1="+onOff(on))
	return nil
}

// SetLamp2 records the second lamp state.
func (f *Fake) SetLamp2(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Lamp2 = on
	f.Ops = append(f.Ops, "lamp2="+onOff(on))
	return nil
}

// SetBuzzerLevel records the buzzer level pin state.
func (f *Fake) SetBuzzerLevel(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.BuzzerLevel = on
	f.Ops = append(f.Ops, "buzzer="+onOff(on))
	return nil
}

// SetTone records the tone frequency.
func (f *Fake) SetTone(hz int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if hz < 0 {
		hz = 0
	}
	f.ToneHz = hz
	f.Ops = append(f.Ops, fmt.Sprintf("tone=%d", hz))
	return nil
}

// Close marks the fake as closed.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Sounding reports whether either drive path is currently energized.
func (f *Fake) Sounding() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.BuzzerLevel || f.ToneHz > 0
}

// Snapshot returns the current pin states under the lock.
func (f *Fake) Snapshot() (lamp1, lamp2, buzzerLevel bool, toneHz int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Lamp1, f.Lamp2, f.BuzzerLevel, f.ToneHz
}

// Reset clears recorded state.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lamp1 = false
	f.Lamp2 = false
	f.BuzzerLevel = false
	f.ToneHz = 0
	f.Ops = nil
	f.Err = nil
	f.Closed = false
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
