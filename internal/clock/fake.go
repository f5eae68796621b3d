package clock

import (
	"sync"

	"github.com/sweeney/lampctl/internal/logic"
)

// Fake is a settable Source for tests. The zero value reports unavailable.
type Fake struct {
	mu   sync.Mutex
	wall logic.WallTime
	ok   bool
}

// NewFake creates a Fake that is initially unavailable.
func NewFake() *Fake {
	return &Fake{}
}

// Set makes the fake report the given hour and minute.
func (f *Fake) Set(hour, minute int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wall = logic.WallTime{Hour: hour, Minute: minute}
	f.ok = true
}

// SetUnavailable makes the fake report unsynchronized time.
func (f *Fake) SetUnavailable() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ok = false
}

// NowLocal returns the configured wall time.
func (f *Fake) NowLocal() (logic.WallTime, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wall, f.ok
}
