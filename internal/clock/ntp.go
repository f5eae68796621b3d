package clock

import (
	"log"
	"sync"
	"time"

	"github.com/beevik/ntp"

	"github.com/sweeney/lampctl/internal/logic"
)

// NTP is a Source that synchronizes against an NTP pool server in the
// background. Until the first successful query it reports unavailable;
// after that it applies the measured clock offset to the host clock.
type NTP struct {
	server    string
	gmtOffset time.Duration
	dstOffset time.Duration
	interval  time.Duration

	now   func() time.Time
	query func(server string) (time.Duration, error)

	mu     sync.Mutex
	offset time.Duration
	synced bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewNTP creates an NTP source polling the given server every interval.
// Call Run to start synchronizing and Close to stop.
func NewNTP(server string, gmtOffset, dstOffset, interval time.Duration) *NTP {
	return &NTP{
		server:    server,
		gmtOffset: gmtOffset,
		dstOffset: dstOffset,
		interval:  interval,
		now:       time.Now,
		query:     queryOffset,
		done:      make(chan struct{}),
	}
}

func queryOffset(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// Run starts the background sync loop. The first query happens immediately.
func (n *NTP) Run() {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.sync()
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()
		for {
			select {
			case <-n.done:
				return
			case <-ticker.C:
				n.sync()
			}
		}
	}()
}

func (n *NTP) sync() {
	offset, err := n.query(n.server)
	if err != nil {
		// Alarms simply stay quiet until time is known.
		log.Printf("ntp: query %s: %v", n.server, err)
		return
	}
	n.mu.Lock()
	n.offset = offset
	n.synced = true
	n.mu.Unlock()
}

// NowLocal reports the NTP-corrected local time, or false before the first
// successful sync.
func (n *NTP) NowLocal() (logic.WallTime, bool) {
	n.mu.Lock()
	offset, synced := n.offset, n.synced
	n.mu.Unlock()
	if !synced {
		return logic.WallTime{}, false
	}
	return wallTime(n.now().Add(offset), n.gmtOffset, n.dstOffset), true
}

// Close stops the background sync loop.
func (n *NTP) Close() error {
	close(n.done)
	n.wg.Wait()
	return nil
}
