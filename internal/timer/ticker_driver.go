package timer

import (
	"sync"
	"time"
)

// TickerDriver is the default, portable Driver: it wraps a time.Ticker in a
// dedicated goroutine. It ticks on wall-clock time rather than the
// reference's process CPU time (ITIMER_VIRTUAL) — a deliberate, documented
// simplification; see HostDriver for the closer-to-native alternative and
// SPEC_FULL.md §9 for the rationale.
type TickerDriver struct {
	mu      sync.Mutex
	ticker  *time.Ticker
	stop    chan struct{}
	stopped bool
}

// NewTickerDriver returns an unconfigured TickerDriver.
func NewTickerDriver() *TickerDriver {
	return &TickerDriver{}
}

func (d *TickerDriver) Configure(period time.Duration, onTick func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ticker = time.NewTicker(period)
	d.stop = make(chan struct{})
	stop := d.stop
	ticker := d.ticker

	go func() {
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				onTick()
			}
		}
	}()
	return nil
}

func (d *TickerDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	if d.ticker != nil {
		d.ticker.Stop()
	}
	if d.stop != nil {
		close(d.stop)
	}
}
