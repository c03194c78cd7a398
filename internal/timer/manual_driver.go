package timer

import (
	"sync"
	"time"
)

// ManualDriver is the test double the testable-properties scenarios use: a
// "stubbed timer [that] drives on_tick deterministically." It never fires
// on its own; call Fire to invoke onTick synchronously on the calling
// goroutine.
type ManualDriver struct {
	mu      sync.Mutex
	onTick  func()
	stopped bool
}

func NewManualDriver() *ManualDriver {
	return &ManualDriver{}
}

func (d *ManualDriver) Configure(_ time.Duration, onTick func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onTick = onTick
	return nil
}

func (d *ManualDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
}

// Fire invokes the configured onTick callback once, synchronously, as long
// as the driver hasn't been stopped.
func (d *ManualDriver) Fire() {
	d.mu.Lock()
	onTick, stopped := d.onTick, d.stopped
	d.mu.Unlock()
	if !stopped && onTick != nil {
		onTick()
	}
}
