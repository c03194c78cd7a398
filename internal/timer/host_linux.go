//go:build linux

package timer

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// HostDriver is the opt-in, Linux-only Driver that restores the reference's
// actual virtual-time semantics: it arms a real ITIMER_VIRTUAL (which only
// counts down while this process is scheduled on a CPU) and delivers ticks
// via SIGVTALRM, exactly the mechanism the original C library used.
//
// It is not the default. Go gives a library no way to mask signal delivery
// to a single goroutine the way sigprocmask masks it for a single OS
// thread (signal handling in Go is inherently process-wide, funneled
// through a dedicated runtime goroutine via os/signal), so HostDriver's
// tick callback still runs concurrently with whichever thread goroutine
// happens to be executing, with the same bookkeeping-exact-not-
// execution-exact caveat TickerDriver has. Its value is fidelity to the
// reference's CPU-time-based tick cadence, not stronger preemption
// guarantees.
type HostDriver struct {
	mu      sync.Mutex
	sigChan chan os.Signal
	stop    chan struct{}
	armed   bool
}

func NewHostDriver() *HostDriver {
	return &HostDriver{}
}

func (d *HostDriver) Configure(period time.Duration, onTick func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	it := unix.Itimerval{
		Value:    unix.NsecToTimeval(period.Nanoseconds()),
		Interval: unix.NsecToTimeval(period.Nanoseconds()),
	}
	if err := unix.Setitimer(unix.ITIMER_VIRTUAL, &it, nil); err != nil {
		return fmt.Errorf("timer: setitimer(ITIMER_VIRTUAL): %w", err)
	}

	d.sigChan = make(chan os.Signal, 1)
	d.stop = make(chan struct{})
	signal.Notify(d.sigChan, syscall.SIGVTALRM)
	d.armed = true

	sigChan, stop := d.sigChan, d.stop
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-sigChan:
				onTick()
			}
		}
	}()
	return nil
}

func (d *HostDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.armed {
		return
	}
	d.armed = false
	signal.Stop(d.sigChan)
	close(d.stop)
	zero := unix.Itimerval{}
	_ = unix.Setitimer(unix.ITIMER_VIRTUAL, &zero, nil)
}
