// Package timer provides the injectable virtual-time tick facility the
// scheduler drives its quantum accounting from. Grounded on toysched's
// time.Sleep-paced M.run loop, turned into an interface so production code
// can use a real ticker while tests drive on_tick deterministically.
package timer

import "time"

// Driver configures a recurring (or, for ManualDriver, caller-driven) tick
// and delivers it by calling onTick.
type Driver interface {
	// Configure arms the driver so that onTick is invoked roughly once
	// per period, until Stop is called. Configure may only be called once
	// per driver instance.
	Configure(period time.Duration, onTick func()) error
	// Stop disarms the driver. Safe to call more than once.
	Stop()
}
