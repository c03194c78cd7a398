package uthreads

import (
	"time"

	"github.com/gopherschool/uthreads/internal/logging"
	"github.com/gopherschool/uthreads/internal/timer"
)

// Config configures a Runtime at construction time. Grounded on the
// ambient Config/DefaultConfig pattern ehrlich-b-go-ublk's internal
// packages each carry (e.g. internal/logging.Config), re-themed around
// quantum period and thread capacity instead of device/queue sizing.
type Config struct {
	// QuantumPeriod is the wall-clock (or, under a HostDriver, CPU-time)
	// duration of one scheduling quantum.
	QuantumPeriod time.Duration
	// MaxThreads bounds how many threads (including the main thread at
	// id 0) can exist at once. Spawn fails with ErrCapacity once this
	// many ids are in use.
	MaxThreads int
	// Driver supplies tick delivery. Defaults to a *timer.TickerDriver
	// (wall-clock) if left nil.
	Driver timer.Driver
	// Logger receives lifecycle and error diagnostics. Defaults to
	// logging.Default() if left nil.
	Logger *logging.Logger
	// StackSize is advisory only: Go goroutines grow their stacks
	// on demand, so nothing allocates a buffer of this size. It is
	// carried and logged at Init purely to give callers migrating from
	// the reference's fixed-STACK_SIZE model a place to record intent.
	StackSize int
}

// DefaultConfig returns the configuration a bare uthreads.Init() uses:
// a 100ms quantum, room for 128 threads, and a wall-clock ticker.
func DefaultConfig() Config {
	return Config{
		QuantumPeriod: 100 * time.Millisecond,
		MaxThreads:    128,
		Driver:        timer.NewTickerDriver(),
		Logger:        logging.Default(),
		StackSize:     4096,
	}
}
