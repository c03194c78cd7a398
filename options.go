package uthreads

import (
	"time"

	"github.com/gopherschool/uthreads/internal/logging"
	"github.com/gopherschool/uthreads/internal/timer"
)

// Option mutates a Config during NewRuntime. Grounded on toysched's plain
// struct-literal configuration, extended to the functional-options shape
// ehrlich-b-go-ublk uses to layer CLI flags and library defaults onto the
// same Config type.
type Option func(*Config)

// WithMaxThreads overrides the thread-table capacity.
func WithMaxThreads(n int) Option {
	return func(c *Config) { c.MaxThreads = n }
}

// WithStackSize overrides the advisory stack-size hint recorded at Init.
// Go goroutines grow their stacks on demand, so this has no functional
// effect; it exists for parity with callers migrating from a fixed-
// STACK_SIZE model.
func WithStackSize(n int) Option {
	return func(c *Config) { c.StackSize = n }
}

// WithQuantumPeriod overrides the duration of one scheduling quantum.
func WithQuantumPeriod(d time.Duration) Option {
	return func(c *Config) { c.QuantumPeriod = d }
}

// WithTimerDriver overrides the tick source, e.g. to a *timer.ManualDriver
// in tests or a *timer.HostDriver on Linux for CPU-time-based ticking.
func WithTimerDriver(d timer.Driver) Option {
	return func(c *Config) { c.Driver = d }
}

// WithLogger overrides the diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func applyOptions(cfg Config, opts []Option) Config {
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
