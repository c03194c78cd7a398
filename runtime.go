package uthreads

import (
	"github.com/google/uuid"

	"github.com/gopherschool/uthreads/internal/sched"
	"github.com/gopherschool/uthreads/internal/timer"
)

// Runtime is an explicit handle onto one scheduler instance. Grounded on
// toysched's Scheduler, which toysched7.go already uses as an explicit
// struct a caller constructs and owns; Runtime is the public face of
// internal/sched.Scheduler plumbed through the Config/Option ambient
// stack described in SPEC_FULL.md §9 ("Explicit handle vs. singleton" —
// both forms are offered, this is the explicit one).
type Runtime struct {
	s *sched.Scheduler
}

// NewRuntime constructs a Runtime from DefaultConfig with opts applied, but
// does not start it; call Init to create the main thread and arm the timer.
func NewRuntime(opts ...Option) (*Runtime, error) {
	cfg := applyOptions(DefaultConfig(), opts)
	if cfg.Driver == nil {
		cfg.Driver = timer.NewTickerDriver()
	}

	s, err := sched.New(sched.Config{
		QuantumPeriod: cfg.QuantumPeriod,
		MaxThreads:    cfg.MaxThreads,
		Driver:        cfg.Driver,
		Logger:        cfg.Logger,
		StackSize:     cfg.StackSize,
	})
	if err != nil {
		return nil, err
	}
	return &Runtime{s: s}, nil
}

// ID identifies this runtime instance, useful for correlating log lines
// across multiple runtimes in the same process.
func (r *Runtime) ID() uuid.UUID { return r.s.ID() }

// Init creates the main thread (id 0, already RUNNING) and arms the timer
// driver. Must be called exactly once before any other method.
func (r *Runtime) Init() error { return r.s.Init() }

// Spawn creates a new READY thread running entry and returns its id.
// entry receives its own id so it never needs to infer "self" from
// ambient state — see SPEC_FULL.md §9 on the ambient-identity race this
// avoids.
func (r *Runtime) Spawn(entry func(self int)) (int, error) { return r.s.Spawn(entry) }

// Block marks tid explicitly blocked. If tid is the calling thread, Block
// does not return until a matching Resume (and any pending sleep) clears
// both predicates and the scheduler dispatches it again.
func (r *Runtime) Block(tid int) error { return r.s.Block(tid) }

// Resume clears tid's explicit-block predicate. If tid is not also
// sleeping, it rejoins the ready queue.
func (r *Runtime) Resume(tid int) error { return r.s.Resume(tid) }

// Sleep parks the calling thread, identified by self, until it has been
// through numQuantums additional ticks of wall-clock scheduling. self must
// name the calling thread's own id and must not be the main thread.
func (r *Runtime) Sleep(self int, numQuantums int) error { return r.s.Sleep(self, numQuantums) }

// Terminate removes tid from the scheduler. Terminating the main thread
// (id 0) kills every other thread and ends the process. Terminate never
// returns to a self-terminating caller.
func (r *Runtime) Terminate(tid int) error { return r.s.Terminate(tid) }

// GetTid returns the currently running thread's id. Safe to call only
// from within a thread body or the main thread's own flow of control.
func (r *Runtime) GetTid() int { return r.s.GetTid() }

// GetTotalQuantums returns the number of quantums elapsed since Init.
func (r *Runtime) GetTotalQuantums() int { return r.s.GetTotalQuantums() }

// GetQuantums returns how many quantums tid has spent RUNNING.
func (r *Runtime) GetQuantums(tid int) (int, error) { return r.s.GetQuantums(tid) }

// Shutdown stops the timer driver. It does not terminate any threads;
// callers that want a clean process exit should Terminate(0) instead.
func (r *Runtime) Shutdown() { r.s.Shutdown() }
