// Package sched implements the scheduler state machine: the ready queue,
// the sleeping/blocked bookkeeping, and the four points at which a
// context switch happens (tick-driven preemption, block(self), sleep,
// terminate(self)).
//
// Grounded on toysched's Scheduler/M.scheduleOnce dispatch loop (FIFO run
// queue as a slice, mutex-guarded transitions, "G blocked, handing off"
// pattern) crossed with original_source/uthreads.cpp's exact state-machine
// contracts (two-predicate block model, sleep-quantum arithmetic, wake-
// then-rotate tick ordering). See SPEC_FULL.md §4.3 and §9 for the full
// rationale, especially around why tick-driven preemption here is
// bookkeeping-exact rather than execution-exact.
package sched

import (
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gopherschool/uthreads/internal/contextops"
	"github.com/gopherschool/uthreads/internal/critsection"
	"github.com/gopherschool/uthreads/internal/errs"
	"github.com/gopherschool/uthreads/internal/logging"
	"github.com/gopherschool/uthreads/internal/threadtable"
	"github.com/gopherschool/uthreads/internal/timer"
)

// Config configures a Scheduler. Validated once, by New.
type Config struct {
	QuantumPeriod time.Duration
	MaxThreads    int
	Driver        timer.Driver
	Logger        *logging.Logger
	// StackSize is advisory only; see uthreads.Config.StackSize.
	StackSize int
	// ExitFunc is called with 0 when thread 0 is terminated, and with 1
	// after a host failure in Init. Defaults to os.Exit; overridable so
	// tests can observe process-exit requests without actually ending the
	// test binary.
	ExitFunc func(code int)
}

// Scheduler is the core state machine. The zero value is not usable; build
// one with New and call Init before any other operation.
type Scheduler struct {
	id     uuid.UUID
	cfg    Config
	logger *logging.Logger
	gate   critsection.Gate

	table      *threadtable.Table[*Thread]
	readyQueue []int

	runningID     int
	totalQuantums int
	initialized   bool
}

// New constructs a Scheduler. cfg.MaxThreads and cfg.QuantumPeriod must be
// positive; cfg.Driver must be non-nil.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	var err error
	switch {
	case cfg.MaxThreads <= 0:
		err = errs.New("New", errs.CodeInvalidArgument, "MaxThreads must be positive")
	case cfg.QuantumPeriod <= 0:
		err = errs.New("New", errs.CodeInvalidArgument, "QuantumPeriod must be positive")
	case cfg.Driver == nil:
		err = errs.New("New", errs.CodeInvalidArgument, "Driver must not be nil")
	}
	if err != nil {
		cfg.Logger.LibraryError("New", err)
		return nil, err
	}
	if cfg.ExitFunc == nil {
		cfg.ExitFunc = osExit
	}
	return &Scheduler{
		id:     uuid.New(),
		cfg:    cfg,
		logger: cfg.Logger,
		table:  threadtable.New[*Thread](cfg.MaxThreads),
	}, nil
}

// ID returns this scheduler instance's correlation id, used to tag log
// lines when more than one Scheduler is alive in a process.
func (s *Scheduler) ID() uuid.UUID { return s.id }

// Init brings up thread 0 (the caller) as RUNNING and arms the timer.
func (s *Scheduler) Init() error {
	s.gate.Enter()
	defer s.gate.Exit()

	if s.initialized {
		err := errs.New("Init", errs.CodeInvalidArgument, "already initialized")
		s.logger.LibraryError("Init", err)
		return err
	}

	main := &Thread{ID: 0, State: Running, Ctx: contextops.WrapCaller(), RunQuantums: 1}
	s.table.Insert(0, main)
	s.runningID = 0
	s.totalQuantums = 1
	s.initialized = true

	if err := s.cfg.Driver.Configure(s.cfg.QuantumPeriod, s.onTickFromDriver); err != nil {
		s.logger.SystemError("Init", err)
		s.cfg.ExitFunc(1)
		return errs.Wrap("Init", err)
	}
	s.logger.Info("scheduler initialized", "id", s.id, "quantum", s.cfg.QuantumPeriod, "max_threads", s.cfg.MaxThreads, "stack_size", s.cfg.StackSize)
	return nil
}

// onTickFromDriver is the callback handed to the timer.Driver; it exists
// only so OnTick (the documented, directly-testable operation) doesn't
// need to know about the gate twice.
func (s *Scheduler) onTickFromDriver() {
	s.OnTick()
}

// OnTick advances the virtual clock by one quantum, wakes eligible
// sleepers, and rotates whoever is currently recorded as running to the
// tail of the ready queue in favor of the next ready thread. Exported so
// tests can drive it directly via timer.ManualDriver.
func (s *Scheduler) OnTick() {
	s.gate.Enter()
	defer s.gate.Exit()

	s.totalQuantums++
	s.wakeEligibleSleepersLocked()
	s.rotateRunningLocked()
	s.dispatchNextLocked()
}

// wakeEligibleSleepersLocked implements step 2 of on_tick: every thread
// whose sleepUntil has been reached rejoins READY (unless it is also
// explicitly blocked), appended to the ready queue in ascending id order.
// table.Each hands back its snapshot in Go's randomized map order, but the
// reference walks an ordered std::map, so simultaneous wakers must be
// sorted here to keep the wake order reproducible.
func (s *Scheduler) wakeEligibleSleepersLocked() {
	var woken []int
	s.table.Each(func(id int, t *Thread) {
		if t.sleeping() && t.sleepUntil <= s.totalQuantums {
			woken = append(woken, id)
		}
	})
	sort.Ints(woken)
	for _, id := range woken {
		t, _ := s.table.Get(id)
		t.sleepUntil = 0
		if !t.blockedByEitherPredicate() {
			t.State = Ready
			s.readyQueue = append(s.readyQueue, id)
		}
	}
}

// rotateRunningLocked implements steps 3-4 of on_tick: the thread
// currently recorded as running goes to the tail of the ready queue.
// This purely updates bookkeeping; see the package doc comment for why
// the thread's own goroutine may keep executing a little longer in
// practice.
func (s *Scheduler) rotateRunningLocked() {
	t, ok := s.table.Get(s.runningID)
	if !ok {
		return
	}
	t.State = Ready
	s.readyQueue = append(s.readyQueue, s.runningID)
}

// dispatchNextLocked implements step 5 of on_tick (and the equivalent
// step every voluntary checkpoint performs): pop the ready queue head,
// mark it running, credit it a quantum, and hand it its turn. Every
// caller is responsible for advancing s.totalQuantums exactly once
// immediately before calling this, tick-driven or not — block(self),
// sleep, and terminate(self) are scheduling decisions in their own
// right, not side effects of a tick.
func (s *Scheduler) dispatchNextLocked() {
	if len(s.readyQueue) == 0 {
		return
	}
	next := s.readyQueue[0]
	s.readyQueue = s.readyQueue[1:]

	t, ok := s.table.Get(next)
	if !ok {
		s.dispatchNextLocked()
		return
	}
	t.State = Running
	t.RunQuantums++
	s.runningID = next
	t.Ctx.Restore()
}

func (s *Scheduler) removeFromReadyLocked(id int) {
	for i, v := range s.readyQueue {
		if v == id {
			s.readyQueue = append(s.readyQueue[:i], s.readyQueue[i+1:]...)
			return
		}
	}
}

// Spawn creates a new thread in READY state. entry receives its own
// thread id explicitly (see SPEC_FULL.md §9, "Ambient current-thread
// identity") rather than an ambient "current thread" that could race
// with tick-driven preemption.
func (s *Scheduler) Spawn(entry func(self int)) (int, error) {
	if entry == nil {
		err := errs.New("Spawn", errs.CodeInvalidArgument, "entry must not be nil")
		s.logger.LibraryError("Spawn", err)
		return 0, err
	}

	s.gate.Enter()
	id, ok := s.table.Allocate()
	if !ok {
		s.gate.Exit()
		err := errs.New("Spawn", errs.CodeCapacity, "no free thread id")
		s.logger.LibraryError("Spawn", err)
		return 0, err
	}

	t := &Thread{ID: id, State: Ready}
	t.Ctx = contextops.Make(func() {
		entry(id)
		s.terminateSelf(id)
	})
	s.table.Insert(id, t)
	s.readyQueue = append(s.readyQueue, id)
	s.gate.Exit()

	s.logger.Debug("spawned thread", "tid", id)
	return id, nil
}

// Block marks tid explicitly blocked. If tid is the running thread, the
// calling goroutine performs its own checkpoint and parks until resumed
// and redispatched.
func (s *Scheduler) Block(tid int) error {
	if tid <= 0 || tid >= s.cfg.MaxThreads {
		err := errs.NewForThread("Block", tid, errs.CodeInvalidArgument, "tid out of range or reserved")
		s.logger.LibraryError("Block", err)
		return err
	}

	s.gate.Enter()
	t, ok := s.table.Get(tid)
	if !ok {
		s.gate.Exit()
		err := errs.NewForThread("Block", tid, errs.CodeNoSuchThread, "no such thread")
		s.logger.LibraryError("Block", err)
		return err
	}
	if t.explicitlyBlocked {
		s.gate.Exit()
		return nil
	}

	t.explicitlyBlocked = true
	if t.State == Ready {
		s.removeFromReadyLocked(tid)
	}
	t.State = Blocked

	selfBlocking := s.runningID == tid
	if selfBlocking {
		s.totalQuantums++
		s.dispatchNextLocked()
	}
	s.gate.Exit()

	if selfBlocking {
		t.Ctx.SaveOrExit()
	}
	return nil
}

// Resume clears tid's explicit-block predicate. If tid is not also
// sleeping, it rejoins READY immediately.
func (s *Scheduler) Resume(tid int) error {
	s.gate.Enter()
	defer s.gate.Exit()

	t, ok := s.table.Get(tid)
	if !ok {
		err := errs.NewForThread("Resume", tid, errs.CodeNoSuchThread, "no such thread")
		s.logger.LibraryError("Resume", err)
		return err
	}
	if !t.explicitlyBlocked {
		return nil
	}
	t.explicitlyBlocked = false
	if !t.blockedByEitherPredicate() && t.State == Blocked {
		t.State = Ready
		s.readyQueue = append(s.readyQueue, tid)
	}
	return nil
}

// Sleep parks the calling thread self for numQuantums quanta. Matches the
// reference's exact wake arithmetic: sleepUntil = total_quantums +
// numQuantums + 1.
func (s *Scheduler) Sleep(self int, numQuantums int) error {
	if self == 0 {
		err := errs.NewForThread("Sleep", self, errs.CodeInvalidArgument, "the main thread cannot sleep")
		s.logger.LibraryError("Sleep", err)
		return err
	}
	if numQuantums <= 0 {
		err := errs.NewForThread("Sleep", self, errs.CodeInvalidArgument, "numQuantums must be positive")
		s.logger.LibraryError("Sleep", err)
		return err
	}

	s.gate.Enter()
	t, ok := s.table.Get(self)
	if !ok {
		s.gate.Exit()
		err := errs.NewForThread("Sleep", self, errs.CodeNoSuchThread, "no such thread")
		s.logger.LibraryError("Sleep", err)
		return err
	}

	s.removeFromReadyLocked(self)
	t.sleepUntil = s.totalQuantums + numQuantums + 1
	t.State = Blocked

	// Sleep always names the caller itself, unlike Block, so the calling
	// goroutine always parks here; dispatchNextLocked only needs to run if
	// a tick hasn't already rotated self out of running_id first. That
	// dispatch is itself a scheduling decision, so it advances
	// total_quantums exactly like a tick would.
	if s.runningID == self {
		s.totalQuantums++
		s.dispatchNextLocked()
	}
	s.gate.Exit()

	t.Ctx.SaveOrExit()
	return nil
}

// Terminate releases tid's resources. Terminating id 0 tears down the
// whole scheduler and exits the process. Terminating the running thread
// does not return to the caller; Terminate dispatches the next thread and
// then unwinds the calling goroutine with runtime.Goexit.
func (s *Scheduler) Terminate(tid int) error {
	if tid == 0 {
		s.terminateMain()
		return nil // unreachable in practice: terminateMain exits the process
	}

	s.gate.Enter()
	t, ok := s.table.Get(tid)
	if !ok {
		s.gate.Exit()
		err := errs.NewForThread("Terminate", tid, errs.CodeNoSuchThread, "no such thread")
		s.logger.LibraryError("Terminate", err)
		return err
	}

	selfTerminating := s.runningID == tid
	s.removeFromReadyLocked(tid)
	s.table.Remove(tid)
	if selfTerminating {
		s.totalQuantums++
		s.dispatchNextLocked()
	}
	s.gate.Exit()

	t.Ctx.Kill()
	if selfTerminating {
		runtime.Goexit()
	}
	return nil
}

// terminateSelf is invoked automatically when a spawned thread's entry
// function returns, treating "falls off the end" as an implicit
// Terminate(self), per the reference's "typical use terminates before
// return" contract.
func (s *Scheduler) terminateSelf(tid int) {
	s.gate.Enter()
	s.removeFromReadyLocked(tid)
	s.table.Remove(tid)
	if s.runningID == tid {
		s.totalQuantums++
		s.dispatchNextLocked()
	}
	s.gate.Exit()
}

func (s *Scheduler) terminateMain() {
	s.gate.Enter()
	s.table.Each(func(id int, t *Thread) {
		if id != 0 {
			t.Ctx.Kill()
		}
	})
	s.gate.Exit()
	s.logger.Info("main thread terminated; exiting", "id", s.id)
	s.cfg.ExitFunc(0)
}

// GetTid returns the currently recorded running thread id. Unsynchronized,
// matching the reference's documented observation-race tolerance.
func (s *Scheduler) GetTid() int {
	return s.runningID
}

// GetTotalQuantums returns the number of quanta elapsed since Init.
// Unsynchronized, for the same reason as GetTid.
func (s *Scheduler) GetTotalQuantums() int {
	return s.totalQuantums
}

// GetQuantums returns how many quanta tid has spent RUNNING.
func (s *Scheduler) GetQuantums(tid int) (int, error) {
	s.gate.Enter()
	defer s.gate.Exit()

	t, ok := s.table.Get(tid)
	if !ok {
		err := errs.NewForThread("GetQuantums", tid, errs.CodeNoSuchThread, "no such thread")
		s.logger.LibraryError("GetQuantums", err)
		return 0, err
	}
	return t.RunQuantums, nil
}

// Shutdown stops the underlying timer driver without touching thread
// state; used by tests and by Runtime.Shutdown.
func (s *Scheduler) Shutdown() {
	s.cfg.Driver.Stop()
}

func osExit(code int) {
	os.Exit(code)
}
