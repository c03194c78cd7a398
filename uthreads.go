// Package uthreads implements a preemptive, round-robin user-level thread
// library on top of goroutines: a single scheduler drives a virtual clock,
// and every quantum it rotates the running thread to the back of a ready
// queue and dispatches the next one. Grounded on toysched's multi-step
// scheduler progression (particularly toysched7.go's explicit Scheduler
// struct) and reshaped around the fixed-capacity thread table, sleep/block
// predicates, and diagnostic taxonomy this library's SPEC_FULL.md
// describes; see DESIGN.md for the full grounding ledger.
package uthreads

import "sync"

var (
	defaultOnce sync.Once
	defaultRT   *Runtime
	defaultErr  error
)

// defaultRuntime lazily builds the ambient Runtime the package-level free
// functions delegate to, mirroring toysched's other face: a single
// process-wide scheduler a caller never has to construct by hand. Built
// once, on first use, with DefaultConfig and no options — callers that
// need a custom Config should use NewRuntime directly instead.
func defaultRuntime() (*Runtime, error) {
	defaultOnce.Do(func() {
		defaultRT, defaultErr = NewRuntime()
	})
	return defaultRT, defaultErr
}

// Init starts the ambient default runtime's main thread and timer driver.
func Init() error {
	rt, err := defaultRuntime()
	if err != nil {
		return err
	}
	return rt.Init()
}

// Spawn creates a thread on the ambient default runtime.
func Spawn(entry func(self int)) (int, error) {
	rt, err := defaultRuntime()
	if err != nil {
		return 0, err
	}
	return rt.Spawn(entry)
}

// Block blocks tid on the ambient default runtime.
func Block(tid int) error {
	rt, err := defaultRuntime()
	if err != nil {
		return err
	}
	return rt.Block(tid)
}

// Resume clears tid's block on the ambient default runtime.
func Resume(tid int) error {
	rt, err := defaultRuntime()
	if err != nil {
		return err
	}
	return rt.Resume(tid)
}

// Sleep parks the calling thread self on the ambient default runtime.
func Sleep(self int, numQuantums int) error {
	rt, err := defaultRuntime()
	if err != nil {
		return err
	}
	return rt.Sleep(self, numQuantums)
}

// Terminate removes tid from the ambient default runtime.
func Terminate(tid int) error {
	rt, err := defaultRuntime()
	if err != nil {
		return err
	}
	return rt.Terminate(tid)
}

// GetTid returns the ambient default runtime's currently running thread id.
func GetTid() int {
	rt, err := defaultRuntime()
	if err != nil {
		return -1
	}
	return rt.GetTid()
}

// GetTotalQuantums returns the ambient default runtime's elapsed quantums.
func GetTotalQuantums() int {
	rt, err := defaultRuntime()
	if err != nil {
		return 0
	}
	return rt.GetTotalQuantums()
}

// GetQuantums returns how many quantums tid has run on the ambient default
// runtime.
func GetQuantums(tid int) (int, error) {
	rt, err := defaultRuntime()
	if err != nil {
		return 0, err
	}
	return rt.GetQuantums(tid)
}
