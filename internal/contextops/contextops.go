// Package contextops is the Go stand-in for the save/restore/make-context
// primitives a native user-level threading library would get from
// setjmp/longjmp. Go exposes no portable non-local jump, so each logical
// thread is instead backed by its own goroutine, parked on a buffered
// channel whenever it isn't its turn to run. Parking on a channel receive,
// unlike setjmp, preserves the entire Go call stack for free, so resuming
// is exact for every voluntary suspension point. It is not a perfect
// replacement for signal-driven preemption of a thread that never calls
// back into the scheduler; see the scheduler package and SPEC_FULL.md for
// the consequences of that gap.
//
// Grounded on the goroutine-per-unit-of-work, channel-based park/resume
// pattern used for blocked work in toysched's later steps, generalized so
// the parked unit is a whole logical thread rather than one queued job.
package contextops

import "runtime"

// Context is the execution vehicle for one logical thread: a goroutine
// (or, for the wrapped caller, the calling goroutine itself) plus the
// channels used to hand it its turn and to unwind it during termination.
type Context struct {
	turn chan struct{}
	done chan struct{}
	kill chan struct{}
}

// Make spawns a goroutine that blocks until its first turn, then runs body.
// body is expected to call Save internally (via the scheduler's checkpoint
// helpers) whenever it wants to give up the CPU; it must not retain or
// reuse the Context after returning.
func Make(body func()) *Context {
	c := &Context{
		turn: make(chan struct{}, 1),
		done: make(chan struct{}),
		kill: make(chan struct{}),
	}
	go func() {
		defer close(c.done)
		select {
		case <-c.turn:
		case <-c.kill:
			runtime.Goexit()
		}
		body()
	}()
	return c
}

// WrapCaller returns a Context representing a thread that is already
// running on the calling goroutine (used only for the main thread, which
// is RUNNING the moment Init is called rather than freshly spawned).
func WrapCaller() *Context {
	return &Context{
		turn: make(chan struct{}, 1),
		done: make(chan struct{}),
		kill: make(chan struct{}),
	}
}

// Restore hands the thread its turn. Non-blocking: the receiving goroutine
// picks it up whenever it next reaches a receive on turn.
func (c *Context) Restore() {
	select {
	case c.turn <- struct{}{}:
	default:
		// Already has an unconsumed turn queued; nothing more to do.
	}
}

// Save blocks the calling goroutine — which must be the goroutine this
// Context backs — until it is either given its turn again (returns false,
// "resumed normally") or killed (returns true, caller must unwind; callers
// that can't unwind gracefully should instead call SaveOrExit).
func (c *Context) Save() (killed bool) {
	select {
	case <-c.turn:
		return false
	case <-c.kill:
		return true
	}
}

// SaveOrExit is Save for call sites with nothing sensible to do on a kill:
// it calls runtime.Goexit on the calling goroutine instead of returning.
func (c *Context) SaveOrExit() {
	if c.Save() {
		runtime.Goexit()
	}
}

// Kill idempotently unwinds a parked or not-yet-started thread so its
// goroutine can exit without ever running (more of) its body. Safe to call
// more than once and safe to call on a thread that has already finished.
func (c *Context) Kill() {
	select {
	case <-c.kill:
		// already killed
	default:
		close(c.kill)
	}
}

// Done reports when the thread's goroutine has returned from body (or been
// killed before ever starting it).
func (c *Context) Done() <-chan struct{} {
	return c.done
}
