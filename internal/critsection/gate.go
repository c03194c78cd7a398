// Package critsection provides the gate that serializes scheduler mutation
// against concurrent tick delivery — the Go analogue of the reference's
// SIGNAL_BLOCK/SIGNAL_UNBLOCK sigprocmask macros. Grounded on the plain
// sync.Mutex toysched's Scheduler already guards its state with; this
// package exists mainly to give the concept a name that matches the
// reference's own vocabulary, and as a single seam where a future
// reentrant or read/write variant could be substituted without touching
// call sites.
package critsection

import "sync"

// Gate is a flat (non-reentrant) mutual-exclusion gate. Every Api
// operation and every OnTick invocation brackets its work with
// Enter/Exit; internal helpers that must run while the gate is already
// held are written as separate, already-locked functions rather than
// calling back into Enter.
type Gate struct {
	mu sync.Mutex
}

// Enter blocks until the gate is free, then holds it.
func (g *Gate) Enter() { g.mu.Lock() }

// Exit releases the gate. Exit must be called exactly once per Enter,
// typically via defer.
func (g *Gate) Exit() { g.mu.Unlock() }
