package sched

import "github.com/gopherschool/uthreads/internal/contextops"

// State is one of the three lifecycle states a thread record can be in.
type State int

const (
	Ready State = iota
	Running
	Blocked
)

func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Blocked:
		return "BLOCKED"
	default:
		return "UNKNOWN"
	}
}

// Thread is one entry in the scheduler's thread table. sleepUntil and
// explicitlyBlocked are the two independent predicates the invariants
// require: a thread can be sleeping, explicitly blocked, both, or
// neither, and it only rejoins READY once both are clear.
type Thread struct {
	ID                int
	State             State
	Ctx               *contextops.Context
	RunQuantums       int
	sleepUntil        int // 0 means "not sleeping"
	explicitlyBlocked bool
}

func (t *Thread) sleeping() bool { return t.sleepUntil != 0 }

func (t *Thread) blockedByEitherPredicate() bool {
	return t.explicitlyBlocked || t.sleeping()
}
