// Package threadtable implements the fixed-capacity id -> thread-record
// registry the scheduler keeps. Generalized from the sync.Mutex-guarded,
// ever-incrementing id allocator toysched's Scheduler.NewG uses: this
// version reclaims ids on removal and refuses to exceed a configured
// capacity, as the thread table's own invariants require.
package threadtable

import "sync"

// Record is the minimal shape threadtable needs from a thread entry; the
// scheduler package's *sched.Thread satisfies it.
type Record any

// Table is a fixed-capacity, id-reusing registry. Id 0 is reserved and
// never handed out by Allocate; callers insert it explicitly once, at
// construction of the main thread.
type Table[T Record] struct {
	mu       sync.Mutex
	capacity int
	entries  map[int]T
}

// New returns an empty table addressable over ids [0, capacity), including
// the reserved main id 0 — so capacity is the same number the scheduler's
// MaxThreads names, total threads alive at once, main included.
func New[T Record](capacity int) *Table[T] {
	return &Table[T]{
		capacity: capacity,
		entries:  make(map[int]T, capacity),
	}
}

// Allocate reserves and returns the smallest unused id in [1, capacity).
// ok is false when every non-reserved id is in use.
func (t *Table[T]) Allocate() (id int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for candidate := 1; candidate < t.capacity; candidate++ {
		if _, taken := t.entries[candidate]; !taken {
			return candidate, true
		}
	}
	return 0, false
}

func (t *Table[T]) has(id int) bool {
	_, ok := t.entries[id]
	return ok
}

// Insert stores record under id, overwriting any prior entry.
func (t *Table[T]) Insert(id int, record T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = record
}

// Get returns the record for id, if present.
func (t *Table[T]) Get(id int) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.entries[id]
	return r, ok
}

// Contains reports whether id is present.
func (t *Table[T]) Contains(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.has(id)
}

// Remove deletes id, if present, freeing it for reuse by Allocate.
func (t *Table[T]) Remove(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// Len returns the number of entries currently stored, including id 0.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Each calls fn once per entry, in unspecified order. fn must not call back
// into the table.
func (t *Table[T]) Each(fn func(id int, record T)) {
	t.mu.Lock()
	snapshot := make(map[int]T, len(t.entries))
	for id, r := range t.entries {
		snapshot[id] = r
	}
	t.mu.Unlock()
	for id, r := range snapshot {
		fn(id, r)
	}
}
