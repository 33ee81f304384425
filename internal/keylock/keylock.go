// Package keylock provides per-key mutual exclusion.
//
// The sanction manager holds a key lock across its check-then-create
// sequence so two concurrent issues for the same subject cannot both pass
// the exclusivity check, and the point service serializes read-modify-write
// per player. Unrelated keys never contend.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Table is a set of named mutexes, created on demand and discarded when the
// last holder releases them
type Table struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New creates an empty lock table
func New() *Table {
	return &Table{
		locks: make(map[string]*entry),
	}
}

// Lock acquires the mutex for the given key, blocking while another
// goroutine holds it. The returned function releases the lock.
func (t *Table) Lock(key string) func() {
	t.mu.Lock()
	e, ok := t.locks[key]
	if !ok {
		e = &entry{}
		t.locks[key] = e
	}
	e.refs++
	t.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		t.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(t.locks, key)
		}
		t.mu.Unlock()
	}
}
