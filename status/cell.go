package status

import (
	"sync/atomic"
	"time"
)

type entry[T any] struct {
	val T
	at  time.Time
}

// Cell is a single-slot mailbox between one producing goroutine and
// any number of readers. A write replaces the previous value; a read
// returns the latest one without blocking.
type Cell[T any] struct {
	p atomic.Pointer[entry[T]]
}

// Put publishes val, stamped at now.
func (c *Cell[T]) Put(val T, now time.Time) {
	c.p.Store(&entry[T]{val: val, at: now})
}

// Get returns the latest value if one was written within maxAge of
// now. A maxAge of zero or less disables the freshness check.
func (c *Cell[T]) Get(now time.Time, maxAge time.Duration) (T, bool) {
	e := c.p.Load()
	if e == nil {
		var zero T
		return zero, false
	}
	if maxAge > 0 && now.Sub(e.at) > maxAge {
		var zero T
		return zero, false
	}
	return e.val, true
}
