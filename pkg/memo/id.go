package memo

import (
	"sync/atomic"
	"time"
)

// IDGenerator hands out memo ids derived from the creation time in Unix
// milliseconds. Ids are strictly increasing: when the clock has not moved
// past the last id, the next id is last+1.
type IDGenerator struct {
	last atomic.Int64
}

// Next returns a new id for a memo created at now.
func (g *IDGenerator) Next(now time.Time) int64 {
	for {
		last := g.last.Load()
		id := now.UnixMilli()
		if id <= last {
			id = last + 1
		}
		if g.last.CompareAndSwap(last, id) {
			return id
		}
	}
}

// Seed makes sure future ids are greater than id.
func (g *IDGenerator) Seed(id int64) {
	for {
		last := g.last.Load()
		if id <= last || g.last.CompareAndSwap(last, id) {
			return
		}
	}
}

// Last returns the most recently issued or seeded id.
func (g *IDGenerator) Last() int64 {
	return g.last.Load()
}
