package abacus

// IntervalContainer tracks, for nodes that are only *partially* covered
// by the subset mask, the exact [start, end) sub-interval of bp that
// are included — a node fully covered never needs an entry (the
// scanner calls Remove for it instead), which keeps the map small on the common case of
// whole-node inclusion.
type IntervalContainer struct {
	intervals map[uint32]Partial
}

// NewIntervalContainer returns an empty container.
func NewIntervalContainer() *IntervalContainer {
	return &IntervalContainer{intervals: make(map[uint32]Partial)}
}

// Contains reports whether id has a recorded partial interval.
func (c *IntervalContainer) Contains(id uint32) bool {
	_, ok := c.intervals[id]
	return ok
}

// Add records (or extends) the partial [a,b) interval covered for id.
func (c *IntervalContainer) Add(id uint32, a, b int) {
	if prev, ok := c.intervals[id]; ok {
		if a < prev.Start {
			prev.Start = a
		}
		if b > prev.End {
			prev.End = b
		}
		c.intervals[id] = prev
		return
	}
	c.intervals[id] = Partial{Start: a, End: b}
}

// Remove deletes id's partial-interval record, used once a node's
// coverage is discovered to be whole (b-a == node length).
func (c *IntervalContainer) Remove(id uint32) {
	delete(c.intervals, id)
}

// CoveredLen returns the partial bp length recorded for id, or
// wholeLen if id has no partial record (i.e. is either fully covered
// or not covered at all — callers distinguish those via ActiveTable).
func (c *IntervalContainer) CoveredLen(id uint32, wholeLen int) int {
	if p, ok := c.intervals[id]; ok {
		return p.End - p.Start
	}
	return wholeLen
}

// Len returns the number of nodes with a partial-interval record.
func (c *IntervalContainer) Len() int {
	return len(c.intervals)
}
