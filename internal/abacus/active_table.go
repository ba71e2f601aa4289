package abacus

import (
	"github.com/panacus-go/pkg/collections"
)

// ActiveTable records which item ids have been excluded (or, for the
// fast "fully contained" scan path, which item ids a single path
// touches). Backed directly by the teacher's pkg/collections.Bitset,
// following its own internal "hprof re-exports collections.Bitset"
// idiom of treating Bitset as the canonical id-set primitive.
type ActiveTable struct {
	bits       *collections.Bitset
	annotation map[uint32]Partial // only populated when withAnnotation
	annotate   bool
}

// Partial records a partial bp sub-interval [Start, End) of a node that
// was (de)activated, used when exclusion needs exact bp accounting
// rather than a whole-node boolean.
type Partial struct {
	Start int
	End   int
}

// NewActiveTable returns a table sized for ids in [0, size).
func NewActiveTable(size int, withAnnotation bool) *ActiveTable {
	t := &ActiveTable{bits: collections.NewBitset(size)}
	if withAnnotation {
		t.annotate = true
		t.annotation = make(map[uint32]Partial)
	}
	return t
}

// WithAnnotation reports whether this table tracks partial bp intervals.
func (t *ActiveTable) WithAnnotation() bool {
	return t.annotate
}

// Activate marks an id as fully active (excluded/covered).
func (t *ActiveTable) Activate(id uint32) {
	t.bits.Set(int(id))
}

// ActivateAndAnnotate marks id active and records the [a,b) sub-interval
// of its length-l span that was covered by this activation. If the
// previously recorded interval for id, unioned with [a,b), spans the
// whole node [0,l), Activate's whole-node bit remains the record of
// truth; the annotation map only needs the partial case.
func (t *ActiveTable) ActivateAndAnnotate(id uint32, l, a, b int) {
	t.Activate(id)
	if !t.annotate {
		return
	}
	if prev, ok := t.annotation[id]; ok {
		if a < prev.Start {
			prev.Start = a
		}
		if b > prev.End {
			prev.End = b
		}
		if prev.Start == 0 && prev.End == l {
			delete(t.annotation, id)
			return
		}
		t.annotation[id] = prev
		return
	}
	if a == 0 && b == l {
		return
	}
	t.annotation[id] = Partial{Start: a, End: b}
}

// IsActive reports whether id is active.
func (t *ActiveTable) IsActive(id uint32) bool {
	return t.bits.Test(int(id))
}

// Annotation returns the recorded partial interval for id, if any.
func (t *ActiveTable) Annotation(id uint32) (Partial, bool) {
	if !t.annotate {
		return Partial{}, false
	}
	p, ok := t.annotation[id]
	return p, ok
}

// Count returns the number of active ids.
func (t *ActiveTable) Count() int {
	return t.bits.Count()
}

// Iterate calls fn for each active id.
func (t *ActiveTable) Iterate(fn func(id uint32) bool) {
	t.bits.Iterate(func(i int) bool { return fn(uint32(i)) })
}
