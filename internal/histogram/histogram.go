// Package histogram folds a coverage vector into a coverage histogram:
// h[k] is the number of countable items present in exactly k groups.
package histogram

import (
	"github.com/panacus-go/internal/abacus"
	"github.com/panacus-go/internal/gfa"
)

// Histogram holds h[0..N] for a given countable and the total group
// count N the coverage values are relative to.
type Histogram struct {
	Count   gfa.CountType
	NumGroups int
	Coverage []uint64 // Coverage[k] = number of items (bp mass for bp counting) with coverage exactly k
}

// Build folds cov into a histogram over [0, numGroups]. weights is the
// per-item contribution each covered item adds to its coverage bucket:
// nil means "weight 1" (node/edge counting). For bp counting, weights
// carries each node's included bp mass (its full length, or the
// sub-interval length recorded in an IntervalContainer for nodes only
// partially covered by a subset mask), so h[k] becomes total bp mass
// at coverage k rather than an item count.
func Build(count gfa.CountType, cov abacus.Coverage, numGroups int, weights []uint64) *Histogram {
	h := &Histogram{Count: count, NumGroups: numGroups, Coverage: make([]uint64, numGroups+1)}
	for item, k := range cov {
		if k == 0 || int(k) > numGroups {
			continue
		}
		w := uint64(1)
		if weights != nil && item < len(weights) {
			w = weights[item]
		}
		h.Coverage[k] += w
	}
	return h
}

// Total returns the number of countable items with coverage >= 1 (for bp
// counting, their bp mass), i.e. the pangenome size for this countable
// under the active mask.
func (h *Histogram) Total() uint64 {
	var total uint64
	for k := 1; k < len(h.Coverage); k++ {
		total += h.Coverage[k]
	}
	return total
}
