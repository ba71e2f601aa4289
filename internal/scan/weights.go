package scan

import "github.com/panacus-go/internal/gfa"

// BpWeights returns the per-NodeId bp-mass weight a bp-count histogram
// should use: a node's full length, except where Covered records a
// partial sub-interval (a node only ever partially inside the subset
// mask across every path that touched it), in which case the recorded
// sub-interval length is used instead.
func (r *Result) BpWeights() []uint64 {
	n := r.Storage.NodeCount()
	w := make([]uint64, n+1)
	for id := 1; id <= n; id++ {
		full := int(r.Storage.NodeLen(gfa.NodeId(id)))
		if r.Covered != nil && r.Covered.Contains(uint32(id)) {
			w[id] = uint64(r.Covered.CoveredLen(uint32(id), full))
		} else {
			w[id] = uint64(full)
		}
	}
	return w
}
