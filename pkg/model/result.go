package model

import "time"

// AnalysisResult carries the histogram and growth curves produced for an
// AnalysisJob, plus the timing and provenance metadata panacus-cli prints
// and internal/repository caches. It is the wire/cache shape of the live
// internal/histogram.Histogram and internal/growth.Curve values the
// analyzer computes; it is decoupled from those packages so a cached row
// can round-trip through JSON without reconstructing a live histogram.
type AnalysisResult struct {
	JobID         string            `json:"job_id"`
	Mode          string            `json:"mode"`
	Count         string            `json:"count"`
	NumGroups     int               `json:"num_groups"`
	GroupNames    []string          `json:"group_names,omitempty"`
	Histograms    []CountedHistogram `json:"histograms,omitempty"`
	Growth        []CurveResult     `json:"growth,omitempty"`
	OrderedGrowth []CurveResult     `json:"ordered_growth,omitempty"`
	Digest        string            `json:"digest"`
	TimingMs      map[string]int64  `json:"timing_ms,omitempty"`
	ComputedAt    time.Time         `json:"computed_at"`
}

// CountedHistogram names which countable (node/edge/bp) a histogram was
// built over, so a Count="all" job's three scans stay distinguishable
// once folded into one AnalysisResult.
type CountedHistogram struct {
	Count string           `json:"count"`
	Histogram *HistogramResult `json:"histogram"`
}

// HistogramResult is Coverage[k] = number of items (or bp mass, for bp
// counting) with coverage exactly k.
type HistogramResult struct {
	Coverage []uint64 `json:"coverage"`
}

// Total returns the number of (or bp mass of) countable items with
// coverage >= 1.
func (h *HistogramResult) Total() uint64 {
	var total uint64
	for k := 1; k < len(h.Coverage); k++ {
		total += h.Coverage[k]
	}
	return total
}

// CurveResult is one growth or ordered-growth curve, named by the
// threshold that produced it.
type CurveResult struct {
	Coverage int       `json:"coverage"`
	Quorum   float64   `json:"quorum"`
	Values   []float64 `json:"values"` // Values[m-1] = g(m), for m = 1..NumGroups
}
