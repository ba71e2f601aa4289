package growth

import (
	"context"

	"github.com/panacus-go/internal/histogram"
	"github.com/panacus-go/pkg/parallel"
)

// GrowthEngine computes the closed-form expected pangenome growth curve
// g(m; coverage, quorum) for m = 1..N from a coverage histogram,
// following the hypergeometric-sampling argument: a countable with
// coverage k contributes to g(m) with probability that a random
// m-subset of the N groups includes at least the (coverage, quorum)
// threshold's required number of the k groups containing it.
type GrowthEngine struct {
	Config parallel.PoolConfig
}

// NewGrowthEngine returns an engine with the teacher's default pool sizing.
func NewGrowthEngine() *GrowthEngine {
	return &GrowthEngine{Config: parallel.DefaultPoolConfig()}
}

// Curve is one computed growth curve alongside the threshold that
// produced it.
type Curve struct {
	Threshold Threshold
	Values    []float64 // Values[m-1] = g(m), for m = 1..N
}

// CalcGrowth computes a single curve for one threshold.
func (e *GrowthEngine) CalcGrowth(ctx context.Context, h *histogram.Histogram, t Threshold) Curve {
	n := h.NumGroups
	lf := newLogFactorials(n)
	values := make([]float64, n)

	ms := make([]int, n)
	for i := range ms {
		ms[i] = i + 1
	}

	results := parallel.NewChunkProcessor[int, []float64](e.Config)
	partials := results.ProcessChunks(ctx, ms,
		func(ctx context.Context, chunk []int, workerID int) []float64 {
			out := make([]float64, len(chunk))
			for i, m := range chunk {
				out[i] = e.growthAt(lf, h, t, m)
			}
			return out
		},
		func(chunks [][]float64) []float64 {
			flat := make([]float64, 0, n)
			for _, c := range chunks {
				flat = append(flat, c...)
			}
			return flat
		})
	copy(values, partials)

	return Curve{Threshold: t, Values: values}
}

func (e *GrowthEngine) growthAt(lf logFactorials, h *histogram.Histogram, t Threshold, m int) float64 {
	n := h.NumGroups
	threshold := t.At(m)
	if threshold < 1 {
		threshold = 1
	}
	var g float64
	for k := 1; k <= n; k++ {
		count := h.Coverage[k]
		if count == 0 {
			continue
		}
		p := lf.hypergeomTail(k, m, n, threshold)
		g += float64(count) * p
	}
	return g
}

// CalcAllGrowths computes one curve per threshold, in the teacher's
// map-then-combine shape (one curve mapped per threshold, concurrently).
func (e *GrowthEngine) CalcAllGrowths(ctx context.Context, h *histogram.Histogram, thresholds []Threshold) []Curve {
	return parallel.MapReduce(ctx, thresholds, e.Config,
		func(ctx context.Context, t Threshold) Curve {
			return e.CalcGrowth(ctx, h, t)
		},
		func(curves []Curve) []Curve { return curves })
}
