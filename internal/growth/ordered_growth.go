package growth

import (
	"context"
	"sort"

	"github.com/panacus-go/internal/abacus"
	"github.com/panacus-go/internal/gfa"
	"github.com/panacus-go/pkg/parallel"
)

// OrderedGrowth computes the growth curve realized by a single, fixed
// permutation of groups (the GFA's own group order, a subset-list
// order, or an explicit --order file) rather than the closed-form
// expectation over all permutations that GrowthEngine computes: a
// cumulative pass where g(m) counts items meeting the threshold among
// exactly the first m groups of that order.
type OrderedGrowth struct {
	Config parallel.PoolConfig
}

// NewOrderedGrowth returns an engine with the teacher's default pool sizing.
func NewOrderedGrowth() *OrderedGrowth {
	return &OrderedGrowth{Config: parallel.DefaultPoolConfig()}
}

// GroupRanks builds, for every item id, the sorted list of ranks (0-based
// position in `order`) of the groups that contain it, skipping items
// excluded by `exclude`. Grounded on the same disjoint-shard-ownership
// property abacus.AbacusBuilder.Build exploits: items sharded by
// `id % ShardCount` never overlap across shards, so each shard's ranks
// can be computed independently and concatenated without merging.
func GroupRanks(ctx context.Context, table *abacus.ItemTable, pathGroups []gfa.GroupIndex, order []gfa.GroupIndex, exclude *abacus.ActiveTable, numItems int) [][]int {
	rank := make(map[gfa.GroupIndex]int, len(order))
	for i, g := range order {
		rank[g] = i
	}

	shards := make([]int, abacus.ShardCount)
	for s := range shards {
		shards[s] = s
	}

	proc := parallel.NewChunkProcessor[int, map[uint32][]int](parallel.DefaultPoolConfig())
	partials := proc.ProcessChunks(ctx, shards,
		func(ctx context.Context, chunk []int, workerID int) map[uint32][]int {
			local := make(map[uint32][]int)
			for _, s := range chunk {
				items, prefsum := table.Occurrences(s)
				if len(items) == 0 {
					continue
				}
				numPaths := len(prefsum) - 1
				seen := make(map[uint32]map[int]struct{})
				for p := 0; p < numPaths; p++ {
					start, end := prefsum[p], prefsum[p+1]
					if start == end {
						continue
					}
					g := pathGroups[p]
					r, ok := rank[g]
					if !ok {
						continue
					}
					for _, item := range items[start:end] {
						if exclude != nil && exclude.IsActive(item) {
							continue
						}
						ranks, ok := seen[item]
						if !ok {
							ranks = make(map[int]struct{})
							seen[item] = ranks
						}
						ranks[r] = struct{}{}
					}
				}
				for item, ranks := range seen {
					list := make([]int, 0, len(ranks))
					for r := range ranks {
						list = append(list, r)
					}
					sort.Ints(list)
					local[item] = list
				}
			}
			return local
		},
		func(results []map[uint32][]int) map[uint32][]int {
			merged := make(map[uint32][]int)
			for _, r := range results {
				for k, v := range r {
					merged[k] = v
				}
			}
			return merged
		})

	out := make([][]int, numItems)
	for item, ranks := range partials {
		if int(item) < numItems {
			out[item] = ranks
		}
	}
	return out
}

// Calc computes one ordered-growth curve for a threshold, given the
// per-item rank lists produced by GroupRanks.
func (o *OrderedGrowth) Calc(ctx context.Context, ranksByItem [][]int, numGroups int, t Threshold) Curve {
	values := make([]float64, numGroups)
	ms := make([]int, numGroups)
	for i := range ms {
		ms[i] = i + 1
	}

	proc := parallel.NewChunkProcessor[int, []float64](o.Config)
	partials := proc.ProcessChunks(ctx, ms,
		func(ctx context.Context, chunk []int, workerID int) []float64 {
			out := make([]float64, len(chunk))
			for i, m := range chunk {
				threshold := t.At(m)
				if threshold < 1 {
					threshold = 1
				}
				var count uint64
				for _, ranks := range ranksByItem {
					if ranks == nil {
						continue
					}
					n := sort.SearchInts(ranks, m) // number of ranks < m
					if n >= threshold {
						count++
					}
				}
				out[i] = float64(count)
			}
			return out
		},
		func(chunks [][]float64) []float64 {
			flat := make([]float64, 0, numGroups)
			for _, c := range chunks {
				flat = append(flat, c...)
			}
			return flat
		})
	copy(values, partials)

	return Curve{Threshold: t, Values: values}
}

// CalcAll computes one curve per threshold.
func (o *OrderedGrowth) CalcAll(ctx context.Context, ranksByItem [][]int, numGroups int, thresholds []Threshold) []Curve {
	return parallel.MapReduce(ctx, thresholds, o.Config,
		func(ctx context.Context, t Threshold) Curve {
			return o.Calc(ctx, ranksByItem, numGroups, t)
		},
		func(curves []Curve) []Curve { return curves })
}
