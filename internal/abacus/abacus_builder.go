package abacus

import (
	"context"

	"github.com/panacus-go/internal/gfa"
	"github.com/panacus-go/pkg/parallel"
)

// AbacusBuilder folds an ItemTable's per-path occurrences into a
// coverage vector: for every item id, the number of distinct groups
// that contain it, after excluded ids have been dropped entirely.
//
// Because item occurrences are sharded by `id % ShardCount`, every
// shard owns a disjoint slice of the id space — building the coverage
// vector shard-by-shard in parallel needs no cross-shard merge step,
// matching the per-worker-local-map-then-merge shape of
// pkg/parallel.ParallelAggregate without the merge actually having to
// reconcile overlapping keys.
type AbacusBuilder struct {
	Groups  []gfa.GroupIndex // path index -> group index
	NumGroups int
	Exclude *ActiveTable // nil if no exclusion active
	Config  parallel.PoolConfig
}

// NewAbacusBuilder returns a builder for the given path->group assignment.
func NewAbacusBuilder(groups []gfa.GroupIndex, numGroups int, exclude *ActiveTable) *AbacusBuilder {
	return &AbacusBuilder{
		Groups:    groups,
		NumGroups: numGroups,
		Exclude:   exclude,
		Config:    parallel.DefaultPoolConfig(),
	}
}

// Coverage is the resulting cov[item] -> number-of-groups vector, dense
// over item ids 0..maxID (index 0 unused for 1-based NodeId spaces).
type Coverage []uint32

// Build computes the coverage vector over item ids [0, numItems).
func (b *AbacusBuilder) Build(ctx context.Context, table *ItemTable, numItems int) Coverage {
	cov := make(Coverage, numItems)

	shards := make([]int, ShardCount)
	for s := range shards {
		shards[s] = s
	}

	proc := parallel.NewChunkProcessor[int, []partialCov](b.Config)
	partials := proc.ProcessChunks(ctx, shards,
		func(ctx context.Context, chunk []int, workerID int) []partialCov {
			var out []partialCov
			for _, s := range chunk {
				out = append(out, b.buildShard(table, s)...)
			}
			return out
		},
		func(results [][]partialCov) []partialCov {
			var all []partialCov
			for _, r := range results {
				all = append(all, r...)
			}
			return all
		})

	for _, p := range partials {
		cov[p.item] = p.groups
	}
	return cov
}

type partialCov struct {
	item   uint32
	groups uint32
}

// buildShard computes coverage counts for every item id that hashes
// into shard s, by walking each path's occurrence slice and recording
// which groups touched each item.
func (b *AbacusBuilder) buildShard(table *ItemTable, s int) []partialCov {
	items, prefsum := table.Occurrences(s)
	if len(items) == 0 {
		return nil
	}

	seen := make(map[uint32]map[gfa.GroupIndex]struct{})
	numPaths := len(prefsum) - 1
	for p := 0; p < numPaths; p++ {
		start, end := prefsum[p], prefsum[p+1]
		if start == end {
			continue
		}
		group := b.Groups[p]
		for _, item := range items[start:end] {
			if b.Exclude != nil && b.Exclude.IsActive(item) {
				continue
			}
			g, ok := seen[item]
			if !ok {
				g = make(map[gfa.GroupIndex]struct{})
				seen[item] = g
			}
			g[group] = struct{}{}
		}
	}

	out := make([]partialCov, 0, len(seen))
	for item, groups := range seen {
		out = append(out, partialCov{item: item, groups: uint32(len(groups))})
	}
	return out
}
