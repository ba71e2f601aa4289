package scan

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/panacus-go/internal/abacus"
	"github.com/panacus-go/internal/gfa"
	"github.com/panacus-go/internal/histogram"
	"github.com/panacus-go/internal/mask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opener(gfaText string) Opener {
	return func() (io.Reader, error) {
		return bytes.NewReader([]byte(gfaText)), nil
	}
}

func buildHist(t *testing.T, res *Result, count gfa.CountType) *histogram.Histogram {
	t.Helper()
	var items *abacus.ItemTable
	var exclude *abacus.ActiveTable
	var weights []uint64
	var numItems int
	switch count {
	case gfa.CountEdge:
		items = res.EdgeItems
		exclude = res.EdgeExclude
		numItems = res.Storage.EdgeCount()
	default:
		items = res.NodeItems
		exclude = res.NodeExclude
		numItems = res.Storage.NodeCount() + 1
		if count == gfa.CountBp {
			weights = res.BpWeights()
		}
	}
	builder := abacus.NewAbacusBuilder(res.PathGroups, res.NumGroups, exclude)
	cov := builder.Build(context.Background(), items, numItems)
	return histogram.Build(count, cov, res.NumGroups, weights)
}

// Scenario A: two-node linear graph, one path.
func TestScan_LinearGraphOnePath(t *testing.T) {
	gfaText := "S\t1\tAAAAA\nS\t2\tCCC\nP\tp1\t1+,2+\t*\n"

	s := NewScanner(mask.NewGraphMask(), gfa.CountAll)
	res, err := s.Scan(context.Background(), opener(gfaText))
	require.NoError(t, err)
	require.Equal(t, 1, res.NumGroups)

	hNode := buildHist(t, res, gfa.CountNode)
	assert.Equal(t, uint64(2), hNode.Coverage[1])

	hBp := buildHist(t, res, gfa.CountBp)
	assert.Equal(t, uint64(8), hBp.Coverage[1])
}

// Scenario B: duplicated node across two identity-grouped paths.
func TestScan_DuplicatedNodeTwoPaths(t *testing.T) {
	gfaText := "S\t1\tAAAAA\nS\t2\tCCC\nP\tp1\t1+,2+\t*\nP\tp2\t1+\t*\n"

	s := NewScanner(mask.NewGraphMask(), gfa.CountNode)
	res, err := s.Scan(context.Background(), opener(gfaText))
	require.NoError(t, err)
	require.Equal(t, 2, res.NumGroups)

	builder := abacus.NewAbacusBuilder(res.PathGroups, res.NumGroups, res.NodeExclude)
	cov := builder.Build(context.Background(), res.NodeItems, res.Storage.NodeCount()+1)
	assert.EqualValues(t, 2, cov[1]) // S1 is in both groups
	assert.EqualValues(t, 1, cov[2]) // S2 only in p1's group

	h := histogram.Build(gfa.CountNode, cov, res.NumGroups, nil)
	assert.Equal(t, uint64(1), h.Coverage[1])
	assert.Equal(t, uint64(1), h.Coverage[2])
}

// Scenario C: include mask covering the middle of a node.
func TestScan_PartialIncludeMask(t *testing.T) {
	gfaText := "S\t1\tAAAAAAAAAA\nP\tp1\t1+\t*\n"
	pc, err := mask.ParsePathList(bytes.NewReader([]byte("p1\t3\t7\n")))
	require.NoError(t, err)

	s := NewScanner(mask.NewGraphMask().WithInclude(pc), gfa.CountAll)
	res, err := s.Scan(context.Background(), opener(gfaText))
	require.NoError(t, err)

	hNode := buildHist(t, res, gfa.CountNode)
	assert.Equal(t, uint64(1), hNode.Coverage[1])

	hBp := buildHist(t, res, gfa.CountBp)
	assert.Equal(t, uint64(4), hBp.Coverage[1])
}

// Scenario D: exclude list flags a node globally once any path excludes it.
func TestScan_ExcludeList(t *testing.T) {
	gfaText := "S\t1\tAAAAA\nS\t2\tCCCCC\nP\tp1\t1+,2+\t*\nP\tp2\t1+,2+\t*\n"
	pc, err := mask.ParsePathList(bytes.NewReader([]byte("p2\t0\t5\n")))
	require.NoError(t, err)

	s := NewScanner(mask.NewGraphMask().WithExclude(pc), gfa.CountNode)
	res, err := s.Scan(context.Background(), opener(gfaText))
	require.NoError(t, err)
	require.Equal(t, 2, res.NumGroups)

	builder := abacus.NewAbacusBuilder(res.PathGroups, res.NumGroups, res.NodeExclude)
	cov := builder.Build(context.Background(), res.NodeItems, res.Storage.NodeCount()+1)
	assert.EqualValues(t, 0, cov[1]) // S1 excluded in every group that touches it
	assert.EqualValues(t, 2, cov[2]) // S2 untouched by the exclude range

	h := histogram.Build(gfa.CountNode, cov, res.NumGroups, nil)
	assert.Equal(t, uint64(1), h.Coverage[2])
}

// Scenario E: edge counting across a three-node walk.
func TestScan_EdgeCountAcrossWalk(t *testing.T) {
	gfaText := "S\t1\tAA\nS\t2\tAA\nS\t3\tAA\n" +
		"L\t1\t+\t2\t+\t0M\nL\t2\t+\t3\t+\t0M\n" +
		"P\tp1\t1+,2+,3+\t*\n"

	s := NewScanner(mask.NewGraphMask(), gfa.CountEdge)
	res, err := s.Scan(context.Background(), opener(gfaText))
	require.NoError(t, err)
	require.Equal(t, 2, res.Storage.EdgeCount())

	h := buildHist(t, res, gfa.CountEdge)
	assert.Equal(t, uint64(2), h.Coverage[1])
}

// A path whose span intersects neither mask is skipped without error,
// and does not disturb the prefix-sum bookkeeping of paths around it.
func TestScan_SkippedPathPreservesPrefixSums(t *testing.T) {
	gfaText := "S\t1\tAAAAA\nP\tp1\t1+\t*\nP\tp2\t1+\t*\nP\tp3\t1+\t*\n"
	pc, err := mask.ParsePathList(bytes.NewReader([]byte("p1\np3\n")))
	require.NoError(t, err)

	s := NewScanner(mask.NewGraphMask().WithInclude(pc), gfa.CountNode)
	res, err := s.Scan(context.Background(), opener(gfaText))
	require.NoError(t, err)
	require.Equal(t, 3, res.NumGroups)

	builder := abacus.NewAbacusBuilder(res.PathGroups, res.NumGroups, res.NodeExclude)
	cov := builder.Build(context.Background(), res.NodeItems, res.Storage.NodeCount()+1)
	assert.EqualValues(t, 2, cov[1]) // only p1 and p3 touched S1
}

// A walk (W line) intersecting an exclude mask that fully covers its
// span takes the fully-contained fast path and is excluded wholesale.
func TestScan_WalkFullyExcludedFastPath(t *testing.T) {
	gfaText := "S\t1\tAAAAA\nS\t2\tCCCCC\n" +
		"W\tsampleA\t0\tchr1\t0\t10\t>1>2\n"
	pc, err := mask.ParsePathList(bytes.NewReader([]byte("sampleA#0#chr1\t0\t10\n")))
	require.NoError(t, err)

	s := NewScanner(mask.NewGraphMask().WithExclude(pc), gfa.CountNode)
	res, err := s.Scan(context.Background(), opener(gfaText))
	require.NoError(t, err)

	builder := abacus.NewAbacusBuilder(res.PathGroups, res.NumGroups, res.NodeExclude)
	cov := builder.Build(context.Background(), res.NodeItems, res.Storage.NodeCount()+1)
	assert.EqualValues(t, 0, cov[1])
	assert.EqualValues(t, 0, cov[2])
	assert.Equal(t, 2, res.NodeExclude.Count())
}
