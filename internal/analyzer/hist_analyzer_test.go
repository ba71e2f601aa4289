package analyzer

import (
	"context"
	"testing"

	"github.com/panacus-go/internal/testutil"
	"github.com/panacus-go/pkg/model"
)

// scenarioA is spec.md §8 scenario A: two-node linear graph, one path.
const scenarioA = "S\t1\tAAAAA\nS\t2\tCCC\nL\t1\t+\t2\t+\t*\nP\tp1\t1+,2+\t*\n"

// scenarioB is spec.md §8 scenario B: a duplicated node across two
// identity-grouped paths.
const scenarioB = "S\t1\tAAAAA\nS\t2\tCCC\nL\t1\t+\t2\t+\t*\nP\tp1\t1+,2+\t*\nP\tp2\t1+\t*\n"

func TestHistAnalyzer_ScenarioA_Node(t *testing.T) {
	path := testutil.TempFileWithName(t, "a.gfa", scenarioA)
	job := model.NewAnalysisJob("job-a", path, "hist")

	res, err := NewHistAnalyzer().Analyze(context.Background(), job)
	testutil.AssertNoError(t, err)
	testutil.AssertLen(t, res.Histograms, 1)

	h := res.Histograms[0]
	testutil.AssertEqual(t, "node", h.Count)
	testutil.AssertEqual(t, []uint64{0, 2}, h.Histogram.Coverage)
}

func TestHistAnalyzer_ScenarioA_Bp(t *testing.T) {
	path := testutil.TempFileWithName(t, "a.gfa", scenarioA)
	job := model.NewAnalysisJob("job-a-bp", path, "hist")
	job.Count = "bp"

	res, err := NewHistAnalyzer().Analyze(context.Background(), job)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, uint64(8), res.Histograms[0].Histogram.Total())
}

func TestHistAnalyzer_ScenarioB_Node(t *testing.T) {
	path := testutil.TempFileWithName(t, "b.gfa", scenarioB)
	job := model.NewAnalysisJob("job-b", path, "hist")

	res, err := NewHistAnalyzer().Analyze(context.Background(), job)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, 2, res.NumGroups)
	testutil.AssertEqual(t, []uint64{0, 1, 1}, res.Histograms[0].Histogram.Coverage)
}

func TestHistAnalyzer_ScenarioE_Edge(t *testing.T) {
	gfaText := "S\t1\tAAAAA\nS\t2\tCCC\nS\t3\tGG\nL\t1\t+\t2\t+\t*\nL\t2\t+\t3\t+\t*\nP\tp1\t1+,2+,3+\t*\n"
	path := testutil.TempFileWithName(t, "e.gfa", gfaText)
	job := model.NewAnalysisJob("job-e", path, "hist")
	job.Count = "edge"

	res, err := NewHistAnalyzer().Analyze(context.Background(), job)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, []uint64{0, 2}, res.Histograms[0].Histogram.Coverage)
}
