package analyzer

import (
	"context"
	"math"
	"testing"

	"github.com/panacus-go/internal/testutil"
	"github.com/panacus-go/pkg/model"
)

func TestGrowthAnalyzer_ScenarioB(t *testing.T) {
	path := testutil.TempFileWithName(t, "b.gfa", scenarioB)
	job := model.NewAnalysisJob("job-b-growth", path, "growth")

	res, err := NewGrowthAnalyzer().Analyze(context.Background(), job)
	testutil.AssertNoError(t, err)
	testutil.AssertLen(t, res.Growth, 1)

	values := res.Growth[0].Values
	testutil.AssertLen(t, values, 2)
	if math.Abs(values[0]-1.5) > 1e-9 {
		t.Errorf("g(1) = %v, want 1.5", values[0])
	}
	if math.Abs(values[1]-2.0) > 1e-9 {
		t.Errorf("g(2) = %v, want 2.0", values[1])
	}
}

func TestHistgrowthAnalyzer_ScenarioB(t *testing.T) {
	path := testutil.TempFileWithName(t, "b.gfa", scenarioB)
	job := model.NewAnalysisJob("job-b-histgrowth", path, "histgrowth")

	res, err := NewHistgrowthAnalyzer().Analyze(context.Background(), job)
	testutil.AssertNoError(t, err)
	testutil.AssertLen(t, res.Histograms, 1)
	testutil.AssertLen(t, res.Growth, 1)
}

func TestOrderedGrowthAnalyzer_ScenarioB(t *testing.T) {
	path := testutil.TempFileWithName(t, "b.gfa", scenarioB)
	job := model.NewAnalysisJob("job-b-ordered", path, "ordered-histgrowth")

	res, err := NewOrderedGrowthAnalyzer().Analyze(context.Background(), job)
	testutil.AssertNoError(t, err)
	testutil.AssertLen(t, res.OrderedGrowth, 1)
	testutil.AssertEqual(t, 2, res.NumGroups)

	values := res.OrderedGrowth[0].Values
	testutil.AssertLen(t, values, 2)
	if values[1] != 2 {
		t.Errorf("g(2) = %v, want 2 (both items present by the end of the order)", values[1])
	}
}
