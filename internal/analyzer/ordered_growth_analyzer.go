package analyzer

import (
	"context"
	"time"

	"github.com/panacus-go/internal/gfa"
	"github.com/panacus-go/internal/growth"
	appErrors "github.com/panacus-go/pkg/errors"
	"github.com/panacus-go/pkg/model"
	"github.com/panacus-go/pkg/utils"
)

// OrderedGrowthAnalyzer computes the growth curve realized by a single,
// fixed permutation of groups rather than the closed-form expectation:
// the "ordered-histgrowth" subcommand mode.
type OrderedGrowthAnalyzer struct {
	Engine *growth.OrderedGrowth
}

// NewOrderedGrowthAnalyzer returns an ordered-growth-mode analyzer
// using the teacher's default worker-pool sizing.
func NewOrderedGrowthAnalyzer() *OrderedGrowthAnalyzer {
	return &OrderedGrowthAnalyzer{Engine: growth.NewOrderedGrowth()}
}

// Name identifies the analyzer for logging and factory dispatch.
func (a *OrderedGrowthAnalyzer) Name() string { return "ordered-histgrowth" }

// Analyze scans the graph, ranks each item's covering groups against
// the job's requested (or default) group order, and computes one
// ordered-growth curve per threshold.
func (a *OrderedGrowthAnalyzer) Analyze(ctx context.Context, job *model.AnalysisJob) (*model.AnalysisResult, error) {
	count, err := gfa.ParseCountType(job.Count)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeBadGFA, "parsing count type", err)
	}
	thresholds, err := growth.ParseThresholds(job.Coverage, job.Quorum)
	if err != nil {
		return nil, err
	}

	timer := utils.NewTimer("ordered-histgrowth")
	scanTimer := timer.Start("scan")
	loaded, err := scanJob(ctx, job, count)
	scanTimer.Stop()
	if err != nil {
		return nil, err
	}
	res := loaded.result

	order, err := resolveOrder(job, res)
	if err != nil {
		return nil, err
	}

	histTimer := timer.Start("histogram")
	h := buildHistogram(ctx, res, count)
	histTimer.Stop()

	table, exclude, numItems, _ := tableFor(res, count)

	rankTimer := timer.Start("rank")
	ranks := growth.GroupRanks(ctx, table, res.PathGroups, order, exclude, numItems)
	rankTimer.Stop()

	growthTimer := timer.Start("growth")
	curves := a.Engine.CalcAll(ctx, ranks, res.NumGroups, thresholds)
	growthTimer.Stop()

	return &model.AnalysisResult{
		JobID:         job.ID,
		Mode:          ModeOrderedGrowth.String(),
		Count:         job.Count,
		NumGroups:     res.NumGroups,
		GroupNames:    res.GroupNames,
		Histograms:    []model.CountedHistogram{countedHistogram(count, h)},
		OrderedGrowth: curveResults(curves),
		Digest:        loaded.digest,
		TimingMs:      timingMs(timer),
		ComputedAt:    time.Now(),
	}, nil
}
