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

// GrowthAnalyzer computes expected growth curves over a freshly built
// histogram: the "growth" subcommand mode. It does not persist the
// intermediate histogram in its result (HistgrowthAnalyzer does, for
// callers that want both in one response).
type GrowthAnalyzer struct {
	Engine *growth.GrowthEngine
}

// NewGrowthAnalyzer returns a growth-mode analyzer using the teacher's
// default worker-pool sizing.
func NewGrowthAnalyzer() *GrowthAnalyzer {
	return &GrowthAnalyzer{Engine: growth.NewGrowthEngine()}
}

// Name identifies the analyzer for logging and factory dispatch.
func (a *GrowthAnalyzer) Name() string { return "growth" }

// Analyze scans the graph, builds the countable's histogram, and
// computes one growth curve per (coverage, quorum) threshold the job
// requests.
func (a *GrowthAnalyzer) Analyze(ctx context.Context, job *model.AnalysisJob) (*model.AnalysisResult, error) {
	count, err := gfa.ParseCountType(job.Count)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeBadGFA, "parsing count type", err)
	}
	thresholds, err := growth.ParseThresholds(job.Coverage, job.Quorum)
	if err != nil {
		return nil, err
	}

	timer := utils.NewTimer("growth")
	scanTimer := timer.Start("scan")
	loaded, err := scanJob(ctx, job, count)
	scanTimer.Stop()
	if err != nil {
		return nil, err
	}
	res := loaded.result

	histTimer := timer.Start("histogram")
	h := buildHistogram(ctx, res, count)
	histTimer.Stop()

	growthTimer := timer.Start("growth")
	curves := a.Engine.CalcAllGrowths(ctx, h, thresholds)
	growthTimer.Stop()

	return &model.AnalysisResult{
		JobID:      job.ID,
		Mode:       ModeGrowth.String(),
		Count:      job.Count,
		NumGroups:  res.NumGroups,
		GroupNames: res.GroupNames,
		Growth:     curveResults(curves),
		Digest:     loaded.digest,
		TimingMs:   timingMs(timer),
		ComputedAt: time.Now(),
	}, nil
}
