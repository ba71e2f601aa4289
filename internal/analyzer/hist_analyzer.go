package analyzer

import (
	"context"
	"time"

	"github.com/panacus-go/internal/gfa"
	appErrors "github.com/panacus-go/pkg/errors"
	"github.com/panacus-go/pkg/model"
	"github.com/panacus-go/pkg/utils"
)

// HistAnalyzer computes the coverage histogram for a job's requested
// countable(s), with no growth curves: the "hist" subcommand mode.
type HistAnalyzer struct{}

// NewHistAnalyzer returns a ready-to-use hist-mode analyzer.
func NewHistAnalyzer() *HistAnalyzer { return &HistAnalyzer{} }

// Name identifies the analyzer for logging and factory dispatch.
func (a *HistAnalyzer) Name() string { return "hist" }

// Analyze runs the scan and folds it into one histogram per countable
// the job's --count flag expands to (node/edge/bp, or all three).
func (a *HistAnalyzer) Analyze(ctx context.Context, job *model.AnalysisJob) (*model.AnalysisResult, error) {
	requested, err := gfa.ParseCountType(job.Count)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeBadGFA, "parsing count type", err)
	}

	timer := utils.NewTimer("hist")
	scanTimer := timer.Start("scan")
	loaded, err := scanJob(ctx, job, requested)
	scanTimer.Stop()
	if err != nil {
		return nil, err
	}
	res := loaded.result

	histTimer := timer.Start("histogram")
	counts := requested.Expand()
	histos := make([]model.CountedHistogram, 0, len(counts))
	for _, ct := range counts {
		histos = append(histos, countedHistogram(ct, buildHistogram(ctx, res, ct)))
	}
	histTimer.Stop()

	return &model.AnalysisResult{
		JobID:      job.ID,
		Mode:       ModeHist.String(),
		Count:      job.Count,
		NumGroups:  res.NumGroups,
		GroupNames: res.GroupNames,
		Histograms: histos,
		Digest:     loaded.digest,
		TimingMs:   timingMs(timer),
		ComputedAt: time.Now(),
	}, nil
}
