package analyzer

import (
	appErrors "github.com/panacus-go/pkg/errors"
	"github.com/panacus-go/pkg/model"
)

// Factory creates the Analyzer implementing a requested Mode, the same
// dispatch shape the teacher's profiling-mode factory used.
type Factory struct{}

// NewFactory returns a ready-to-use analyzer factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateAnalyzerForMode returns the Analyzer wired for the given mode.
func (f *Factory) CreateAnalyzerForMode(mode Mode) (Analyzer, error) {
	switch mode {
	case ModeHist:
		return NewHistAnalyzer(), nil
	case ModeGrowth:
		return NewGrowthAnalyzer(), nil
	case ModeHistgrowth:
		return NewHistgrowthAnalyzer(), nil
	case ModeOrderedGrowth:
		return NewOrderedGrowthAnalyzer(), nil
	default:
		return nil, appErrors.New(appErrors.CodeBadGFA, "unsupported analyzer mode")
	}
}

// CreateAnalyzerForJob resolves a job's Mode string and returns its Analyzer.
func (f *Factory) CreateAnalyzerForJob(job *model.AnalysisJob) (Analyzer, error) {
	mode, err := ParseMode(job.Mode)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeBadGFA, "resolving job mode", err)
	}
	return f.CreateAnalyzerForMode(mode)
}
