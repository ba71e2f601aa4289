// Package analyzer dispatches an AnalysisJob to the mode implementation
// (hist / growth / histgrowth / ordered-histgrowth) that computes its
// result over internal/scan, internal/abacus, internal/histogram and
// internal/growth.
package analyzer

import (
	"context"

	"github.com/panacus-go/pkg/model"
)

// Analyzer computes an AnalysisResult for one AnalysisJob under a fixed
// mode, mirroring the teacher's one-Analyzer-per-profiling-mode shape.
type Analyzer interface {
	Analyze(ctx context.Context, job *model.AnalysisJob) (*model.AnalysisResult, error)
	Name() string
}
