package analyzer

import (
	"fmt"
	"strings"
)

// Mode selects which pangenome statistic internal/analyzer computes for
// a job: a coverage histogram, an expected growth curve, both in one
// pass, or a single-permutation ordered growth curve.
type Mode int

const (
	ModeHist Mode = iota
	ModeGrowth
	ModeHistgrowth
	ModeOrderedGrowth
)

// String returns the panacus-cli subcommand name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeHist:
		return "hist"
	case ModeGrowth:
		return "growth"
	case ModeHistgrowth:
		return "histgrowth"
	case ModeOrderedGrowth:
		return "ordered-histgrowth"
	default:
		return "unknown"
	}
}

// ParseMode parses a panacus-cli subcommand name (or an AnalysisJob's
// stored Mode string) into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "hist":
		return ModeHist, nil
	case "growth":
		return ModeGrowth, nil
	case "histgrowth":
		return ModeHistgrowth, nil
	case "ordered-histgrowth", "orderedhistgrowth", "ordered_histgrowth":
		return ModeOrderedGrowth, nil
	default:
		return 0, fmt.Errorf("analyzer: unknown mode %q", s)
	}
}
