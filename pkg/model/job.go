// Package model defines the data carriers shared by the analyzer, cache
// repository, scheduler and storage layers.
package model

import "time"

// AnalysisJob names one GFA coverage/growth computation: the input graph,
// the mode and countable to compute, the coverage/quorum thresholds to
// evaluate, how paths fold into groups, and the subset/exclude/order
// files that narrow or reorder the computation. It carries no coverage
// or growth semantics of its own; internal/analyzer interprets it.
type AnalysisJob struct {
	ID          string    `json:"id" gorm:"column:id;primaryKey"`
	GFAPath     string    `json:"gfa_path" gorm:"column:gfa_path"` // local path or object-storage key
	Mode        string    `json:"mode" gorm:"column:mode"`         // hist, growth, histgrowth, ordered-histgrowth
	Count       string    `json:"count" gorm:"column:count"`       // node, edge, bp, all
	Coverage    string    `json:"coverage" gorm:"column:coverage"` // comma-separated --coverage spec
	Quorum      string    `json:"quorum" gorm:"column:quorum"`     // comma-separated --quorum spec
	GroupBy     string    `json:"group_by" gorm:"column:group_by"` // identity, haplotype, sample, file
	GroupFile   string    `json:"group_file,omitempty" gorm:"column:group_file"`
	Subset      string    `json:"subset,omitempty" gorm:"column:subset"`
	Exclude     string    `json:"exclude,omitempty" gorm:"column:exclude"`
	Order       string    `json:"order,omitempty" gorm:"column:order_file"`
	Priority    int       `json:"priority" gorm:"column:priority"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"column:submitted_at;autoCreateTime"`
}

// NewAnalysisJob returns a job with the teacher's coverage/quorum
// defaults (whole graph, identity grouping, coverage>=1).
func NewAnalysisJob(id, gfaPath, mode string) *AnalysisJob {
	return &AnalysisJob{
		ID:          id,
		GFAPath:     gfaPath,
		Mode:        mode,
		Count:       "node",
		Coverage:    "1",
		Quorum:      "0",
		GroupBy:     "identity",
		SubmittedAt: time.Now(),
	}
}

// IsHighPriority reports whether the job should jump the scheduler's
// default FIFO ordering.
func (j *AnalysisJob) IsHighPriority() bool {
	return j.Priority > 0
}

// JobStatus tracks an AnalysisJob through the worker queue.
type JobStatus int

const (
	JobStatusPending JobStatus = iota
	JobStatusRunning
	JobStatusCompleted
	JobStatusFailed
)

// String renders the status the way log lines and the job table expect it.
func (s JobStatus) String() string {
	switch s {
	case JobStatusPending:
		return "pending"
	case JobStatusRunning:
		return "running"
	case JobStatusCompleted:
		return "completed"
	case JobStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
