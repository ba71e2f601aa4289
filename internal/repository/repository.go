// Package repository provides database abstraction for panacus-worker's
// job queue and analysis-result cache.
package repository

import (
	"context"

	"github.com/panacus-go/pkg/model"
)

// JobRepository defines the interface for job-queue operations backing
// internal/scheduler/source's database source.
type JobRepository interface {
	// GetPendingJobs retrieves jobs that are queued for analysis.
	GetPendingJobs(ctx context.Context, limit int) ([]*model.AnalysisJob, error)

	// GetJobByID retrieves a job by its ID.
	GetJobByID(ctx context.Context, id string) (*model.AnalysisJob, error)

	// UpdateJobStatus updates the status of a job.
	UpdateJobStatus(ctx context.Context, id string, status model.JobStatus) error

	// UpdateJobStatusWithInfo updates the status with additional info (e.g. an error message).
	UpdateJobStatusWithInfo(ctx context.Context, id string, status model.JobStatus, info string) error

	// LockJobForAnalysis attempts to lock a job for analysis (prevents concurrent processing).
	LockJobForAnalysis(ctx context.Context, id string) (bool, error)
}

// CacheRepository defines the interface for the analysis-run cache:
// results keyed by the digest of the GFA bytes plus the job's count
// type/coverage/quorum/grouping, so repeat invocations with identical
// parameters skip GraphStorage/GfaScanner entirely.
type CacheRepository interface {
	// Get retrieves a cached result by key. found is false on a cache miss.
	Get(ctx context.Context, key string) (result *model.AnalysisResult, found bool, err error)

	// Put stores a result under key, replacing any existing entry.
	Put(ctx context.Context, key string, result *model.AnalysisResult) error
}
