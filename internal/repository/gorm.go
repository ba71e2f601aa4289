package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/panacus-go/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository.
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// GetPendingJobs retrieves jobs that are queued for analysis.
func (r *GormJobRepository) GetPendingJobs(ctx context.Context, limit int) ([]*model.AnalysisJob, error) {
	var records []JobRecord

	err := r.db.WithContext(ctx).
		Where("status = ?", model.JobStatusPending).
		Order("priority DESC, submitted_at ASC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to query pending jobs: %w", err)
	}

	jobs := make([]*model.AnalysisJob, len(records))
	for i, rec := range records {
		jobs[i] = rec.ToModel()
	}

	return jobs, nil
}

// GetJobByID retrieves a job by its ID.
func (r *GormJobRepository) GetJobByID(ctx context.Context, id string) (*model.AnalysisJob, error) {
	var rec JobRecord

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return rec.ToModel(), nil
}

// UpdateJobStatus updates the status of a job.
func (r *GormJobRepository) UpdateJobStatus(ctx context.Context, id string, status model.JobStatus) error {
	result := r.db.WithContext(ctx).
		Model(&JobRecord{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found: %s", id)
	}

	return nil
}

// UpdateJobStatusWithInfo updates the status with additional info.
func (r *GormJobRepository) UpdateJobStatusWithInfo(ctx context.Context, id string, status model.JobStatus, info string) error {
	result := r.db.WithContext(ctx).
		Model(&JobRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"status_info": info,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found: %s", id)
	}

	return nil
}

// LockJobForAnalysis attempts to lock a job for analysis using FOR UPDATE.
func (r *GormJobRepository) LockJobForAnalysis(ctx context.Context, id string) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec JobRecord

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", id, model.JobStatusPending).
			First(&rec).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return err
		}

		return tx.Model(&JobRecord{}).
			Where("id = ?", id).
			Update("status", model.JobStatusRunning).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock job: %w", err)
	}

	return true, nil
}

// GormCacheRepository implements CacheRepository using GORM.
type GormCacheRepository struct {
	db *gorm.DB
}

// NewGormCacheRepository creates a new GormCacheRepository.
func NewGormCacheRepository(db *gorm.DB) *GormCacheRepository {
	return &GormCacheRepository{db: db}
}

// Get retrieves a cached result by key.
func (r *GormCacheRepository) Get(ctx context.Context, key string) (*model.AnalysisResult, bool, error) {
	var rec CacheEntry

	err := r.db.WithContext(ctx).Where("cache_key = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	result, err := rec.ToModel()
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode cached result: %w", err)
	}

	return result, true, nil
}

// Put stores a result under key, replacing any existing entry.
func (r *GormCacheRepository) Put(ctx context.Context, key string, result *model.AnalysisResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	rec := &CacheEntry{
		Key:        key,
		Digest:     result.Digest,
		ResultJSON: resultJSON,
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"digest", "result", "created_at"}),
		}).
		Create(rec).Error

	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	return nil
}
