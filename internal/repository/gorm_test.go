package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/panacus-go/pkg/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&JobRecord{},
		&CacheEntry{},
	)
	require.NoError(t, err)

	return db
}

func TestGormJobRepository_GetPendingJobs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		jobs, err := repo.GetPendingJobs(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("WithData", func(t *testing.T) {
		rec := JobRecordFromModel(model.NewAnalysisJob("job-1", "graph.gfa", "hist"))
		require.NoError(t, db.Create(rec).Error)

		jobs, err := repo.GetPendingJobs(ctx, 10)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "job-1", jobs[0].ID)
		assert.Equal(t, "hist", jobs[0].Mode)
	})
}

func TestGormJobRepository_GetJobByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		job, err := repo.GetJobByID(ctx, "nonexistent")
		assert.Error(t, err)
		assert.Nil(t, job)
		assert.Contains(t, err.Error(), "job not found")
	})

	t.Run("Success", func(t *testing.T) {
		rec := JobRecordFromModel(model.NewAnalysisJob("job-2", "graph.gfa", "growth"))
		require.NoError(t, db.Create(rec).Error)

		job, err := repo.GetJobByID(ctx, "job-2")
		require.NoError(t, err)
		assert.Equal(t, "job-2", job.ID)
		assert.Equal(t, "growth", job.Mode)
	})
}

func TestGormJobRepository_UpdateJobStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		err := repo.UpdateJobStatus(ctx, "nonexistent", model.JobStatusCompleted)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "job not found")
	})

	t.Run("Success", func(t *testing.T) {
		rec := JobRecordFromModel(model.NewAnalysisJob("job-3", "graph.gfa", "hist"))
		require.NoError(t, db.Create(rec).Error)

		err := repo.UpdateJobStatus(ctx, "job-3", model.JobStatusCompleted)
		require.NoError(t, err)

		var updated JobRecord
		require.NoError(t, db.First(&updated, "id = ?", "job-3").Error)
		assert.Equal(t, model.JobStatusCompleted, updated.Status)
	})
}

func TestGormJobRepository_UpdateJobStatusWithInfo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	rec := JobRecordFromModel(model.NewAnalysisJob("job-4", "graph.gfa", "hist"))
	require.NoError(t, db.Create(rec).Error)

	err := repo.UpdateJobStatusWithInfo(ctx, "job-4", model.JobStatusFailed, "parse error")
	require.NoError(t, err)

	var updated JobRecord
	require.NoError(t, db.First(&updated, "id = ?", "job-4").Error)
	assert.Equal(t, model.JobStatusFailed, updated.Status)
	assert.Equal(t, "parse error", updated.StatusInfo)
}

func TestGormJobRepository_LockJobForAnalysis(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		locked, err := repo.LockJobForAnalysis(ctx, "nonexistent")
		require.NoError(t, err)
		assert.False(t, locked)
	})

	t.Run("Success", func(t *testing.T) {
		rec := JobRecordFromModel(model.NewAnalysisJob("job-5", "graph.gfa", "hist"))
		require.NoError(t, db.Create(rec).Error)

		locked, err := repo.LockJobForAnalysis(ctx, "job-5")
		require.NoError(t, err)
		assert.True(t, locked)

		var updated JobRecord
		require.NoError(t, db.First(&updated, "id = ?", "job-5").Error)
		assert.Equal(t, model.JobStatusRunning, updated.Status)
	})

	t.Run("AlreadyRunning", func(t *testing.T) {
		rec := JobRecordFromModel(model.NewAnalysisJob("job-6", "graph.gfa", "hist"))
		rec.Status = model.JobStatusRunning
		require.NoError(t, db.Create(rec).Error)

		locked, err := repo.LockJobForAnalysis(ctx, "job-6")
		require.NoError(t, err)
		assert.False(t, locked)
	})
}

func TestGormCacheRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCacheRepository(db)
	ctx := context.Background()

	t.Run("Get_Miss", func(t *testing.T) {
		result, found, err := repo.Get(ctx, "cache-key-1")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, result)
	})

	t.Run("Put_ThenGet", func(t *testing.T) {
		result := &model.AnalysisResult{
			JobID:     "job-1",
			Mode:      "hist",
			Count:     "node",
			NumGroups: 2,
			Digest:    "deadbeef",
		}

		require.NoError(t, repo.Put(ctx, "cache-key-2", result))

		got, found, err := repo.Get(ctx, "cache-key-2")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "job-1", got.JobID)
		assert.Equal(t, "deadbeef", got.Digest)
	})

	t.Run("Put_Overwrites", func(t *testing.T) {
		first := &model.AnalysisResult{JobID: "job-2", Digest: "first"}
		second := &model.AnalysisResult{JobID: "job-2", Digest: "second"}

		require.NoError(t, repo.Put(ctx, "cache-key-3", first))
		require.NoError(t, repo.Put(ctx, "cache-key-3", second))

		got, found, err := repo.Get(ctx, "cache-key-3")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "second", got.Digest)
	})
}
