package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	tmock "github.com/stretchr/testify/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panacus-go/internal/analyzer"
	"github.com/panacus-go/internal/mock"
	"github.com/panacus-go/internal/repository"
	"github.com/panacus-go/internal/storage"
	"github.com/panacus-go/pkg/config"
	"github.com/panacus-go/pkg/model"
	"github.com/panacus-go/pkg/utils"
)

// countingAnalyzerFactory stands in for internal/scan.Scanner in the
// cache-idempotence test: each CreateAnalyzerForJob/Analyze round trip
// counts as one scan, so the test can assert a warm cache skips it.
type countingAnalyzerFactory struct {
	scans  int64
	result *model.AnalysisResult
}

func (f *countingAnalyzerFactory) CreateAnalyzerForJob(job *model.AnalysisJob) (analyzer.Analyzer, error) {
	return &countingAnalyzer{parent: f}, nil
}

type countingAnalyzer struct {
	parent *countingAnalyzerFactory
}

func (a *countingAnalyzer) Analyze(ctx context.Context, job *model.AnalysisJob) (*model.AnalysisResult, error) {
	atomic.AddInt64(&a.parent.scans, 1)
	return a.parent.result, nil
}

func (a *countingAnalyzer) Name() string { return "counting" }

// inMemoryCacheRepository is a minimal repository.CacheRepository stand-in
// for tests that need real Get/Put persistence semantics without a gorm
// backing store.
type inMemoryCacheRepository struct {
	entries map[string]*model.AnalysisResult
	gets    int64
	puts    int64
}

func newInMemoryCacheRepository() *inMemoryCacheRepository {
	return &inMemoryCacheRepository{entries: make(map[string]*model.AnalysisResult)}
}

func (c *inMemoryCacheRepository) Get(ctx context.Context, key string) (*model.AnalysisResult, bool, error) {
	atomic.AddInt64(&c.gets, 1)
	r, ok := c.entries[key]
	return r, ok, nil
}

func (c *inMemoryCacheRepository) Put(ctx context.Context, key string, result *model.AnalysisResult) error {
	atomic.AddInt64(&c.puts, 1)
	c.entries[key] = result
	return nil
}

func TestDefaultJobProcessor_CacheIdempotence(t *testing.T) {
	dataDir := t.TempDir()
	gfaPath := filepath.Join(dataDir, "graph.gfa")
	content := "H\tVN:Z:1.0\nS\t1\tACGT\nS\t2\tTTTT\nL\t1\t+\t2\t+\t0M\nP\tA\t1+,2+\t*\n"
	require.NoError(t, os.WriteFile(gfaPath, []byte(content), 0644))

	store, err := storage.NewLocalStorage(filepath.Join(dataDir, "objects"))
	require.NoError(t, err)
	require.NoError(t, store.UploadFile(context.Background(), "graph.gfa", gfaPath))

	jobRepo := new(mock.MockJobRepository)
	jobRepo.On("UpdateJobStatus", tmock.Anything, tmock.Anything, tmock.Anything).Return(nil)

	cache := newInMemoryCacheRepository()
	factory := &countingAnalyzerFactory{result: &model.AnalysisResult{JobID: "job-1", Mode: "hist"}}

	p := &DefaultJobProcessor{
		config:          &config.Config{Analysis: config.AnalysisConfig{DataDir: dataDir, CacheEnabled: true}},
		storage:         store,
		repos:           &repository.Repositories{Job: jobRepo, Cache: cache},
		analyzerFactory: factory,
		logger:          utils.NewDefaultLogger(utils.LevelError, nil),
	}

	job := &model.AnalysisJob{ID: "job-1", GFAPath: "graph.gfa", Mode: "hist", Count: "node", Coverage: "1", Quorum: "0", GroupBy: "identity"}

	require.NoError(t, p.Process(context.Background(), job))
	require.NoError(t, p.Process(context.Background(), job))

	assert.Equal(t, int64(1), atomic.LoadInt64(&factory.scans), "second run against a warm cache must not re-invoke the analyzer/scan")
	assert.Equal(t, int64(1), cache.puts)
	assert.True(t, cache.gets >= 2)
}

func TestDefaultJobProcessor_CacheDisabled(t *testing.T) {
	dataDir := t.TempDir()
	gfaPath := filepath.Join(dataDir, "graph.gfa")
	content := "H\tVN:Z:1.0\nS\t1\tACGT\nP\tA\t1+\t*\n"
	require.NoError(t, os.WriteFile(gfaPath, []byte(content), 0644))

	store, err := storage.NewLocalStorage(filepath.Join(dataDir, "objects"))
	require.NoError(t, err)
	require.NoError(t, store.UploadFile(context.Background(), "graph.gfa", gfaPath))

	jobRepo := new(mock.MockJobRepository)
	jobRepo.On("UpdateJobStatus", tmock.Anything, tmock.Anything, tmock.Anything).Return(nil)

	cache := newInMemoryCacheRepository()
	factory := &countingAnalyzerFactory{result: &model.AnalysisResult{JobID: "job-2", Mode: "hist"}}

	p := &DefaultJobProcessor{
		config:          &config.Config{Analysis: config.AnalysisConfig{DataDir: dataDir, CacheEnabled: false}},
		storage:         store,
		repos:           &repository.Repositories{Job: jobRepo, Cache: cache},
		analyzerFactory: factory,
		logger:          utils.NewDefaultLogger(utils.LevelError, nil),
	}

	job := &model.AnalysisJob{ID: "job-2", GFAPath: "graph.gfa", Mode: "hist", Count: "node"}

	require.NoError(t, p.Process(context.Background(), job))
	require.NoError(t, p.Process(context.Background(), job))

	assert.Equal(t, int64(2), atomic.LoadInt64(&factory.scans), "disabling the cache must re-run the analyzer every time")
	assert.Equal(t, int64(0), cache.puts)
}
