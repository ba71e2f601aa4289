package mock

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/panacus-go/pkg/model"
)

// MockJobRepository is a mock implementation of repository.JobRepository.
type MockJobRepository struct {
	mock.Mock
}

// GetPendingJobs mocks the GetPendingJobs method.
func (m *MockJobRepository) GetPendingJobs(ctx context.Context, limit int) ([]*model.AnalysisJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AnalysisJob), args.Error(1)
}

// GetJobByID mocks the GetJobByID method.
func (m *MockJobRepository) GetJobByID(ctx context.Context, id string) (*model.AnalysisJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisJob), args.Error(1)
}

// UpdateJobStatus mocks the UpdateJobStatus method.
func (m *MockJobRepository) UpdateJobStatus(ctx context.Context, id string, status model.JobStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// UpdateJobStatusWithInfo mocks the UpdateJobStatusWithInfo method.
func (m *MockJobRepository) UpdateJobStatusWithInfo(ctx context.Context, id string, status model.JobStatus, info string) error {
	args := m.Called(ctx, id, status, info)
	return args.Error(0)
}

// LockJobForAnalysis mocks the LockJobForAnalysis method.
func (m *MockJobRepository) LockJobForAnalysis(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ExpectGetPendingJobs sets up an expectation for GetPendingJobs.
func (m *MockJobRepository) ExpectGetPendingJobs(limit int, jobs []*model.AnalysisJob, err error) *mock.Call {
	return m.On("GetPendingJobs", mock.Anything, limit).Return(jobs, err)
}

// ExpectUpdateJobStatus sets up an expectation for UpdateJobStatus.
func (m *MockJobRepository) ExpectUpdateJobStatus(id string, status model.JobStatus, err error) *mock.Call {
	return m.On("UpdateJobStatus", mock.Anything, id, status).Return(err)
}

// ExpectLockJobForAnalysis sets up an expectation for LockJobForAnalysis.
func (m *MockJobRepository) ExpectLockJobForAnalysis(id string, success bool, err error) *mock.Call {
	return m.On("LockJobForAnalysis", mock.Anything, id).Return(success, err)
}

// MockCacheRepository is a mock implementation of repository.CacheRepository.
type MockCacheRepository struct {
	mock.Mock
}

// Get mocks the Get method.
func (m *MockCacheRepository) Get(ctx context.Context, key string) (*model.AnalysisResult, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.AnalysisResult), args.Bool(1), args.Error(2)
}

// Put mocks the Put method.
func (m *MockCacheRepository) Put(ctx context.Context, key string, result *model.AnalysisResult) error {
	args := m.Called(ctx, key, result)
	return args.Error(0)
}

// ExpectGet sets up an expectation for Get.
func (m *MockCacheRepository) ExpectGet(key string, result *model.AnalysisResult, found bool, err error) *mock.Call {
	return m.On("Get", mock.Anything, key).Return(result, found, err)
}

// ExpectPut sets up an expectation for Put.
func (m *MockCacheRepository) ExpectPut(err error) *mock.Call {
	return m.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(err)
}

// CountingCacheRepository wraps a real (or mock) CacheRepository and
// counts Get/Put calls, so a cache-idempotence test can assert that a
// second run against a warm cache never reaches the underlying store's
// Put path for the same key twice.
type CountingCacheRepository struct {
	inner   interface {
		Get(ctx context.Context, key string) (*model.AnalysisResult, bool, error)
		Put(ctx context.Context, key string, result *model.AnalysisResult) error
	}
	gets int64
	puts int64
}

// NewCountingCacheRepository wraps inner, counting its calls.
func NewCountingCacheRepository(inner interface {
	Get(ctx context.Context, key string) (*model.AnalysisResult, bool, error)
	Put(ctx context.Context, key string, result *model.AnalysisResult) error
}) *CountingCacheRepository {
	return &CountingCacheRepository{inner: inner}
}

// Get delegates to inner, counting the call.
func (c *CountingCacheRepository) Get(ctx context.Context, key string) (*model.AnalysisResult, bool, error) {
	atomic.AddInt64(&c.gets, 1)
	return c.inner.Get(ctx, key)
}

// Put delegates to inner, counting the call.
func (c *CountingCacheRepository) Put(ctx context.Context, key string, result *model.AnalysisResult) error {
	atomic.AddInt64(&c.puts, 1)
	return c.inner.Put(ctx, key, result)
}

// Gets returns the number of Get calls observed so far.
func (c *CountingCacheRepository) Gets() int64 { return atomic.LoadInt64(&c.gets) }

// Puts returns the number of Put calls observed so far.
func (c *CountingCacheRepository) Puts() int64 { return atomic.LoadInt64(&c.puts) }
