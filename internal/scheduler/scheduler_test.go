package scheduler

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panacus-go/internal/scheduler/source"
	"github.com/panacus-go/pkg/model"
	"github.com/panacus-go/pkg/utils"
)

// countingJobProcessor is a JobProcessor that counts how many jobs it
// has processed, for scheduler-level tests.
type countingJobProcessor struct {
	processed int32
	delay     time.Duration
}

func (p *countingJobProcessor) Process(ctx context.Context, job *model.AnalysisJob) error {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	atomic.AddInt32(&p.processed, 1)
	return nil
}

func (p *countingJobProcessor) GetProcessedCount() int32 {
	return atomic.LoadInt32(&p.processed)
}

func TestScheduler_New(t *testing.T) {
	processor := &countingJobProcessor{}
	logger := utils.NewDefaultLogger(utils.LevelDebug, io.Discard)
	aggregator := source.NewAggregator(nil, 10, logger)

	t.Run("WithDefaultConfig", func(t *testing.T) {
		s := New(nil, aggregator, processor, nil)
		require.NotNil(t, s)
		assert.Equal(t, 5, s.config.WorkerCount)
		assert.Equal(t, 2*time.Second, s.config.PollInterval)
	})

	t.Run("WithCustomConfig", func(t *testing.T) {
		cfg := &SchedulerConfig{
			PollInterval:  5 * time.Second,
			WorkerCount:   10,
			PrioritySlots: 3,
			TaskBatchSize: 20,
		}
		s := New(cfg, aggregator, processor, nil)
		require.NotNil(t, s)
		assert.Equal(t, 10, s.config.WorkerCount)
		assert.Equal(t, 5*time.Second, s.config.PollInterval)
	})
}

func TestScheduler_Stats(t *testing.T) {
	processor := &countingJobProcessor{}
	logger := utils.NewDefaultLogger(utils.LevelDebug, io.Discard)
	aggregator := source.NewAggregator(nil, 10, logger)

	cfg := &SchedulerConfig{WorkerCount: 5}
	s := New(cfg, aggregator, processor, nil)

	stats := s.Stats()
	// Before Start(), workerPool is empty, so ActiveWorkers = WorkerCount - 0 = WorkerCount
	assert.Equal(t, 5, stats.ActiveWorkers)
	assert.Equal(t, 5, stats.TotalWorkers)
	assert.False(t, stats.Running)
}

func TestScheduler_ShouldAcceptJob(t *testing.T) {
	processor := &countingJobProcessor{}
	logger := utils.NewDefaultLogger(utils.LevelDebug, io.Discard)
	aggregator := source.NewAggregator(nil, 10, logger)

	cfg := &SchedulerConfig{
		WorkerCount:   5,
		PrioritySlots: 2,
		PollInterval:  100 * time.Millisecond,
		TaskBatchSize: 5,
	}

	s := New(cfg, aggregator, processor, logger)

	// Need to initialize worker pool like Start() does
	for i := 0; i < cfg.WorkerCount; i++ {
		s.workerPool <- struct{}{}
	}

	t.Run("HighPriorityJob", func(t *testing.T) {
		job := &model.AnalysisJob{Priority: 1}
		assert.True(t, s.shouldAcceptJob(job))
	})

	t.Run("NormalPriorityJob", func(t *testing.T) {
		job := &model.AnalysisJob{Priority: 0}
		assert.True(t, s.shouldAcceptJob(job))
	})
}

// TestScheduler_Fairness asserts that once every non-reserved slot is
// busy, a normal-priority job is rejected while a high-priority job
// still gets through the reserved PrioritySlots - the mixed-load
// fairness guarantee the worker pool's sizing exists to provide.
func TestScheduler_Fairness(t *testing.T) {
	processor := &countingJobProcessor{}
	logger := utils.NewDefaultLogger(utils.LevelDebug, io.Discard)
	aggregator := source.NewAggregator(nil, 10, logger)

	cfg := &SchedulerConfig{
		WorkerCount:   5,
		PrioritySlots: 2,
		TaskBatchSize: 5,
	}
	s := New(cfg, aggregator, processor, logger)

	// Simulate 3 active workers: leave PrioritySlots (2) tokens in the pool,
	// so 5 total - 2 free = 3 active, which equals the 3 non-reserved
	// slots (WorkerCount - PrioritySlots).
	for i := 0; i < cfg.PrioritySlots; i++ {
		s.workerPool <- struct{}{}
	}

	normalJob := &model.AnalysisJob{ID: "normal", Priority: 0}
	highJob := &model.AnalysisJob{ID: "high", Priority: 1}

	assert.False(t, s.shouldAcceptJob(normalJob), "normal priority jobs must not eat into reserved slots")
	assert.True(t, s.shouldAcceptJob(highJob), "high priority jobs must still be accepted while any capacity remains")
}

func TestScheduler_StartStop(t *testing.T) {
	processor := &countingJobProcessor{}
	logger := utils.NewDefaultLogger(utils.LevelDebug, io.Discard)
	aggregator := source.NewAggregator(nil, 10, logger)

	cfg := &SchedulerConfig{
		PollInterval:  100 * time.Millisecond,
		WorkerCount:   2,
		PrioritySlots: 1,
		TaskBatchSize: 5,
	}

	s := New(cfg, aggregator, processor, logger)

	ctx, cancel := context.WithCancel(context.Background())

	err := s.Start(ctx)
	require.NoError(t, err)

	stats := s.Stats()
	assert.True(t, stats.Running)

	time.Sleep(200 * time.Millisecond)

	cancel()
	s.Stop()

	stats = s.Stats()
	assert.False(t, stats.Running)
}

func TestDefaultSchedulerConfig(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 5, cfg.WorkerCount)
	assert.Equal(t, 2, cfg.PrioritySlots)
	assert.Equal(t, 10, cfg.TaskBatchSize)
}

func TestScheduler_ProcessJob(t *testing.T) {
	processor := &countingJobProcessor{}
	logger := utils.NewDefaultLogger(utils.LevelDebug, io.Discard)
	aggregator := source.NewAggregator(nil, 10, logger)

	cfg := &SchedulerConfig{WorkerCount: 2, PrioritySlots: 1, TaskBatchSize: 5}
	s := New(cfg, aggregator, processor, logger)

	for i := 0; i < cfg.WorkerCount; i++ {
		s.workerPool <- struct{}{}
	}

	ctx := context.Background()
	job := &model.AnalysisJob{ID: "job-1", Mode: "hist"}

	// Acquire a slot as processLoop does; processJob releases it when done.
	<-s.workerPool
	s.wg.Add(1)
	s.processJob(ctx, job)

	assert.Equal(t, int32(1), processor.GetProcessedCount())
}
