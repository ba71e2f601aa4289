package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/panacus-go/internal/analyzer"
	"github.com/panacus-go/internal/formatter"
	"github.com/panacus-go/internal/repository"
	"github.com/panacus-go/internal/storage"
	"github.com/panacus-go/pkg/config"
	"github.com/panacus-go/pkg/model"
	"github.com/panacus-go/pkg/utils"
)

// AnalyzerFactory resolves the Analyzer a job should run through. This is
// the seam a cache-idempotence test substitutes a call-counting fake for,
// to assert a warm cache never re-invokes the scan.
type AnalyzerFactory interface {
	CreateAnalyzerForJob(job *model.AnalysisJob) (analyzer.Analyzer, error)
}

// DefaultJobProcessor implements JobProcessor by wiring a job through
// internal/analyzer, checking/populating internal/repository's result
// cache around the scan, and persisting the rendered output to
// internal/storage.
type DefaultJobProcessor struct {
	config          *config.Config
	storage         storage.Storage
	repos           *repository.Repositories
	analyzerFactory AnalyzerFactory
	formatter       *formatter.TSVFormatter
	logger          utils.Logger
}

// ProcessorConfig holds processor configuration.
type ProcessorConfig struct {
	Config  *config.Config
	Storage storage.Storage
	Repos   *repository.Repositories
	Logger  utils.Logger
}

// NewDefaultJobProcessor creates a new DefaultJobProcessor.
func NewDefaultJobProcessor(cfg *ProcessorConfig) *DefaultJobProcessor {
	if cfg.Logger == nil {
		cfg.Logger = utils.NewDefaultLogger(utils.LevelInfo, nil)
	}

	return &DefaultJobProcessor{
		config:          cfg.Config,
		storage:         cfg.Storage,
		repos:           cfg.Repos,
		analyzerFactory: analyzer.NewFactory(),
		formatter:       formatter.NewTSVFormatter(),
		logger:          cfg.Logger,
	}
}

// Process runs one AnalysisJob: it downloads the job's GFA input from
// storage, checks the result cache before scanning, runs the analyzer
// on a cache miss, stores the result, renders the TSV output and
// uploads it, then marks the job completed.
func (p *DefaultJobProcessor) Process(ctx context.Context, job *model.AnalysisJob) error {
	p.logger.Info("Starting analysis for job %s (mode=%s, count=%s)", job.ID, job.Mode, job.Count)

	if p.repos != nil {
		if err := p.repos.Job.UpdateJobStatus(ctx, job.ID, model.JobStatusRunning); err != nil {
			p.logger.Warn("Failed to mark job %s running: %v", job.ID, err)
		}
	}

	jobDir := p.config.GetTaskDir(job.ID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return p.fail(ctx, job, fmt.Errorf("creating job directory: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(jobDir); err != nil {
			p.logger.Warn("Failed to clean up job directory %s: %v", jobDir, err)
		}
	}()

	localJob := *job
	if p.storage != nil && job.GFAPath != "" {
		localPath := filepath.Join(jobDir, filepath.Base(job.GFAPath))
		if err := p.storage.DownloadFile(ctx, job.GFAPath, localPath); err != nil {
			return p.fail(ctx, job, fmt.Errorf("downloading gfa input: %w", err))
		}
		localJob.GFAPath = localPath
	}

	result, err := p.loadOrCompute(ctx, &localJob)
	if err != nil {
		return p.fail(ctx, job, err)
	}

	if err := p.uploadResult(ctx, job, result); err != nil {
		p.logger.Warn("Failed to upload result for job %s: %v", job.ID, err)
	}

	if p.repos != nil {
		if err := p.repos.Job.UpdateJobStatus(ctx, job.ID, model.JobStatusCompleted); err != nil {
			return fmt.Errorf("updating job status: %w", err)
		}
	}

	p.logger.Info("Job %s analysis completed successfully", job.ID)
	return nil
}

// loadOrCompute checks the cache for job's result before running the
// analyzer; a hit is returned without touching internal/scan.Scanner.
func (p *DefaultJobProcessor) loadOrCompute(ctx context.Context, job *model.AnalysisJob) (*model.AnalysisResult, error) {
	cacheKey := ""
	cacheEnabled := p.repos != nil && p.repos.Cache != nil && (p.config == nil || p.config.Analysis.CacheEnabled)

	if cacheEnabled {
		digest, err := analyzer.DigestGFA(job.GFAPath)
		if err != nil {
			return nil, fmt.Errorf("digesting gfa input: %w", err)
		}
		cacheKey, err = repository.CacheKey(job, digest)
		if err != nil {
			return nil, fmt.Errorf("building cache key: %w", err)
		}

		if cached, found, err := p.repos.Cache.Get(ctx, cacheKey); err != nil {
			p.logger.Warn("Cache lookup failed for job %s: %v", job.ID, err)
		} else if found {
			p.logger.Info("Cache hit for job %s", job.ID)
			return cached, nil
		}
	}

	a, err := p.analyzerFactory.CreateAnalyzerForJob(job)
	if err != nil {
		return nil, fmt.Errorf("creating analyzer: %w", err)
	}

	result, err := a.Analyze(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	if cacheEnabled {
		if err := p.repos.Cache.Put(ctx, cacheKey, result); err != nil {
			p.logger.Warn("Failed to cache result for job %s: %v", job.ID, err)
		}
	}

	return result, nil
}

// uploadResult renders result as TSV and uploads it alongside the job.
func (p *DefaultJobProcessor) uploadResult(ctx context.Context, job *model.AnalysisJob, result *model.AnalysisResult) error {
	if p.storage == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := p.formatter.Write(&buf, job, result); err != nil {
		return fmt.Errorf("rendering result: %w", err)
	}

	key := fmt.Sprintf("%s/result.tsv", job.ID)
	return p.storage.Upload(ctx, key, &buf)
}

// fail records a job failure and returns the wrapping error.
func (p *DefaultJobProcessor) fail(ctx context.Context, job *model.AnalysisJob, err error) error {
	if p.repos != nil {
		if uerr := p.repos.Job.UpdateJobStatusWithInfo(ctx, job.ID, model.JobStatusFailed, err.Error()); uerr != nil {
			p.logger.Error("Failed to record failure for job %s: %v", job.ID, uerr)
		}
	}
	return err
}
