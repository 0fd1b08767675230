package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/hoccrawler/internal/config"
	"github.com/nao1215/hoccrawler/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor runs multiple independent jobs concurrently.
// It uses errgroup to manage goroutines and respect the concurrency limit.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline for each job.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of jobs running at once.
	concurrency int

	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent jobs.
// Non-positive values keep config.DefaultConcurrency.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// pipelineFactory is called once per job.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     config.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch runs jobs concurrently and returns their reports in input
// order. A job that fails still produces a report. The error is non-nil
// only when ctx is cancelled; reports for jobs that never started are nil.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, jobs []Job) ([]*model.CrawlReport, error) {
	results := make([]*model.CrawlReport, len(jobs))
	err := bp.ProcessBatchWithCallback(ctx, jobs, func(report *model.CrawlReport, index int) {
		results[index] = report
	})
	return results, err
}

// ProcessBatchWithCallback runs jobs and calls callback for each completed
// one with the index of the job in the input slice. The callback is called
// from the goroutine that ran the job, so it must be safe for concurrent use
// unless it only touches the element at index.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	jobs []Job,
	callback func(report *model.CrawlReport, index int),
) error {
	bp.logger.Info("starting batch",
		"total_jobs", len(jobs),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			bp.logger.Info("running job",
				"job", job.Name,
				"index", i+1,
				"total", len(jobs),
			)

			report := bp.pipelineFactory().Run(ctx, job)
			callback(report, i)

			bp.logger.Info("job completed",
				"job", job.Name,
				"outcome", report.Outcome.String(),
			)
			// Failures are recorded in the report and must not cancel the
			// other jobs.
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Info("batch complete",
		"total_jobs", len(jobs),
		"elapsed", time.Since(startTime),
	)
	return err
}
