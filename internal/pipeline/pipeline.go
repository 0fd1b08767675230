package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nao1215/hoccrawler/crawler"
	"github.com/nao1215/hoccrawler/hocrange"
	"github.com/nao1215/hoccrawler/internal/config"
	"github.com/nao1215/hoccrawler/internal/model"
)

// Job is a named crawl job.
type Job struct {
	Name   string
	Config config.JobConfig
}

// Run carries the state of one job through the pipeline steps.
type Run struct {
	Job    Job
	Report *model.CrawlReport

	// Filled in by PrepareStep.
	Target    crawler.Target
	Range     *hocrange.Range
	Predicate crawler.Predicate

	// Filled in by CrawlStep.
	Result *crawler.Result
}

// Step is one stage of a job.
type Step interface {
	// Do executes the step. An error stops the pipeline and is recorded in
	// the report.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in order for a job.
type Pipeline struct {
	steps   []Step
	logger  *slog.Logger
	timeout time.Duration
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithTimeout bounds the run time of each job. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.timeout = d
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Default returns a pipeline with PrepareStep and CrawlStep.
func Default(opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(NewPrepareStep(p.logger), NewCrawlStep(p.logger))
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Run executes the pipeline for job and returns its report.
// The report is never nil.
func (p *Pipeline) Run(ctx context.Context, job Job) *model.CrawlReport {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	run := &Run{Job: job, Report: model.NewCrawlReport(job.Name)}
	_ = p.Execute(ctx, run) //nolint:errcheck // Error is stored in report
	run.Report.Duration = time.Since(run.Report.StartedAt)
	return run.Report
}

// Execute runs all steps in sequence and returns the first error.
// The error is also recorded in run.Report.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("job cancelled",
				"job", run.Job.Name,
				"step", step.Name(),
				"reason", err,
			)
			fail(run.Report, err)
			return err
		}

		p.logger.Debug("executing step",
			"job", run.Job.Name,
			"step", step.Name(),
		)

		if err := step.Do(ctx, run); err != nil {
			level := slog.LevelError
			if errors.Is(err, crawler.ErrNoValidHeight) {
				level = slog.LevelWarn
			}
			p.logger.Log(ctx, level, "step failed",
				"job", run.Job.Name,
				"step", step.Name(),
				"error", err,
			)
			fail(run.Report, err)
			return err
		}
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// fail records err in the report. An exhausted crawl is not a failure of
// the job itself, so it keeps its own outcome.
func fail(report *model.CrawlReport, err error) {
	report.Error = err.Error()
	report.Result = nil
	if errors.Is(err, crawler.ErrNoValidHeight) {
		report.Outcome = model.OutcomeExhausted
		return
	}
	report.Outcome = model.OutcomeFailed
}
