package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/hoccrawler/crawler"
	"github.com/nao1215/hoccrawler/hocrange"
	"github.com/nao1215/hoccrawler/internal/model"
	"github.com/nao1215/hoccrawler/internal/predicate"
)

// PrepareStep validates the job and resolves its target, range and
// predicate.
type PrepareStep struct {
	logger *slog.Logger
}

// NewPrepareStep creates a PrepareStep. A nil logger uses slog.Default().
func NewPrepareStep(logger *slog.Logger) *PrepareStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrepareStep{logger: logger}
}

// Name returns the step name.
func (s *PrepareStep) Name() string {
	return "prepare"
}

// Do fills run.Target, run.Range and run.Predicate.
func (s *PrepareStep) Do(_ context.Context, run *Run) error {
	jc := run.Job.Config
	report := run.Report

	report.Target = jc.Target
	report.Flooded = jc.IsFlooded()
	report.Forgiveness = jc.ForgivenessLevel()
	report.Predicate = strings.ToLower(jc.Predicate.Type)

	target, err := crawler.ParseTarget(jc.Target)
	if err != nil {
		return err
	}
	report.Target = target.String()

	if report.Forgiveness < 0 {
		return fmt.Errorf("%w: got %d", crawler.ErrInvalidForgiveness, report.Forgiveness)
	}

	args, err := jc.Range.Args()
	if err != nil {
		return err
	}
	rng, err := hocrange.New(args...)
	if err != nil {
		return err
	}
	report.Range = rng.String()

	p, err := predicate.FromConfig(jc.Predicate)
	if err != nil {
		return err
	}
	if e, ok := p.(*predicate.Exec); ok {
		e.Logger = s.logger.With("job", run.Job.Name)
	}

	run.Target = target
	run.Range = rng
	run.Predicate = p
	return nil
}

// CrawlStep walks the prepared range and records every attempt.
type CrawlStep struct {
	logger *slog.Logger
}

// NewCrawlStep creates a CrawlStep. A nil logger uses slog.Default().
func NewCrawlStep(logger *slog.Logger) *CrawlStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CrawlStep{logger: logger}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do runs crawler.Search with the job settings.
func (s *CrawlStep) Do(ctx context.Context, run *Run) error {
	if run.Predicate == nil {
		return crawler.ErrNilPredicate
	}
	jc := run.Job.Config
	report := run.Report

	params := make(map[string]any, len(jc.Params))
	for k, v := range jc.Params {
		params[k] = v
	}

	res, err := crawler.Search(ctx, run.Predicate, run.Target,
		crawler.WithRange(run.Range),
		crawler.WithFlooded(jc.IsFlooded()),
		crawler.WithForgiveness(jc.ForgivenessLevel()),
		crawler.WithParams(params),
		crawler.WithObserver(report.Record),
		crawler.WithLogger(s.logger.With("job", run.Job.Name)),
	)
	run.Result = res
	if res != nil {
		report.StopReason = res.Stop.String()
	}
	if err != nil {
		return err
	}

	h := res.Value
	report.Result = &h
	report.Outcome = model.OutcomeFound
	s.logger.Info("height of cover found",
		"job", run.Job.Name,
		"target", run.Target,
		"h", h,
		"attempts", res.Attempts(),
	)
	return nil
}
