package config

import (
	"errors"
	"fmt"

	"github.com/nao1215/hoccrawler/crawler"
)

// Configuration validation errors.
// Callers match them with errors.Is.
var (
	// ErrNoJob is returned when no crawl job is defined.
	ErrNoJob = errors.New("no job specified: define jobs in the configuration file")

	// ErrUnknownJob is matched by UnknownJobError.
	ErrUnknownJob = errors.New("unknown job")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTimeout is returned when the per-job timeout is negative.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrMissingTarget is returned for a job without a target.
	ErrMissingTarget = errors.New("missing target: set target to min or max")

	// ErrInvalidForgiveness is returned for a negative forgiveness level.
	// It is the crawler's sentinel, so either package's name matches it.
	ErrInvalidForgiveness = crawler.ErrInvalidForgiveness

	// ErrUnboundedCrawl is returned for a job over an open range that could
	// never stop.
	ErrUnboundedCrawl = errors.New("unbounded crawl: set a stop, or maxCover for max / minCover for min")

	// ErrUnknownPredicate is returned for a predicate type other than
	// limits or exec.
	ErrUnknownPredicate = errors.New("unknown predicate type: must be limits or exec")

	// ErrMissingCommand is returned for an exec predicate without a command.
	ErrMissingCommand = errors.New("exec predicate requires a command")
)

// UnknownJobError is returned when a job name on the command line is not
// defined in the job file.
type UnknownJobError struct {
	Name string
}

// Error implements error.
func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("unknown job %q", e.Name)
}

// Is makes errors.Is(err, ErrUnknownJob) succeed.
func (e *UnknownJobError) Is(target error) bool {
	return target == ErrUnknownJob
}

// JobError ties a validation error to a job name.
type JobError struct {
	Job string
	Err error
}

// Error implements error.
func (e *JobError) Error() string {
	return fmt.Sprintf("job %q: %v", e.Job, e.Err)
}

// Unwrap returns the underlying error.
func (e *JobError) Unwrap() error {
	return e.Err
}
