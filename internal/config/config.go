package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultConcurrency is the number of jobs a batch runs at once.
	// Each job still calls its predicate strictly one candidate at a time.
	DefaultConcurrency = 4

	// DefaultForgiveness keeps the strict behaviour: the first rejection
	// after an acceptance ends the crawl.
	DefaultForgiveness = 0

	// DefaultTimeout of zero means a job may run until its range or its
	// forgiveness budget ends it.
	DefaultTimeout = time.Duration(0)

	// DefaultRejectExitCode is the exit status an exec predicate uses to
	// reject a candidate. Exit status 0 accepts it.
	DefaultRejectExitCode = 1

	// AppName is the application name used for XDG directory paths.
	AppName = "hoccrawler"
)

// Config holds the options of a hoccrawl invocation.
// It is populated from CLI flags and passed down explicitly.
type Config struct {
	// Verbose enables debug logging, including every candidate tried.
	Verbose bool

	// Concurrency is the number of jobs run at the same time in batch mode.
	Concurrency int

	// Timeout bounds the run time of each job. Zero disables the limit.
	Timeout time.Duration

	// ConfigFilePath is the path to the job file.
	// If empty, FindConfigFile searches the usual locations.
	ConfigFilePath string

	// Jobs holds the job definitions loaded from the job file.
	Jobs *File

	// JobNames selects which jobs to run. Empty means every job in Jobs.
	JobNames []string

	// JSONReport enables JSON report output. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output. Mutually exclusive
	// with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When empty the report goes to stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
	}
}

// XDGConfigDir returns the XDG config directory for hoccrawler.
// On Linux: ~/.config/hoccrawler
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the job file path inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// Validate checks if the configuration is valid.
// Only the selected jobs are validated, including the check that each of
// them can end. It returns the first problem found.
func (c *Config) Validate() error {
	if c.Jobs == nil || len(c.Jobs.Jobs) == 0 {
		return ErrNoJob
	}

	for _, name := range c.JobNames {
		if _, ok := c.Jobs.Jobs[name]; !ok {
			return &UnknownJobError{Name: name}
		}
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	for _, name := range c.SelectedJobs() {
		job, _ := c.Jobs.GetJob(name)
		if err := job.Validate(); err != nil {
			return &JobError{Job: name, Err: err}
		}
		if err := job.CheckBounded(); err != nil {
			return &JobError{Job: name, Err: err}
		}
	}
	return nil
}

// SelectedJobs returns the names of the jobs to run, in order.
func (c *Config) SelectedJobs() []string {
	if len(c.JobNames) > 0 {
		return c.JobNames
	}
	if c.Jobs == nil {
		return nil
	}
	return c.Jobs.JobNames()
}
