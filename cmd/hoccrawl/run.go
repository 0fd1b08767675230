package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/hoccrawler/internal/config"
	"github.com/nao1215/hoccrawler/internal/log"
	"github.com/nao1215/hoccrawler/internal/model"
	"github.com/nao1215/hoccrawler/internal/pipeline"
	"github.com/nao1215/hoccrawler/internal/report"
	"github.com/spf13/cobra"
)

// ErrJobsFailed is returned when at least one job did not find a height.
// The reports have already been written when it is returned.
var ErrJobsFailed = errors.New("not every job found a height of cover")

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the secure logger selected by the global flags.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	jsonLogs, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		jsonLogs = false
	}
	if jsonLogs {
		return log.NewSecureJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return log.NewSecureLogger(cmd.ErrOrStderr(), verbose)
}

// addReportFlags registers the report format and destination flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Duration("timeout", config.DefaultTimeout,
		"Maximum run time of each job (0 disables the limit)")
}

// readReportFlags copies the report flags into cfg.
func readReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return err
	}
	return nil
}

// runJobs runs the selected jobs of cfg and writes their reports.
// A single job is written as a job report and several as a batch report.
func runJobs(cmd *cobra.Command, cfg *config.Config) error {
	logger := setupLogger(cmd, cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	names := cfg.SelectedJobs()
	jobs := make([]pipeline.Job, 0, len(names))
	for _, name := range names {
		jc, _ := cfg.Jobs.GetJob(name)
		jobs = append(jobs, pipeline.Job{Name: name, Config: jc})
	}

	factory := func() *pipeline.Pipeline {
		return pipeline.Default(
			pipeline.WithLogger(logger),
			pipeline.WithTimeout(cfg.Timeout),
		)
	}

	var reports []*model.CrawlReport
	if len(jobs) == 1 {
		reports = []*model.CrawlReport{factory().Run(ctx, jobs[0])}
	} else {
		bp := pipeline.NewBatchProcessor(factory,
			pipeline.WithConcurrency(cfg.Concurrency),
			pipeline.WithBatchLogger(logger),
		)
		var err error
		reports, err = bp.ProcessBatch(ctx, jobs)
		if err != nil {
			logger.Warn("batch interrupted", "error", err)
		}
	}

	if err := outputReports(cmd, cfg, reports); err != nil {
		return err
	}

	summary := model.Summarize(reports)
	if summary.Total < len(jobs) || summary.HasFailures() {
		return fmt.Errorf("%w: %d found, %d exhausted, %d failed, %d not run",
			ErrJobsFailed, summary.Found, summary.Exhausted, summary.Failed, len(jobs)-summary.Total)
	}
	return nil
}

// outputReports writes the reports in the requested format.
func outputReports(cmd *cobra.Command, cfg *config.Config, reports []*model.CrawlReport) error {
	output := cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		f, err := createReportFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		defer f.Close()
		output = f
	}

	w := newReportWriter(cfg, output)
	var err error
	if len(reports) == 1 {
		_, err = w.Write(reports[0])
	} else {
		_, err = w.WriteBatch(reports)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// newReportWriter selects the writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// createReportFile creates or truncates path, creating parent directories.
// Reports may embed job parameters, so the file is readable by the owner only.
func createReportFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
