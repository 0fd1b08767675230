package main

import (
	"fmt"

	"github.com/nao1215/hoccrawler/internal/config"
	"github.com/spf13/cobra"
)

// crawlJobName names the job built from command line flags.
const crawlJobName = "crawl"

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run a single crawl described by flags",
		Long: `Crawl finds the minimum or maximum height of cover for one set of settings.

Heights are accepted by limits (--min-cover, --max-cover, --exclude,
--max-groundwater) or by an external program (--exec). The program sees the
candidate in HOC_H, HOC_H_GW, HOC_UNIT and HOC_FLOODED and each --param as
HOC_PARAM_<NAME>. Exit status 0 accepts the height and the reject exit code
(default 1) rejects it.

Examples:
  # Largest cover up to 12 ft, walking 2, 2.5, 3, ... 20 ft
  hoccrawl crawl --target max --start 2 --stop 20 --step 0.5 --unit ft --max-cover 12

  # Smallest cover accepted by a script, tolerating one isolated rejection
  hoccrawl crawl --target min --start 20 --stop 1 --forgiveness 1 \
    --exec ./check-cover.sh --param soil=clay

  # Markdown report written to a file
  hoccrawl crawl -t max --stop 30 --max-cover 25 --exclude 10 -m -o report.md`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	cmd.Flags().StringP("target", "t", "",
		"Height to search for: min or max")
	cmd.Flags().String("start", "",
		"First height tried (default 1)")
	cmd.Flags().String("stop", "",
		"Last height tried; empty or \"open\" leaves the range unbounded")
	cmd.Flags().String("step", "",
		"Distance between heights (default 1)")
	cmd.Flags().StringP("unit", "u", "",
		"Unit applied to heights given without one (ft, in, m, cm, mm)")
	cmd.Flags().IntP("forgiveness", "F", config.DefaultForgiveness,
		"Consecutive rejections tolerated after the last accepted height")
	cmd.Flags().Bool("flooded", false,
		"Assume groundwater at the surface (HGW = H)")

	// Limits predicate
	cmd.Flags().String("min-cover", "", "Smallest accepted height")
	cmd.Flags().String("max-cover", "", "Largest accepted height")
	cmd.Flags().StringSlice("exclude", nil, "Heights that are always rejected")
	cmd.Flags().String("max-groundwater", "", "Largest accepted groundwater height when flooded")

	// Exec predicate
	cmd.Flags().String("exec", "", "Program deciding each height through its exit status")
	cmd.Flags().StringArray("exec-arg", nil, "Argument passed to the --exec program (repeatable)")
	cmd.Flags().Int("reject-exit-code", config.DefaultRejectExitCode, "Exit status of --exec that rejects a height")
	cmd.Flags().StringToString("param", nil, "Parameter forwarded to the predicate as name=value (repeatable)")

	addReportFlags(cmd)

	_ = cmd.MarkFlagRequired("target") //nolint:errcheck // flag is defined above
	cmd.MarkFlagsMutuallyExclusive("exec", "min-cover")
	cmd.MarkFlagsMutuallyExclusive("exec", "max-cover")
	cmd.MarkFlagsMutuallyExclusive("exec", "exclude")
	cmd.MarkFlagsMutuallyExclusive("exec", "max-groundwater")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCrawlConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	return runJobs(cmd, cfg)
}

// buildCrawlConfig creates a Config holding the single job described by flags.
func buildCrawlConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	if err := readReportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	job, err := crawlJobFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	cfg.Jobs = &config.File{Jobs: map[string]config.JobConfig{crawlJobName: job}}
	return cfg, nil
}

// crawlJobFromFlags translates the crawl flags into a job configuration.
func crawlJobFromFlags(cmd *cobra.Command) (config.JobConfig, error) {
	var (
		job config.JobConfig
		err error
	)
	flags := cmd.Flags()

	strFlags := []struct {
		name string
		dst  *string
	}{
		{"target", &job.Target},
		{"start", &job.Range.Start},
		{"stop", &job.Range.Stop},
		{"step", &job.Range.Step},
		{"unit", &job.Range.Unit},
	}
	for _, f := range strFlags {
		if *f.dst, err = flags.GetString(f.name); err != nil {
			return job, err
		}
	}

	flooded, err := flags.GetBool("flooded")
	if err != nil {
		return job, err
	}
	forgiveness, err := flags.GetInt("forgiveness")
	if err != nil {
		return job, err
	}
	job.Flooded = &flooded
	job.Forgiveness = &forgiveness

	if job.Params, err = flags.GetStringToString("param"); err != nil {
		return job, err
	}

	command, err := flags.GetString("exec")
	if err != nil {
		return job, err
	}
	if command != "" {
		job.Predicate = config.PredicateConfig{Type: config.PredicateExec, Command: command}
		if job.Predicate.Args, err = flags.GetStringArray("exec-arg"); err != nil {
			return job, err
		}
		if job.Predicate.RejectExitCode, err = flags.GetInt("reject-exit-code"); err != nil {
			return job, err
		}
		return job, nil
	}

	job.Predicate = config.PredicateConfig{Type: config.PredicateLimits}
	limitFlags := []struct {
		name string
		dst  *string
	}{
		{"min-cover", &job.Predicate.MinCover},
		{"max-cover", &job.Predicate.MaxCover},
		{"max-groundwater", &job.Predicate.MaxGroundwater},
	}
	for _, f := range limitFlags {
		if *f.dst, err = flags.GetString(f.name); err != nil {
			return job, err
		}
	}
	if job.Predicate.Exclude, err = flags.GetStringSlice("exclude"); err != nil {
		return job, err
	}
	return job, nil
}
