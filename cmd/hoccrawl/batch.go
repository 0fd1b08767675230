package main

import (
	"fmt"

	"github.com/nao1215/hoccrawler/internal/config"
	"github.com/spf13/cobra"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [job...]",
		Short: "Run crawl jobs from a job file",
		Long: `Batch runs the jobs defined in a YAML job file, several at a time.

Without arguments every job in the file is run. Job names given as arguments
select a subset, in the order given. Each job walks its own range strictly
one height at a time; --concurrency only controls how many jobs run at once.

The job file is searched for in this order:
  1. the path given with -c
  2. .hoccrawl.yaml in the current directory
  3. .hoccrawl.yaml in the home directory
  4. $XDG_CONFIG_HOME/hoccrawler/config.yaml

Create a commented example with "hoccrawl init".

Examples:
  # Run every job in .hoccrawl.yaml
  hoccrawl batch

  # Run two jobs from a specific file
  hoccrawl batch -c culverts.yaml culvert-max culvert-min

  # JSON report of all jobs, eight at a time
  hoccrawl batch --concurrency 8 --json -o reports/hoc.json`,
		Args: cobra.ArbitraryArgs,
		RunE: runBatchCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Job file path (default: .hoccrawl.yaml in current or home directory)")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of jobs run at the same time")

	addReportFlags(cmd)

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildBatchConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	return runJobs(cmd, cfg)
}

// buildBatchConfig creates a Config from cobra command flags and loads the
// job file.
func buildBatchConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.JobNames = args

	var err error
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return nil, err
	}
	if err := readReportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	// An explicit path must exist; otherwise the first file found is used.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" {
		if cfg.ConfigFilePath != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil, fmt.Errorf("%w: create one with \"hoccrawl init\" or pass -c", config.ErrConfigNotFound)
	}

	if cfg.Jobs, err = config.LoadConfigFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load job file %s: %w", configPath, err)
	}
	return cfg, nil
}
