package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/hoccrawler/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/hoccrawl.yaml
var configTemplate embed.FS

// configFileName is the default job file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a commented job file",
		Long: `Init writes a new .hoccrawl.yaml job file to the current directory.

The generated file includes:
- Defaults shared by every job
- A limits job ready to run
- A commented exec job showing the environment passed to the program

Examples:
  # Create .hoccrawl.yaml in current directory
  hoccrawl init

  # Create the job file at a specific path
  hoccrawl init -o jobs/culverts.yaml

  # Force overwrite existing file
  hoccrawl init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the job file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing job file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("job file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/hoccrawl.yaml")
	if err != nil {
		return fmt.Errorf("failed to read job file template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write job file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created job file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to describe your crawls, then run:")
	fmt.Fprintf(out, "  hoccrawl batch -c %s\n", outputPath)

	return nil
}
