package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repowatch/internal/domain/commands"
	"github.com/rios0rios0/repowatch/internal/domain/entities"
)

// RunController handles the "run" subcommand (batch mode).
type RunController struct {
	command commands.Run
}

// NewRunController creates a new RunController.
func NewRunController(command commands.Run) *RunController {
	return &RunController{command: command}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run",
		Short: "Scan all repositories and file tracking issues",
		Long: `Scan every public, non-archived repository of the configured
organizations, classify CI health and release drift, and file
deduplicated tracking issues in the issue repository.

This is the main command intended to be used in a cronjob.
Issues whose title is already open are skipped, so running it
repeatedly is safe.`,
	}
}

// Execute runs the batch mode. The returned error makes the process exit non-zero.
func (it *RunController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if validateErr := settings.Validate(); validateErr != nil {
		return fmt.Errorf("invalid configuration: %w", validateErr)
	}

	logger.Infof(
		"Starting repowatch run on %s (%d organizations, issues go to %s)",
		settings.Provider.Type, len(settings.Organizations), settings.IssueRepository,
	)

	if _, runErr := it.command.Execute(ctx, settings, commands.RunOptions{
		DryRun:  dryRun,
		Verbose: verbose,
	}); runErr != nil {
		return fmt.Errorf("run failed: %w", runErr)
	}
	return nil
}

// AddFlags adds the run-specific flags to the given Cobra command.
func (it *RunController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "Hosting provider (github, gitlab)")
	cmd.Flags().StringSlice("org", nil, "Organization or user to scan (repeatable, replaces the configured list)")
	cmd.Flags().String("issue-repo", "", "Repository (owner/name) receiving the tracking issues")
}
