package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repowatch/internal/domain/commands"
	"github.com/rios0rios0/repowatch/internal/domain/entities"
)

var errCheckTarget = errors.New("expected exactly one owner/name argument")

// CheckController handles the "check" subcommand: inspect one repository without filing.
type CheckController struct {
	command commands.Check
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check) *CheckController {
	return &CheckController{command: command}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check <owner/name>",
		Short: "Classify a single repository without filing issues",
		Long: `Detect the project type, aggregate CI status and analyze release
drift for one repository, then print the issues a run would file.
Nothing is written to the issue tracker.`,
	}
}

// Execute scans the repository given as the only argument.
func (it *CheckController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errCheckTarget
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if validateErr := settings.ValidateProvider(); validateErr != nil {
		return fmt.Errorf("invalid configuration: %w", validateErr)
	}

	result, err := it.command.Execute(context.Background(), settings, args[0])
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	out := cmd.OutOrStdout()
	report := result.Report
	_, _ = fmt.Fprintf(out, "Repository: %s\n", report.Repository)
	_, _ = fmt.Fprintf(out, "Type:       %s\n", report.ProjectType)
	_, _ = fmt.Fprintf(out, "CI:         %s\n", report.CIStatus.Status)
	_, _ = fmt.Fprintf(out, "Release:    %s\n", report.ReleaseStatus.State)
	for _, issue := range result.Issues {
		_, _ = fmt.Fprintf(out, "\n## %s\n\n%s\n", issue.Title, issue.Body)
	}
	return nil
}

// AddFlags adds the check-specific flags to the given Cobra command.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "Hosting provider (github, gitlab)")
}
