package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	infraRepos "github.com/rios0rios0/repowatch/internal/infrastructure/repositories"
)

// Run is the interface for the run command (batch mode).
type Run interface {
	Execute(ctx context.Context, settings *entities.Settings, opts RunOptions) (*entities.RunSummary, error)
}

// RunOptions holds runtime options for a single run.
type RunOptions struct {
	DryRun  bool
	Verbose bool
}

// RunCommand scans every repository of the configured organizations and then
// files the accumulated issues in one pass.
type RunCommand struct {
	hostingRegistry *infraRepos.HostingRegistry
	scan            *ScanCommand
	fileIssues      *FileIssuesCommand
}

// NewRunCommand creates a new RunCommand.
func NewRunCommand(
	hostingRegistry *infraRepos.HostingRegistry,
	scan *ScanCommand,
	fileIssues *FileIssuesCommand,
) *RunCommand {
	return &RunCommand{
		hostingRegistry: hostingRegistry,
		scan:            scan,
		fileIssues:      fileIssues,
	}
}

// Execute scans repositories one after another, then files issues. Only a
// filing failure or an unusable configuration is returned as an error.
func (it *RunCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts RunOptions,
) (*entities.RunSummary, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	destination, err := entities.ParseRepository(settings.IssueRepository)
	if err != nil {
		return nil, fmt.Errorf("invalid issue repository: %w", err)
	}

	hosting, err := it.hostingRegistry.Get(
		settings.Provider.Type, settings.Provider.Token, settings.Provider.BaseURL,
	)
	if err != nil {
		return nil, err
	}

	summary := &entities.RunSummary{}
	scanOpts := entities.ScanOptions{Classify: settings.ClassifyOptions()}
	var candidates []entities.PendingIssue

	for _, org := range settings.Organizations {
		logger.Infof("Discovering repositories in %q...", org)

		repos, listErr := hosting.ListRepositories(ctx, org)
		if listErr != nil {
			logger.Errorf("Failed to list repositories in %q: %v", org, listErr)
			continue
		}
		logger.Infof("Found %d repositories in %q", len(repos), org)

		for _, repo := range repos {
			report, issues := it.scan.Execute(ctx, hosting, repo, scanOpts)
			summary.Record(report)
			candidates = append(candidates, issues...)
		}
	}

	logger.Infof(
		"Scan complete: %d repos, %d CI failures, %d pending releases",
		summary.Repositories, summary.CIFailures, summary.PendingReleases,
	)

	if opts.DryRun {
		for _, issue := range entities.SortIssues(candidates) {
			logger.Infof("[dry-run] would file %s", issue.Title)
		}
		return summary, nil
	}

	result, fileErr := it.fileIssues.Execute(ctx, hosting, destination, candidates)
	summary.Created = len(result.Created)
	summary.Skipped = len(result.Skipped)
	if fileErr != nil {
		return summary, fileErr
	}

	logger.Infof("Run complete: %d issues created, %d skipped", summary.Created, summary.Skipped)
	return summary, nil
}
