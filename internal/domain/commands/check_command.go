package commands

import (
	"context"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	infraRepos "github.com/rios0rios0/repowatch/internal/infrastructure/repositories"
)

// Check is the interface for the check command (single repository, read-only).
type Check interface {
	Execute(ctx context.Context, settings *entities.Settings, target string) (*CheckResult, error)
}

// CheckResult is the report of one repository and the issues a run would file for it.
type CheckResult struct {
	Report entities.RepositoryReport
	Issues []entities.PendingIssue
}

// CheckCommand inspects a single repository without filing issues.
type CheckCommand struct {
	hostingRegistry *infraRepos.HostingRegistry
	scan            *ScanCommand
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(hostingRegistry *infraRepos.HostingRegistry, scan *ScanCommand) *CheckCommand {
	return &CheckCommand{hostingRegistry: hostingRegistry, scan: scan}
}

// Execute scans the "owner/name" target.
func (it *CheckCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	target string,
) (*CheckResult, error) {
	repo, err := entities.ParseRepository(target)
	if err != nil {
		return nil, err
	}

	hosting, err := it.hostingRegistry.Get(
		settings.Provider.Type, settings.Provider.Token, settings.Provider.BaseURL,
	)
	if err != nil {
		return nil, err
	}

	report, issues := it.scan.Execute(ctx, hosting, repo, entities.ScanOptions{
		Classify: settings.ClassifyOptions(),
	})
	return &CheckResult{Report: report, Issues: issues}, nil
}
