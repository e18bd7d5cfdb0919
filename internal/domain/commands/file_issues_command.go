package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

// FileIssuesCommand files candidate issues in the destination repository,
// skipping those whose title is already open under the same label.
type FileIssuesCommand struct{}

// NewFileIssuesCommand creates a new FileIssuesCommand.
func NewFileIssuesCommand() *FileIssuesCommand {
	return &FileIssuesCommand{}
}

// Execute processes candidates sorted by type, then repository. The open-issue
// snapshot of every type is taken before the first creation. A creation error
// stops the pass; issues created before it stay created.
func (it *FileIssuesCommand) Execute(
	ctx context.Context,
	hosting repositories.HostingRepository,
	destination entities.Repository,
	candidates []entities.PendingIssue,
) (entities.FilingResult, error) {
	var result entities.FilingResult
	if len(candidates) == 0 {
		logger.Info("No issues to file")
		return result, nil
	}

	existing := it.snapshot(ctx, hosting, destination)

	logger.Infof("Filing %d issues in %s (sorted by type, then repo)", len(candidates), destination)
	for _, issue := range entities.SortIssues(candidates) {
		titles, ok := existing[issue.Type]
		if !ok {
			titles = make(map[string]struct{})
			existing[issue.Type] = titles
		}

		if _, found := titles[issue.Title]; found {
			logger.Infof("[skip] %s (already exists)", issue.Title)
			result.Skipped = append(result.Skipped, issue.Title)
			continue
		}

		number, err := hosting.CreateIssue(ctx, destination, issue.ToInput())
		if err != nil {
			return result, fmt.Errorf("failed to file %q: %w", issue.Title, err)
		}
		titles[issue.Title] = struct{}{}
		result.Created = append(result.Created, entities.ExistingIssue{Title: issue.Title, Number: number})
		logger.Infof("[created] %s (#%d)", issue.Title, number)
	}

	return result, nil
}

// snapshot returns the open issue titles per type. Label setup and listing
// failures are logged and leave the type with no known titles.
func (it *FileIssuesCommand) snapshot(
	ctx context.Context,
	hosting repositories.HostingRepository,
	destination entities.Repository,
) map[entities.IssueType]map[string]struct{} {
	existing := make(map[entities.IssueType]map[string]struct{})

	for _, issueType := range entities.IssueTypes() {
		if err := hosting.EnsureLabel(ctx, destination, issueType.Label()); err != nil {
			logger.Warnf("Could not ensure label %q: %v", issueType, err)
		}

		titles := make(map[string]struct{})
		open, err := hosting.ListOpenIssuesByLabel(ctx, destination, string(issueType))
		if err != nil {
			logger.Warnf("Could not list open %q issues, assuming none: %v", issueType, err)
		}
		for _, issue := range open {
			titles[issue.Title] = struct{}{}
		}
		logger.Debugf("%d open %q issues", len(titles), issueType)
		existing[issueType] = titles
	}

	return existing
}
