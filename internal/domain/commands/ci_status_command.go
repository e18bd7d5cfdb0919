package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

// CIStatusCommand aggregates the CI signals of a repository's default branch.
type CIStatusCommand struct{}

// NewCIStatusCommand creates a new CIStatusCommand.
func NewCIStatusCommand() *CIStatusCommand {
	return &CIStatusCommand{}
}

// Execute fetches legacy statuses and check runs concurrently and reduces them
// to one verdict. Fetch failures count as "no signals" from that source.
func (it *CIStatusCommand) Execute(
	ctx context.Context,
	hosting repositories.HostingRepository,
	repo entities.Repository,
) entities.CIStatus {
	branch, err := hosting.GetDefaultBranch(ctx, repo)
	if err != nil {
		logger.Debugf("[%s] default branch unavailable: %v", repo, err)
	}
	if branch == "" {
		return entities.CIStatus{Status: entities.CIStateNoBranch}
	}

	var (
		statuses []entities.CommitStatus
		runs     []entities.CheckRun
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var fetchErr error
		if statuses, fetchErr = hosting.GetLegacyStatuses(groupCtx, repo, branch); fetchErr != nil {
			logger.Debugf("[%s] commit statuses unavailable: %v", repo, fetchErr)
			statuses = nil
		}
		return nil
	})
	group.Go(func() error {
		var fetchErr error
		if runs, fetchErr = hosting.GetCheckRuns(groupCtx, repo, branch); fetchErr != nil {
			logger.Debugf("[%s] check runs unavailable: %v", repo, fetchErr)
			runs = nil
		}
		return nil
	})
	_ = group.Wait() // both fetches are fail-soft

	return entities.AggregateSignals(entities.MergeSignals(statuses, runs))
}
