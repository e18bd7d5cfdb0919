package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

// ScanCommand classifies one repository and derives its candidate issues.
// It never files anything.
type ScanCommand struct {
	detect   *DetectCommand
	ciStatus *CIStatusCommand
	release  *ReleaseCommand
}

// NewScanCommand creates a new ScanCommand.
func NewScanCommand(
	detect *DetectCommand,
	ciStatus *CIStatusCommand,
	release *ReleaseCommand,
) *ScanCommand {
	return &ScanCommand{
		detect:   detect,
		ciStatus: ciStatus,
		release:  release,
	}
}

// Execute runs detection, CI aggregation and drift analysis for the repository.
func (it *ScanCommand) Execute(
	ctx context.Context,
	hosting repositories.HostingRepository,
	repo entities.Repository,
	opts entities.ScanOptions,
) (entities.RepositoryReport, []entities.PendingIssue) {
	manifests := NewManifestReader(hosting, repo)

	projectType := it.detect.Execute(ctx, manifests)
	report := entities.RepositoryReport{
		Repository:    repo,
		ProjectType:   projectType,
		CIStatus:      it.ciStatus.Execute(ctx, hosting, repo),
		ReleaseStatus: it.release.Execute(ctx, hosting, manifests, repo, projectType, opts.Classify),
	}

	logger.Infof(
		"[%s] type=%s ci=%s release=%s",
		repo, report.ProjectType, report.CIStatus.Status, report.ReleaseStatus.State,
	)

	return report, report.Issues(hosting.Links(repo))
}
