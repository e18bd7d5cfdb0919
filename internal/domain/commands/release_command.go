package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/repowatch/internal/infrastructure/repositories"
)

const maxConcurrentClassifications = 8

// ReleaseCommand analyzes the drift between the latest tag and the default branch.
type ReleaseCommand struct {
	classifiers *infraRepos.ClassifierRegistry
}

// NewReleaseCommand creates a new ReleaseCommand.
func NewReleaseCommand(classifiers *infraRepos.ClassifierRegistry) *ReleaseCommand {
	return &ReleaseCommand{classifiers: classifiers}
}

// Execute decides whether the repository has unreleased, release-worthy changes:
// source files matching the ecosystem's layout or bumps of production dependencies.
func (it *ReleaseCommand) Execute(
	ctx context.Context,
	hosting repositories.HostingRepository,
	manifests repositories.ManifestReader,
	repo entities.Repository,
	projectType entities.ProjectType,
	opts entities.ClassifyOptions,
) entities.ReleaseStatus {
	tag, err := hosting.GetLatestTag(ctx, repo)
	if err != nil {
		logger.Debugf("[%s] latest tag unavailable: %v", repo, err)
	}
	if tag == "" {
		return entities.ReleaseStatus{State: entities.ReleaseStateNoTag}
	}

	branch, err := hosting.GetDefaultBranch(ctx, repo)
	if err != nil {
		logger.Debugf("[%s] default branch unavailable: %v", repo, err)
	}
	if branch == "" {
		return entities.ReleaseStatus{State: entities.ReleaseStateUpToDate}
	}

	comparison, err := hosting.CompareRefs(ctx, repo, tag, branch)
	if err != nil {
		logger.Debugf("[%s] comparison %s...%s unavailable: %v", repo, tag, branch, err)
		comparison = entities.Comparison{}
	}
	if comparison.IsEmpty() {
		return entities.ReleaseStatus{State: entities.ReleaseStateUpToDate}
	}

	var sourceChanges []string
	for _, path := range comparison.Files {
		if projectType.IsSourcePath(path) {
			sourceChanges = append(sourceChanges, path)
		}
	}
	updates := it.productionUpdates(ctx, manifests, projectType, comparison.CommitMessages, opts)

	reasons := entities.BuildReleaseReasons(sourceChanges, updates)
	if reasons == "" {
		return entities.ReleaseStatus{State: entities.ReleaseStateUpToDate}
	}
	return entities.ReleaseStatus{
		State:      entities.ReleaseStatePending,
		Reasons:    reasons,
		CompareURL: hosting.CompareURL(repo, tag, branch),
	}
}

// productionUpdates parses bump commits and keeps those whose package is a
// production dependency. Classifications run concurrently; the result keeps
// commit order.
func (it *ReleaseCommand) productionUpdates(
	ctx context.Context,
	manifests repositories.ManifestReader,
	projectType entities.ProjectType,
	messages []string,
	opts entities.ClassifyOptions,
) []entities.DependencyReference {
	var bumps []entities.DependencyReference
	for _, message := range messages {
		if bump, ok := entities.ParseBumpCommit(message); ok {
			bumps = append(bumps, bump)
		}
	}
	if len(bumps) == 0 {
		return nil
	}

	classifier := it.classifiers.Get(projectType)
	accepted := make([]bool, len(bumps))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentClassifications)
	for i, bump := range bumps {
		group.Go(func() error {
			accepted[i] = classifier.IsProduction(groupCtx, manifests, bump.Name, opts)
			return nil
		})
	}
	_ = group.Wait() // classifications never fail, they resolve to false

	var updates []entities.DependencyReference
	for i, bump := range bumps {
		if accepted[i] {
			updates = append(updates, bump)
		}
	}
	return updates
}
