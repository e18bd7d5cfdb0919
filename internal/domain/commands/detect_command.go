package commands

import (
	"context"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

// DetectCommand determines the ecosystem of a repository from its root listing.
type DetectCommand struct{}

// NewDetectCommand creates a new DetectCommand.
func NewDetectCommand() *DetectCommand {
	return &DetectCommand{}
}

// Execute returns the detected project type. An unavailable listing yields unknown.
func (it *DetectCommand) Execute(
	ctx context.Context,
	manifests repositories.ManifestReader,
) entities.ProjectType {
	return entities.DetectProjectType(manifests.RootEntries(ctx))
}
