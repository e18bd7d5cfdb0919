package repositories

import (
	"context"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
)

// ManifestReader gives read access to the manifests of one repository.
// Failed or missing reads yield empty values.
type ManifestReader interface {
	RootEntries(ctx context.Context) []string
	FileText(ctx context.Context, path string) string
}

// ClassifierRepository decides whether a package is a production dependency
// of a repository of one ecosystem.
type ClassifierRepository interface {
	// ProjectType returns the ecosystem this classifier understands.
	ProjectType() entities.ProjectType

	// IsProduction reports whether pkg is declared as a production dependency.
	// Empty manifests must resolve to false unless a fallback manifest exists.
	IsProduction(ctx context.Context, manifests ManifestReader, pkg string, opts entities.ClassifyOptions) bool
}
