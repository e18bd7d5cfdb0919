package swift

import (
	"context"
	"regexp"
	"strings"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

const manifestPath = "Package.swift"

//nolint:gochecknoglobals // compiled once
var packageDeclaration = regexp.MustCompile(`\.package\(`)

// SwiftClassifierRepository classifies Swift packages using Package.swift.
type SwiftClassifierRepository struct{}

// NewClassifierRepository creates a new Swift classifier.
func NewClassifierRepository() repositories.ClassifierRepository {
	return &SwiftClassifierRepository{}
}

func (it *SwiftClassifierRepository) ProjectType() entities.ProjectType {
	return entities.ProjectTypeSwift
}

func (it *SwiftClassifierRepository) IsProduction(
	ctx context.Context,
	manifests repositories.ManifestReader,
	pkg string,
	_ entities.ClassifyOptions,
) bool {
	content := manifests.FileText(ctx, manifestPath)
	return packageDeclaration.MatchString(content) && strings.Contains(content, pkg)
}
