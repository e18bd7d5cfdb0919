package kotlin

import (
	"context"
	"regexp"
	"strings"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

//nolint:gochecknoglobals // Groovy DSL first, then Kotlin DSL
var manifestPaths = []string{"build.gradle", "build.gradle.kts"}

//nolint:gochecknoglobals // compiled once
var productionConfiguration = regexp.MustCompile(`(implementation|api)\s*[("']`)

// KotlinClassifierRepository classifies Gradle dependencies.
type KotlinClassifierRepository struct{}

// NewClassifierRepository creates a new Kotlin classifier.
func NewClassifierRepository() repositories.ClassifierRepository {
	return &KotlinClassifierRepository{}
}

func (it *KotlinClassifierRepository) ProjectType() entities.ProjectType {
	return entities.ProjectTypeKotlin
}

// IsProduction is a containment check: the build file must declare an
// implementation or api configuration and mention pkg somewhere.
func (it *KotlinClassifierRepository) IsProduction(
	ctx context.Context,
	manifests repositories.ManifestReader,
	pkg string,
	_ entities.ClassifyOptions,
) bool {
	var content string
	for _, path := range manifestPaths {
		if content = manifests.FileText(ctx, path); content != "" {
			break
		}
	}
	return productionConfiguration.MatchString(content) && strings.Contains(content, pkg)
}
