package repositories

import (
	"context"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repowatch/internal/domain/repositories"
)

// ClassifierRegistry maps project types to their dependency classifiers.
type ClassifierRegistry struct {
	classifiers map[entities.ProjectType]domainRepos.ClassifierRepository
	fallback    domainRepos.ClassifierRepository
}

// NewClassifierRegistry creates a registry that answers with the permissive
// classifier until specific ones are registered.
func NewClassifierRegistry() *ClassifierRegistry {
	return &ClassifierRegistry{
		classifiers: make(map[entities.ProjectType]domainRepos.ClassifierRepository),
		fallback:    &permissiveClassifier{},
	}
}

// Register adds a classifier under its project type.
func (r *ClassifierRegistry) Register(c domainRepos.ClassifierRepository) {
	r.classifiers[c.ProjectType()] = c
}

// Get returns the classifier for the project type. Unknown and unregistered
// types get a classifier that treats every package as production.
func (r *ClassifierRegistry) Get(projectType entities.ProjectType) domainRepos.ClassifierRepository {
	if c, ok := r.classifiers[projectType]; ok {
		return c
	}
	return r.fallback
}

// permissiveClassifier fails open so nothing from an unrecognized ecosystem is dropped.
type permissiveClassifier struct{}

func (c *permissiveClassifier) ProjectType() entities.ProjectType {
	return entities.ProjectTypeUnknown
}

func (c *permissiveClassifier) IsProduction(
	context.Context, domainRepos.ManifestReader, string, entities.ClassifyOptions,
) bool {
	return true
}
