package golang

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

const manifestPath = "go.mod"

// GolangClassifierRepository classifies Go modules using go.mod.
type GolangClassifierRepository struct{}

// NewClassifierRepository creates a new Go classifier.
func NewClassifierRepository() repositories.ClassifierRepository {
	return &GolangClassifierRepository{}
}

func (it *GolangClassifierRepository) ProjectType() entities.ProjectType {
	return entities.ProjectTypeGo
}

// IsProduction matches pkg anywhere in go.mod. In structural mode only
// direct require entries count.
func (it *GolangClassifierRepository) IsProduction(
	ctx context.Context,
	manifests repositories.ManifestReader,
	pkg string,
	opts entities.ClassifyOptions,
) bool {
	content := manifests.FileText(ctx, manifestPath)
	if content == "" {
		return false
	}
	if !opts.Structural {
		return strings.Contains(content, pkg)
	}

	file, err := modfile.ParseLax(manifestPath, []byte(content), nil)
	if err != nil {
		logger.Debugf("[go] ignoring unparsable %s: %v", manifestPath, err)
		return false
	}
	for _, require := range file.Require {
		if require.Mod.Path == pkg && !require.Indirect {
			return true
		}
	}
	return false
}
