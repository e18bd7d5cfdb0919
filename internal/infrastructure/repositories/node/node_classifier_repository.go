package node

import (
	"context"
	"encoding/json"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

const manifestPath = "package.json"

type packageManifest struct {
	Dependencies map[string]string `json:"dependencies"`
}

// NodeClassifierRepository classifies npm packages using package.json.
type NodeClassifierRepository struct{}

// NewClassifierRepository creates a new Node classifier.
func NewClassifierRepository() repositories.ClassifierRepository {
	return &NodeClassifierRepository{}
}

func (it *NodeClassifierRepository) ProjectType() entities.ProjectType {
	return entities.ProjectTypeNode
}

// IsProduction reports whether pkg is listed under "dependencies".
// devDependencies, peerDependencies and the like do not count.
func (it *NodeClassifierRepository) IsProduction(
	ctx context.Context,
	manifests repositories.ManifestReader,
	pkg string,
	_ entities.ClassifyOptions,
) bool {
	content := manifests.FileText(ctx, manifestPath)
	if content == "" {
		return false
	}

	var manifest packageManifest
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		logger.Debugf("[node] ignoring unparsable %s: %v", manifestPath, err)
		return false
	}

	_, ok := manifest.Dependencies[pkg]
	return ok
}
