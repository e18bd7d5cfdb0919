package rust

import (
	"context"
	"regexp"

	"github.com/pelletier/go-toml/v2"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

const manifestPath = "Cargo.toml"

//nolint:gochecknoglobals // compiled once
var (
	dependenciesHeader = regexp.MustCompile(`(?m)^[ \t]*\[dependencies\][^\n]*`)
	nextSectionHeader  = regexp.MustCompile(`(?m)^[ \t]*\[`)
)

type cargoManifest struct {
	Dependencies map[string]any `toml:"dependencies"`
}

// RustClassifierRepository classifies crates using Cargo.toml.
type RustClassifierRepository struct{}

// NewClassifierRepository creates a new Rust classifier.
func NewClassifierRepository() repositories.ClassifierRepository {
	return &RustClassifierRepository{}
}

func (it *RustClassifierRepository) ProjectType() entities.ProjectType {
	return entities.ProjectTypeRust
}

// IsProduction reports whether pkg is declared in the [dependencies] section.
func (it *RustClassifierRepository) IsProduction(
	ctx context.Context,
	manifests repositories.ManifestReader,
	pkg string,
	opts entities.ClassifyOptions,
) bool {
	content := manifests.FileText(ctx, manifestPath)
	if content == "" {
		return false
	}
	if opts.Structural {
		return declaredInTable(content, pkg)
	}

	declaration := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(pkg) + `\s*=`)
	return declaration.MatchString(dependenciesSection(content))
}

// dependenciesSection returns the text between the end of the [dependencies]
// header line and the next section header, or the end of the file. The header
// line may carry a comment or a carriage return.
func dependenciesSection(content string) string {
	loc := dependenciesHeader.FindStringIndex(content)
	if loc == nil {
		return ""
	}
	section := content[loc[1]:]
	if next := nextSectionHeader.FindStringIndex(section); next != nil {
		section = section[:next[0]]
	}
	return section
}

func declaredInTable(content, pkg string) bool {
	var manifest cargoManifest
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		logger.Debugf("[rust] ignoring unparsable %s: %v", manifestPath, err)
		return false
	}
	_, ok := manifest.Dependencies[pkg]
	return ok
}
