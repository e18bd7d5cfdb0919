package ruby

import (
	"context"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

const (
	gemfilePath   = "Gemfile"
	gemspecSuffix = ".gemspec"
)

//nolint:gochecknoglobals // compiled once
var nonProductionGroup = regexp.MustCompile(`:development|:test`)

// RubyClassifierRepository classifies gems using the gemspec and the Gemfile.
type RubyClassifierRepository struct{}

// NewClassifierRepository creates a new Ruby classifier.
func NewClassifierRepository() repositories.ClassifierRepository {
	return &RubyClassifierRepository{}
}

func (it *RubyClassifierRepository) ProjectType() entities.ProjectType {
	return entities.ProjectTypeRuby
}

// IsProduction prefers the gemspec runtime declarations and falls back to a
// top-level Gemfile entry that is not qualified as development or test.
func (it *RubyClassifierRepository) IsProduction(
	ctx context.Context,
	manifests repositories.ManifestReader,
	pkg string,
	_ entities.ClassifyOptions,
) bool {
	quoted := regexp.QuoteMeta(pkg)

	if gemspec := findGemspec(manifests.RootEntries(ctx)); gemspec != "" {
		declaration := regexp.MustCompile(`add_(?:runtime_)?dependency.*['"]` + quoted + `['"]`)
		if declaration.MatchString(manifests.FileText(ctx, gemspec)) {
			logger.Debugf("[ruby] %q declared in %s", pkg, gemspec)
			return true
		}
	}

	gemfile := manifests.FileText(ctx, gemfilePath)
	if !regexp.MustCompile(`(?m)^gem ['"]` + quoted + `['"]`).MatchString(gemfile) {
		return false
	}
	return !nonProductionGroup.MatchString(linePrefix(gemfile, pkg))
}

func findGemspec(entries []string) string {
	for _, entry := range entries {
		if strings.HasSuffix(entry, gemspecSuffix) {
			return entry
		}
	}
	return ""
}

// linePrefix returns the text between the start of the line holding the first
// occurrence of pkg and that occurrence.
func linePrefix(content, pkg string) string {
	idx := strings.Index(content, pkg)
	if idx < 0 {
		return ""
	}
	head := content[:idx]
	return head[strings.LastIndex(head, "\n")+1:]
}
