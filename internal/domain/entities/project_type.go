package entities

import "regexp"

// ProjectType is the ecosystem a repository is detected to use.
type ProjectType string

const (
	ProjectTypeRuby    ProjectType = "ruby"
	ProjectTypeNode    ProjectType = "node"
	ProjectTypeRust    ProjectType = "rust"
	ProjectTypeKotlin  ProjectType = "kotlin"
	ProjectTypeGo      ProjectType = "go"
	ProjectTypeSwift   ProjectType = "swift"
	ProjectTypeUnknown ProjectType = "unknown"
)

type projectRule struct {
	pattern     *regexp.Regexp
	projectType ProjectType
}

// projectRules is evaluated in order; the first rule matching any root entry wins.
//
//nolint:gochecknoglobals // immutable detection table
var projectRules = []projectRule{
	{pattern: regexp.MustCompile(`^Cargo\.toml$`), projectType: ProjectTypeRust},
	{pattern: regexp.MustCompile(`^package\.json$`), projectType: ProjectTypeNode},
	{pattern: regexp.MustCompile(`\.gemspec$`), projectType: ProjectTypeRuby},
	{pattern: regexp.MustCompile(`^build\.gradle(\.kts)?$`), projectType: ProjectTypeKotlin},
	{pattern: regexp.MustCompile(`^go\.mod$`), projectType: ProjectTypeGo},
	{pattern: regexp.MustCompile(`^Package\.swift$`), projectType: ProjectTypeSwift},
}

//nolint:gochecknoglobals // immutable lookup table
var sourcePatterns = map[ProjectType]*regexp.Regexp{
	ProjectTypeRuby:    regexp.MustCompile(`^lib/`),
	ProjectTypeNode:    regexp.MustCompile(`^(src|lib)/`),
	ProjectTypeRust:    regexp.MustCompile(`^src/`),
	ProjectTypeKotlin:  regexp.MustCompile(`^(src|app/src)/`),
	ProjectTypeGo:      regexp.MustCompile(`\.go$`),
	ProjectTypeSwift:   regexp.MustCompile(`^Sources/`),
	ProjectTypeUnknown: regexp.MustCompile(`^src/`),
}

// DetectProjectType classifies a repository from the names of its root entries.
// Rule order matters: a repository with both Cargo.toml and package.json is rust.
func DetectProjectType(entries []string) ProjectType {
	for _, rule := range projectRules {
		for _, entry := range entries {
			if rule.pattern.MatchString(entry) {
				return rule.projectType
			}
		}
	}
	return ProjectTypeUnknown
}

// SourcePattern returns the pattern that marks a changed path as source code.
func SourcePattern(projectType ProjectType) *regexp.Regexp {
	if pattern, ok := sourcePatterns[projectType]; ok {
		return pattern
	}
	return sourcePatterns[ProjectTypeUnknown]
}

// IsSourcePath reports whether a changed path counts as a source change for the project type.
func (t ProjectType) IsSourcePath(path string) bool {
	return SourcePattern(t).MatchString(path)
}
