package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"
)

var (
	// ErrConfigNotFound is returned when no settings file exists in the default locations.
	ErrConfigNotFound = errors.New("config file not found in default locations")
	// ErrMissingToken is returned when no credential could be resolved for the provider.
	ErrMissingToken = errors.New("provider token is required")
)

// Settings is the top-level configuration for repowatch.
type Settings struct {
	Provider        ProviderSettings       `yaml:"provider"`
	Organizations   []string               `yaml:"organizations"`
	IssueRepository string                 `yaml:"issue_repository"`
	Classification  ClassificationSettings `yaml:"classification"`
}

// ProviderSettings describes the hosting service that is scanned and receives the issues.
type ProviderSettings struct {
	Type    string `yaml:"type"`     // "github" or "gitlab"
	Token   string `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
	BaseURL string `yaml:"base_url"` // Enterprise or self-hosted API endpoint
}

// ClassificationSettings holds dependency classification switches.
type ClassificationSettings struct {
	Structural bool `yaml:"structural"`
}

// SettingsOverrides are command-line values that take precedence over the file.
type SettingsOverrides struct {
	Provider        string
	Token           string
	Organizations   []string
	IssueRepository string
}

//nolint:gochecknoglobals // compiled once
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

//nolint:gochecknoglobals // fallback variables per provider, in lookup order
var tokenEnvVars = map[string][]string{
	ProviderGitHub: {"GH_TOKEN", "GITHUB_TOKEN"},
	ProviderGitLab: {"GITLAB_TOKEN"},
}

// NewSettings reads and parses a settings file, expanding environment
// variables and resolving token file paths. An empty path yields defaults
// that must be completed by overrides.
func NewSettings(path string) (*Settings, error) {
	settings := &Settings{Provider: ProviderSettings{Type: ProviderGitHub}}
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}
	if settings.Provider.Type == "" {
		settings.Provider.Type = ProviderGitHub
	}

	settings.Provider.Token = ResolveToken(settings.Provider.Token)
	return settings, nil
}

// Apply merges command-line overrides into the settings.
func (s *Settings) Apply(overrides SettingsOverrides) {
	if overrides.Provider != "" {
		s.Provider.Type = overrides.Provider
	}
	if overrides.Token != "" {
		s.Provider.Token = ResolveToken(overrides.Token)
	}
	if len(overrides.Organizations) > 0 {
		s.Organizations = overrides.Organizations
	}
	if overrides.IssueRepository != "" {
		s.IssueRepository = overrides.IssueRepository
	}
}

// ValidateProvider completes the token from the environment and checks that
// the provider can be reached.
func (s *Settings) ValidateProvider() error {
	if s.Provider.Token == "" {
		s.Provider.Token = TokenFromEnv(s.Provider.Type)
	}

	if _, known := tokenEnvVars[s.Provider.Type]; !known {
		return fmt.Errorf("provider.type %q is not supported (use github or gitlab)", s.Provider.Type)
	}
	if s.Provider.Token == "" {
		return fmt.Errorf(
			"%w (set provider.token inline, via ${ENV_VAR}, as file path, or export %s)",
			ErrMissingToken, strings.Join(tokenEnvVars[s.Provider.Type], " or "),
		)
	}
	return nil
}

// Validate checks everything a full run needs.
func (s *Settings) Validate() error {
	if err := s.ValidateProvider(); err != nil {
		return err
	}
	if len(s.Organizations) == 0 {
		return errors.New("organizations must have at least one entry")
	}
	if _, err := ParseRepository(s.IssueRepository); err != nil {
		return fmt.Errorf("issue_repository: %w", err)
	}
	return nil
}

// ClassifyOptions derives the classification options from the settings.
func (s *Settings) ClassifyOptions() ClassifyOptions {
	return ClassifyOptions{Structural: s.Classification.Structural}
}

// FindConfigFile searches for a settings file in standard locations.
// Returns the path to the first file found or ErrConfigNotFound.
func FindConfigFile() (string, error) {
	locations := []string{".", ".config", "configs"}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".repowatch.yaml",
		".repowatch.yml",
		"repowatch.yaml",
		"repowatch.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}

// ResolveToken expands ${VAR} references and, if the result is a path to an
// existing file, reads the token from that file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}
	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// TokenFromEnv returns the first non-empty well-known token variable for the provider.
func TokenFromEnv(providerType string) string {
	for _, name := range tokenEnvVars[providerType] {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}
