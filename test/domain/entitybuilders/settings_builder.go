//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/repowatch/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	providerType    string
	token           string
	organizations   []string
	issueRepository string
	structural      bool
}

// NewSettingsBuilder creates a builder for a valid GitHub configuration.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder:     testkit.NewBaseBuilder(),
		providerType:    entities.ProviderGitHub,
		token:           "test-token",
		organizations:   []string{"test-org"},
		issueRepository: "test-org/issues",
	}
}

// WithProvider sets the provider type.
func (b *SettingsBuilder) WithProvider(providerType string) *SettingsBuilder {
	b.providerType = providerType
	return b
}

// WithToken sets the provider token.
func (b *SettingsBuilder) WithToken(token string) *SettingsBuilder {
	b.token = token
	return b
}

// WithOrganizations sets the organizations to scan.
func (b *SettingsBuilder) WithOrganizations(organizations ...string) *SettingsBuilder {
	b.organizations = organizations
	return b
}

// WithIssueRepository sets the destination repository.
func (b *SettingsBuilder) WithIssueRepository(repo string) *SettingsBuilder {
	b.issueRepository = repo
	return b
}

// WithStructural toggles structural manifest classification.
func (b *SettingsBuilder) WithStructural(structural bool) *SettingsBuilder {
	b.structural = structural
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		Provider: entities.ProviderSettings{
			Type:  b.providerType,
			Token: b.token,
		},
		Organizations:   append([]string(nil), b.organizations...),
		IssueRepository: b.issueRepository,
		Classification:  entities.ClassificationSettings{Structural: b.structural},
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.providerType = entities.ProviderGitHub
	b.token = "test-token"
	b.organizations = []string{"test-org"}
	b.issueRepository = "test-org/issues"
	b.structural = false
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		providerType:    b.providerType,
		token:           b.token,
		organizations:   append([]string(nil), b.organizations...),
		issueRepository: b.issueRepository,
		structural:      b.structural,
	}
}
