//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/test/domain/entitybuilders"
)

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestResolveToken(t *testing.T) {
	t.Run("should return inline token unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "ghp_abc123xyz"

		// when
		result := entities.ResolveToken(raw)

		// then
		assert.Equal(t, "ghp_abc123xyz", result)
	})

	t.Run("should expand environment variable references", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("REPOWATCH_TEST_TOKEN", "secret")

		// when
		result := entities.ResolveToken("${REPOWATCH_TEST_TOKEN}")

		// then
		assert.Equal(t, "secret", result)
	})

	t.Run("should read the token from a file path", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))

		// when
		result := entities.ResolveToken(path)

		// then
		assert.Equal(t, "from-file", result)
	})
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestNewSettings(t *testing.T) {
	t.Run("should load a settings file", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("REPOWATCH_TEST_GH", "gh-secret")
		path := filepath.Join(t.TempDir(), "repowatch.yaml")
		content := `provider:
  type: github
  token: ${REPOWATCH_TEST_GH}
organizations:
  - unhappychoice
  - irasutoya-tools
issue_repository: unhappychoice/oss-issue-opener
classification:
  structural: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "gh-secret", settings.Provider.Token)
		assert.Equal(t, []string{"unhappychoice", "irasutoya-tools"}, settings.Organizations)
		assert.Equal(t, "unhappychoice/oss-issue-opener", settings.IssueRepository)
		assert.True(t, settings.ClassifyOptions().Structural)
		require.NoError(t, settings.Validate())
	})

	t.Run("should default to github without a file", func(t *testing.T) {
		t.Parallel()

		// given
		path := ""

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ProviderGitHub, settings.Provider.Type)
	})

	t.Run("should fail on invalid YAML", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "repowatch.yaml")
		require.NoError(t, os.WriteFile(path, []byte("provider: [unclosed"), 0o600))

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestSettingsValidate(t *testing.T) {
	t.Run("should fail without any token", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("GH_TOKEN", "")
		t.Setenv("GITHUB_TOKEN", "")
		settings := entitybuilders.NewSettingsBuilder().WithToken("").BuildSettings()

		// when
		err := settings.Validate()

		// then
		require.ErrorIs(t, err, entities.ErrMissingToken)
	})

	t.Run("should fall back to GH_TOKEN", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("GH_TOKEN", "env-token")
		settings := entitybuilders.NewSettingsBuilder().WithToken("").BuildSettings()

		// when
		err := settings.Validate()

		// then
		require.NoError(t, err)
		assert.Equal(t, "env-token", settings.Provider.Token)
	})

	t.Run("should reject unknown providers", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entitybuilders.NewSettingsBuilder().WithProvider("bitbucket").BuildSettings()

		// when
		err := settings.Validate()

		// then
		require.Error(t, err)
	})

	t.Run("should require organizations and a destination", func(t *testing.T) {
		t.Parallel()

		// given
		noOrgs := entitybuilders.NewSettingsBuilder().WithOrganizations().BuildSettings()
		badDestination := entitybuilders.NewSettingsBuilder().WithIssueRepository("nope").BuildSettings()

		// when
		noOrgsErr := noOrgs.Validate()
		badDestinationErr := badDestination.Validate()

		// then
		require.Error(t, noOrgsErr)
		require.ErrorIs(t, badDestinationErr, entities.ErrInvalidRepository)
		assert.NoError(t, noOrgs.ValidateProvider())
	})

	t.Run("should let overrides replace file values", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		settings.Apply(entities.SettingsOverrides{
			Provider:        entities.ProviderGitLab,
			Token:           "cli-token",
			Organizations:   []string{"other"},
			IssueRepository: "other/issues",
		})

		// then
		assert.Equal(t, entities.ProviderGitLab, settings.Provider.Type)
		assert.Equal(t, "cli-token", settings.Provider.Token)
		assert.Equal(t, []string{"other"}, settings.Organizations)
		assert.Equal(t, "other/issues", settings.IssueRepository)
	})
}
