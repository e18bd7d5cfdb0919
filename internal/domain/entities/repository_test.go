//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
)

func TestParseRepository(t *testing.T) {
	t.Parallel()

	t.Run("should split owner and name", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "unhappychoice/oss-issue-opener"

		// when
		repo, err := entities.ParseRepository(raw)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.Repository{Owner: "unhappychoice", Name: "oss-issue-opener"}, repo)
		assert.Equal(t, raw, repo.FullName())
	})

	t.Run("should keep nested namespaces in the owner", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "group/subgroup/project"

		// when
		repo, err := entities.ParseRepository(raw)

		// then
		require.NoError(t, err)
		assert.Equal(t, "group/subgroup", repo.Owner)
		assert.Equal(t, "project", repo.Name)
	})

	t.Run("should reject malformed references", func(t *testing.T) {
		t.Parallel()

		// given
		inputs := []string{"", "owner", "/name", "owner/"}

		for _, raw := range inputs {
			// when
			_, err := entities.ParseRepository(raw)

			// then
			require.ErrorIs(t, err, entities.ErrInvalidRepository, raw)
		}
	})
}
