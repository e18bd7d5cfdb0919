//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/repowatch/internal/domain/commands"
	"github.com/rios0rios0/repowatch/internal/domain/entities"
	infraRepos "github.com/rios0rios0/repowatch/internal/infrastructure/repositories"
	"github.com/rios0rios0/repowatch/test/infrastructure/repositorydoubles"
)

func newReleaseCommand(classifier *repositorydoubles.StubClassifierRepository) *commands.ReleaseCommand {
	registry := infraRepos.NewClassifierRegistry()
	if classifier != nil {
		registry.Register(classifier)
	}
	return commands.NewReleaseCommand(registry)
}

func TestReleaseCommand_Execute(t *testing.T) {
	t.Parallel()

	repo := entities.Repository{Owner: "o", Name: "r"}
	manifests := &repositorydoubles.StubManifestReader{}

	t.Run("should report no-tag for untagged repositories", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{LatestTagErr: errors.New("404"), DefaultBranch: "main"}
		command := newReleaseCommand(nil)

		// when
		status := command.Execute(context.Background(), spy, manifests, repo, entities.ProjectTypeNode, entities.ClassifyOptions{})

		// then
		assert.Equal(t, entities.ReleaseStateNoTag, status.State)
		assert.Empty(t, spy.Compared)
	})

	t.Run("should report up-to-date when the default branch is unknown", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{LatestTag: "v1.0.0"}
		command := newReleaseCommand(nil)

		// when
		status := command.Execute(context.Background(), spy, manifests, repo, entities.ProjectTypeNode, entities.ClassifyOptions{})

		// then
		assert.Equal(t, entities.ReleaseStateUpToDate, status.State)
	})

	t.Run("should report up-to-date when nothing changed since the tag, whatever the project type", func(t *testing.T) {
		t.Parallel()

		projectTypes := []entities.ProjectType{
			entities.ProjectTypeRuby,
			entities.ProjectTypeNode,
			entities.ProjectTypeRust,
			entities.ProjectTypeKotlin,
			entities.ProjectTypeGo,
			entities.ProjectTypeSwift,
			entities.ProjectTypeUnknown,
		}

		for _, projectType := range projectTypes {
			t.Run(string(projectType), func(t *testing.T) {
				t.Parallel()

				// given
				spy := &repositorydoubles.SpyHostingRepository{LatestTag: "v1.0.0", DefaultBranch: "main"}
				command := newReleaseCommand(nil)

				// when
				status := command.Execute(context.Background(), spy, manifests, repo, projectType, entities.ClassifyOptions{})

				// then
				assert.Equal(t, entities.ReleaseStateUpToDate, status.State)
				assert.Empty(t, status.Reasons)
				assert.Equal(t, [][2]string{{"v1.0.0", "main"}}, spy.Compared)
			})
		}
	})

	t.Run("should ignore changes outside the source layout", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{
			LatestTag:     "v1.0.0",
			DefaultBranch: "main",
			Comparison: entities.Comparison{
				Files:          []string{"README.md", ".github/workflows/ci.yml"},
				CommitMessages: []string{"docs: typo", "Bump jest from 29.0.0 to 29.1.0"},
			},
		}
		classifier := &repositorydoubles.StubClassifierRepository{Type: entities.ProjectTypeNode}
		command := newReleaseCommand(classifier)

		// when
		status := command.Execute(context.Background(), spy, manifests, repo, entities.ProjectTypeNode, entities.ClassifyOptions{})

		// then
		assert.Equal(t, entities.ReleaseStateUpToDate, status.State)
		assert.Equal(t, []string{"jest"}, classifier.Asked)
	})

	t.Run("should report source changes and production bumps in commit order", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{
			LatestTag:     "v1.0.0",
			DefaultBranch: "main",
			Comparison: entities.Comparison{
				Files: []string{"src/index.js", "test/index.test.js"},
				CommitMessages: []string{
					"Bump left-pad from 1.0.0 to 1.3.0",
					"Bump jest from 29.0.0 to 29.1.0",
					"Bump express from 4.18.0 to 4.19.2\n\nSigned-off-by: dependabot",
				},
			},
		}
		classifier := &repositorydoubles.StubClassifierRepository{
			Type:       entities.ProjectTypeNode,
			Production: map[string]bool{"left-pad": true, "express": true},
		}
		command := newReleaseCommand(classifier)
		opts := entities.ClassifyOptions{Structural: true}

		// when
		status := command.Execute(context.Background(), spy, manifests, repo, entities.ProjectTypeNode, opts)

		// then
		assert.Equal(t, entities.ReleaseStatePending, status.State)
		assert.Equal(t, "**Source code changes:**\n- `src/index.js`\n\n"+
			"**Dependency updates:**\n- left-pad 1.0.0 -> 1.3.0\n- express 4.18.0 -> 4.19.2", status.Reasons)
		assert.Equal(t, "https://example.com/o/r/compare/v1.0.0...main", status.CompareURL)
		assert.True(t, classifier.LastOpts.Structural)
	})

	t.Run("should accept every bump for unknown project types", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{
			LatestTag:     "v1.0.0",
			DefaultBranch: "main",
			Comparison: entities.Comparison{
				Files:          []string{"docs/index.md"},
				CommitMessages: []string{"Bump anything from 1 to 2"},
			},
		}
		command := newReleaseCommand(nil)

		// when
		status := command.Execute(context.Background(), spy, manifests, repo, entities.ProjectTypeUnknown, entities.ClassifyOptions{})

		// then
		assert.Equal(t, entities.ReleaseStatePending, status.State)
		assert.Equal(t, "**Dependency updates:**\n- anything 1 -> 2", status.Reasons)
	})
}
