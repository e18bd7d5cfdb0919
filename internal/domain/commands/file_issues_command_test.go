//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repowatch/internal/domain/commands"
	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/test/domain/entitybuilders"
	"github.com/rios0rios0/repowatch/test/infrastructure/repositorydoubles"
)

func TestFileIssuesCommand_Execute(t *testing.T) {
	t.Parallel()

	destination := entities.Repository{Owner: "o", Name: "issues"}

	t.Run("should not touch the tracker without candidates", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{}
		command := commands.NewFileIssuesCommand()

		// when
		result, err := command.Execute(context.Background(), spy, destination, nil)

		// then
		require.NoError(t, err)
		assert.Empty(t, result.Created)
		assert.Empty(t, spy.TrackerCalls)
		assert.Empty(t, spy.EnsuredLabels)
	})

	t.Run("should snapshot every label before creating in sorted order", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{}
		candidates := []entities.PendingIssue{
			entitybuilders.NewPendingIssueBuilder().
				WithType(entities.IssueTypePendingRelease).WithRepo("b/y").BuildPendingIssue(),
			entitybuilders.NewPendingIssueBuilder().WithRepo("a/x").BuildPendingIssue(),
		}
		command := commands.NewFileIssuesCommand()

		// when
		result, err := command.Execute(context.Background(), spy, destination, candidates)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			"list:ci-failure",
			"list:pending-release",
			"create:[CI Failure] a/x",
			"create:[Pending Release] b/y",
		}, spy.TrackerCalls)
		assert.Equal(t, []entities.ExistingIssue{
			{Title: "[CI Failure] a/x", Number: 1},
			{Title: "[Pending Release] b/y", Number: 2},
		}, result.Created)
		assert.Len(t, spy.EnsuredLabels, 2)
		assert.Equal(t, []string{"ci-failure"}, spy.CreatedIssues[0].Labels)
	})

	t.Run("should be idempotent across runs", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{}
		candidates := []entities.PendingIssue{
			entitybuilders.NewPendingIssueBuilder().WithRepo("a/x").BuildPendingIssue(),
		}
		command := commands.NewFileIssuesCommand()
		_, firstErr := command.Execute(context.Background(), spy, destination, candidates)
		require.NoError(t, firstErr)

		// when
		result, err := command.Execute(context.Background(), spy, destination, candidates)

		// then
		require.NoError(t, err)
		assert.Empty(t, result.Created)
		assert.Equal(t, []string{"[CI Failure] a/x"}, result.Skipped)
		assert.Len(t, spy.CreatedIssues, 1)
	})

	t.Run("should only deduplicate within the same label", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{
			OpenIssues: map[string][]entities.ExistingIssue{
				"pending-release": {{Title: "[CI Failure] a/x", Number: 7}},
			},
		}
		candidates := []entities.PendingIssue{
			entitybuilders.NewPendingIssueBuilder().WithRepo("a/x").BuildPendingIssue(),
		}
		command := commands.NewFileIssuesCommand()

		// when
		result, err := command.Execute(context.Background(), spy, destination, candidates)

		// then
		require.NoError(t, err)
		assert.Len(t, result.Created, 1)
	})

	t.Run("should file duplicates within one batch once", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{}
		issue := entitybuilders.NewPendingIssueBuilder().WithRepo("a/x").BuildPendingIssue()
		command := commands.NewFileIssuesCommand()

		// when
		result, err := command.Execute(context.Background(), spy, destination, []entities.PendingIssue{issue, issue})

		// then
		require.NoError(t, err)
		assert.Len(t, result.Created, 1)
		assert.Equal(t, []string{issue.Title}, result.Skipped)
	})

	t.Run("should assume no open issues when listing fails", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyHostingRepository{
			OpenIssuesErr:  errors.New("forbidden"),
			EnsureLabelErr: errors.New("forbidden"),
		}
		candidates := []entities.PendingIssue{
			entitybuilders.NewPendingIssueBuilder().WithRepo("a/x").BuildPendingIssue(),
		}
		command := commands.NewFileIssuesCommand()

		// when
		result, err := command.Execute(context.Background(), spy, destination, candidates)

		// then
		require.NoError(t, err)
		assert.Len(t, result.Created, 1)
	})

	t.Run("should stop at the first creation failure and keep earlier issues", func(t *testing.T) {
		t.Parallel()

		// given
		createErr := errors.New("rate limited")
		spy := &repositorydoubles.SpyHostingRepository{
			CreateErr:       createErr,
			FailCreateTitle: "[CI Failure] b/y",
		}
		candidates := []entities.PendingIssue{
			entitybuilders.NewPendingIssueBuilder().WithRepo("c/z").BuildPendingIssue(),
			entitybuilders.NewPendingIssueBuilder().WithRepo("b/y").BuildPendingIssue(),
			entitybuilders.NewPendingIssueBuilder().WithRepo("a/x").BuildPendingIssue(),
		}
		command := commands.NewFileIssuesCommand()

		// when
		result, err := command.Execute(context.Background(), spy, destination, candidates)

		// then
		require.ErrorIs(t, err, createErr)
		assert.Equal(t, []entities.ExistingIssue{{Title: "[CI Failure] a/x", Number: 1}}, result.Created)
		assert.NotContains(t, spy.TrackerCalls, "create:[CI Failure] c/z")
	})
}
