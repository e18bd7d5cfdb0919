//go:build unit

package gitlab //nolint:testpackage // exercises unexported mapping helpers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
)

func TestCommitState(t *testing.T) {
	t.Parallel()

	t.Run("should map job statuses onto signal states", func(t *testing.T) {
		t.Parallel()

		// given
		cases := []struct {
			status       string
			allowFailure bool
			want         entities.SignalState
		}{
			{"success", false, entities.SignalSuccess},
			{"failed", false, entities.SignalFailure},
			{"failed", true, entities.SignalSuccess},
			{"running", false, entities.SignalPending},
			{"canceled", false, entities.SignalPending},
		}

		for _, c := range cases {
			// when
			got := commitState(c.status, c.allowFailure)

			// then
			assert.Equal(t, string(c.want), got, c.status)
		}
	})
}

func TestGitLabHostingRepository_Links(t *testing.T) {
	t.Parallel()

	t.Run("should point at the self-managed web root", func(t *testing.T) {
		t.Parallel()

		// given
		hosting, err := NewHostingRepository("token", "https://gitlab.example.com/api/v4")
		require.NoError(t, err)
		repo := entities.Repository{Owner: "group/sub", Name: "project"}

		// when
		links := hosting.Links(repo)
		compareURL := hosting.CompareURL(repo, "v1.0.0", "main")

		// then
		assert.Equal(t, "gitlab", hosting.Name())
		assert.Equal(t, entities.RepositoryLinks{
			Home:     "https://gitlab.example.com/group/sub/project",
			CI:       "https://gitlab.example.com/group/sub/project/-/pipelines",
			Releases: "https://gitlab.example.com/group/sub/project/-/releases",
		}, links)
		assert.Equal(t, "https://gitlab.example.com/group/sub/project/-/compare/v1.0.0...main", compareURL)
	})
}

func newTestHosting(t *testing.T, mux *http.ServeMux) *GitLabHostingRepository {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	hosting, err := NewHostingRepository("token", server.URL+"/api/v4")
	require.NoError(t, err)
	return hosting.(*GitLabHostingRepository)
}

func TestGitLabHostingRepository_ListRepositories(t *testing.T) {
	t.Parallel()

	t.Run("should fall back to user projects when the group does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v4/groups/octo/projects", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"message":"404 Group Not Found"}`)
		})
		mux.HandleFunc("GET /api/v4/users/octo/projects", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, `[{"path":"dotfiles","path_with_namespace":"octo/dotfiles"}]`)
		})
		hosting := newTestHosting(t, mux)

		// when
		repos, err := hosting.ListRepositories(context.Background(), "octo")

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.Repository{{Owner: "octo", Name: "dotfiles"}}, repos)
	})

	t.Run("should return other group errors without trying users", func(t *testing.T) {
		t.Parallel()

		// given
		var userCalls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v4/groups/acme/projects", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = fmt.Fprint(w, `{"message":"403 Forbidden"}`)
		})
		mux.HandleFunc("GET /api/v4/users/acme/projects", func(w http.ResponseWriter, _ *http.Request) {
			userCalls.Add(1)
			_, _ = fmt.Fprint(w, `[]`)
		})
		hosting := newTestHosting(t, mux)

		// when
		repos, err := hosting.ListRepositories(context.Background(), "acme")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `group "acme"`)
		assert.Empty(t, repos)
		assert.Equal(t, int32(0), userCalls.Load())
	})
}
