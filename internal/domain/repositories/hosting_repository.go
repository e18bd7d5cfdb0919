package repositories

import (
	"context"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
)

// HostingRepository abstracts the code hosting service that is scanned and
// that receives the tracking issues. Read methods return errors; callers in the
// domain layer decide how to degrade.
type HostingRepository interface {
	// Name returns the provider identifier (e.g. "github", "gitlab").
	Name() string

	// ListRepositories returns the public, non-archived repositories of an
	// organization or user. Private repositories of a user are excluded.
	ListRepositories(ctx context.Context, owner string) ([]entities.Repository, error)

	// ListRootEntries returns the names of files and directories at the repository root.
	ListRootEntries(ctx context.Context, repo entities.Repository) ([]string, error)

	// GetFileText returns the text of a file on the default branch.
	GetFileText(ctx context.Context, repo entities.Repository, path string) (string, error)

	// GetDefaultBranch returns the default branch, or "" when the repository has none.
	GetDefaultBranch(ctx context.Context, repo entities.Repository) (string, error)

	GetLegacyStatuses(ctx context.Context, repo entities.Repository, ref string) ([]entities.CommitStatus, error)
	GetCheckRuns(ctx context.Context, repo entities.Repository, ref string) ([]entities.CheckRun, error)

	// GetLatestTag returns the tag of the latest release, falling back to the
	// most recent tag. It returns "" when neither exists.
	GetLatestTag(ctx context.Context, repo entities.Repository) (string, error)

	CompareRefs(ctx context.Context, repo entities.Repository, base, head string) (entities.Comparison, error)

	ListOpenIssuesByLabel(ctx context.Context, repo entities.Repository, label string) ([]entities.ExistingIssue, error)

	// CreateIssue files an issue and returns its number.
	CreateIssue(ctx context.Context, repo entities.Repository, input entities.IssueInput) (int, error)

	// EnsureLabel creates the label when it does not exist yet.
	EnsureLabel(ctx context.Context, repo entities.Repository, label entities.IssueLabel) error

	// Links returns the web locations of a repository.
	Links(repo entities.Repository) entities.RepositoryLinks

	// CompareURL returns the web link showing the changes between two refs.
	CompareURL(repo entities.Repository, base, head string) string
}
