//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/repowatch/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PendingIssueBuilder helps create candidate issues with a fluent interface.
type PendingIssueBuilder struct {
	*testkit.BaseBuilder
	issueType entities.IssueType
	repo      string
	body      string
}

// NewPendingIssueBuilder creates a new builder defaulting to a CI failure of "org/repo".
func NewPendingIssueBuilder() *PendingIssueBuilder {
	return &PendingIssueBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		issueType:   entities.IssueTypeCIFailure,
		repo:        "org/repo",
		body:        "body",
	}
}

// WithType sets the issue type.
func (b *PendingIssueBuilder) WithType(issueType entities.IssueType) *PendingIssueBuilder {
	b.issueType = issueType
	return b
}

// WithRepo sets the "owner/name" the issue is about.
func (b *PendingIssueBuilder) WithRepo(repo string) *PendingIssueBuilder {
	b.repo = repo
	return b
}

// WithBody sets the issue body.
func (b *PendingIssueBuilder) WithBody(body string) *PendingIssueBuilder {
	b.body = body
	return b
}

// Build creates the issue (satisfies testkit.Builder interface).
func (b *PendingIssueBuilder) Build() interface{} {
	return b.BuildPendingIssue()
}

// BuildPendingIssue creates the issue with a concrete return type. The title
// follows the type's stable format.
func (b *PendingIssueBuilder) BuildPendingIssue() entities.PendingIssue {
	title := entities.CIFailureTitle(b.repo)
	if b.issueType == entities.IssueTypePendingRelease {
		title = entities.PendingReleaseTitle(b.repo)
	}
	return entities.PendingIssue{
		Type:  b.issueType,
		Repo:  b.repo,
		Title: title,
		Body:  b.body,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PendingIssueBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.issueType = entities.IssueTypeCIFailure
	b.repo = "org/repo"
	b.body = "body"
	return b
}

// Clone creates a deep copy of the PendingIssueBuilder.
func (b *PendingIssueBuilder) Clone() testkit.Builder {
	return &PendingIssueBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		issueType:   b.issueType,
		repo:        b.repo,
		body:        b.body,
	}
}
