package entities

import (
	"fmt"
	"sort"
	"strings"
)

// IssueType classifies a tracking issue. It doubles as the issue label.
type IssueType string

const (
	IssueTypeCIFailure      IssueType = "ci-failure"
	IssueTypePendingRelease IssueType = "pending-release"
)

// IssueLabel describes how the label for an issue type looks in the tracker.
type IssueLabel struct {
	Name        string
	Color       string
	Description string
}

//nolint:gochecknoglobals // immutable label table
var issueLabels = map[IssueType]IssueLabel{
	IssueTypeCIFailure: {
		Name:        string(IssueTypeCIFailure),
		Color:       "d73a4a",
		Description: "CI build is failing",
	},
	IssueTypePendingRelease: {
		Name:        string(IssueTypePendingRelease),
		Color:       "0075ca",
		Description: "Repository may need a new release",
	},
}

// IssueTypes returns the known issue types in canonical order.
func IssueTypes() []IssueType {
	return []IssueType{IssueTypeCIFailure, IssueTypePendingRelease}
}

// Label returns the tracker label for the issue type.
func (t IssueType) Label() IssueLabel {
	if label, ok := issueLabels[t]; ok {
		return label
	}
	return IssueLabel{Name: string(t)}
}

// PendingIssue is a candidate tracking issue produced by a scan.
// Title is the identity key used for deduplication within its type.
type PendingIssue struct {
	Type  IssueType
	Repo  string
	Title string
	Body  string
}

// ExistingIssue is an open issue already present in the tracker.
type ExistingIssue struct {
	Title  string
	Number int
}

// IssueInput is what gets sent to the tracker when filing an issue.
type IssueInput struct {
	Title  string
	Body   string
	Labels []string
}

// ToInput converts the candidate into a creation request labeled with its type.
func (i PendingIssue) ToInput() IssueInput {
	return IssueInput{Title: i.Title, Body: i.Body, Labels: []string{string(i.Type)}}
}

// CIFailureTitle is the stable title for a failing-CI issue.
func CIFailureTitle(repo string) string {
	return "[CI Failure] " + repo
}

// PendingReleaseTitle is the stable title for a pending-release issue.
func PendingReleaseTitle(repo string) string {
	return "[Pending Release] " + repo
}

// NewCIFailureIssue builds the issue for a repository whose default branch is failing.
func NewCIFailureIssue(repo string, failed []FailedCheck, links RepositoryLinks) PendingIssue {
	checks := make([]string, 0, len(failed))
	for _, check := range failed {
		if check.URL != "" {
			checks = append(checks, fmt.Sprintf("- [%s](%s)", check.Name, check.URL))
			continue
		}
		checks = append(checks, "- "+check.Name)
	}

	body := fmt.Sprintf(`CI is failing on the default branch.

**Failed checks:**
%s

**Repository**: %s
**Actions**: %s`, strings.Join(checks, "\n"), links.Home, links.CI)

	return PendingIssue{
		Type:  IssueTypeCIFailure,
		Repo:  repo,
		Title: CIFailureTitle(repo),
		Body:  body,
	}
}

// NewPendingReleaseIssue builds the issue for a repository with unreleased changes.
func NewPendingReleaseIssue(repo string, status ReleaseStatus, links RepositoryLinks) PendingIssue {
	body := fmt.Sprintf(`Changes since last release:

%s

**Diff**: %s
**Releases**: %s`, status.Reasons, status.CompareURL, links.Releases)

	return PendingIssue{
		Type:  IssueTypePendingRelease,
		Repo:  repo,
		Title: PendingReleaseTitle(repo),
		Body:  body,
	}
}

// SortIssues returns a copy ordered by type, then repository.
func SortIssues(issues []PendingIssue) []PendingIssue {
	sorted := make([]PendingIssue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Type != sorted[j].Type {
			return sorted[i].Type < sorted[j].Type
		}
		return sorted[i].Repo < sorted[j].Repo
	})
	return sorted
}

// FilingResult records what a filing pass did.
type FilingResult struct {
	Created []ExistingIssue
	Skipped []string
}
