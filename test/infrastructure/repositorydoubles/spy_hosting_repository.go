//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

// SpyHostingRepository implements repositories.HostingRepository as a configurable spy.
// Created issues are added to the open issues of their labels, so a second
// filing pass against the same spy sees them.
type SpyHostingRepository struct {
	mu sync.Mutex

	// --- identity ---
	ProviderName string

	// --- ListRepositories ---
	Repositories map[string][]entities.Repository
	ListErr      error
	ListedOwners []string

	// --- ListRootEntries / GetFileText ---
	RootEntries  []string
	RootErr      error
	RootRequests int
	Files        map[string]string
	FileRequests []string

	// --- GetDefaultBranch ---
	DefaultBranch    string
	DefaultBranchErr error

	// --- GetLegacyStatuses / GetCheckRuns ---
	Statuses     []entities.CommitStatus
	StatusesErr  error
	CheckRuns    []entities.CheckRun
	CheckRunsErr error
	StatusRefs   []string

	// --- GetLatestTag / CompareRefs ---
	LatestTag    string
	LatestTagErr error
	Comparison   entities.Comparison
	CompareErr   error
	Compared     [][2]string

	// --- issue tracker ---
	OpenIssues      map[string][]entities.ExistingIssue
	OpenIssuesErr   error
	EnsureLabelErr  error
	EnsuredLabels   []entities.IssueLabel
	FailCreateTitle string
	CreateErr       error
	CreatedIssues   []entities.IssueInput
	TrackerCalls    []string
	NextNumber      int
}

var _ repositories.HostingRepository = (*SpyHostingRepository)(nil)

func (p *SpyHostingRepository) Name() string {
	if p.ProviderName == "" {
		return "spy"
	}
	return p.ProviderName
}

func (p *SpyHostingRepository) ListRepositories(
	_ context.Context, owner string,
) ([]entities.Repository, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ListedOwners = append(p.ListedOwners, owner)
	if p.ListErr != nil {
		return nil, p.ListErr
	}
	return p.Repositories[owner], nil
}

func (p *SpyHostingRepository) ListRootEntries(
	_ context.Context, _ entities.Repository,
) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RootRequests++
	return p.RootEntries, p.RootErr
}

func (p *SpyHostingRepository) GetFileText(
	_ context.Context, _ entities.Repository, path string,
) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.FileRequests = append(p.FileRequests, path)
	if content, ok := p.Files[path]; ok {
		return content, nil
	}
	return "", fmt.Errorf("file not found: %s", path)
}

func (p *SpyHostingRepository) GetDefaultBranch(
	_ context.Context, _ entities.Repository,
) (string, error) {
	return p.DefaultBranch, p.DefaultBranchErr
}

func (p *SpyHostingRepository) GetLegacyStatuses(
	_ context.Context, _ entities.Repository, ref string,
) ([]entities.CommitStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StatusRefs = append(p.StatusRefs, ref)
	return p.Statuses, p.StatusesErr
}

func (p *SpyHostingRepository) GetCheckRuns(
	_ context.Context, _ entities.Repository, ref string,
) ([]entities.CheckRun, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StatusRefs = append(p.StatusRefs, ref)
	return p.CheckRuns, p.CheckRunsErr
}

func (p *SpyHostingRepository) GetLatestTag(
	_ context.Context, _ entities.Repository,
) (string, error) {
	return p.LatestTag, p.LatestTagErr
}

func (p *SpyHostingRepository) CompareRefs(
	_ context.Context, _ entities.Repository, base, head string,
) (entities.Comparison, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Compared = append(p.Compared, [2]string{base, head})
	return p.Comparison, p.CompareErr
}

func (p *SpyHostingRepository) ListOpenIssuesByLabel(
	_ context.Context, _ entities.Repository, label string,
) ([]entities.ExistingIssue, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.TrackerCalls = append(p.TrackerCalls, "list:"+label)
	if p.OpenIssuesErr != nil {
		return nil, p.OpenIssuesErr
	}
	return append([]entities.ExistingIssue(nil), p.OpenIssues[label]...), nil
}

func (p *SpyHostingRepository) CreateIssue(
	_ context.Context, _ entities.Repository, input entities.IssueInput,
) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.TrackerCalls = append(p.TrackerCalls, "create:"+input.Title)
	if p.CreateErr != nil && (p.FailCreateTitle == "" || p.FailCreateTitle == input.Title) {
		return 0, p.CreateErr
	}

	p.NextNumber++
	p.CreatedIssues = append(p.CreatedIssues, input)
	if p.OpenIssues == nil {
		p.OpenIssues = make(map[string][]entities.ExistingIssue)
	}
	for _, label := range input.Labels {
		p.OpenIssues[label] = append(p.OpenIssues[label], entities.ExistingIssue{
			Title:  input.Title,
			Number: p.NextNumber,
		})
	}
	return p.NextNumber, nil
}

func (p *SpyHostingRepository) EnsureLabel(
	_ context.Context, _ entities.Repository, label entities.IssueLabel,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.EnsuredLabels = append(p.EnsuredLabels, label)
	return p.EnsureLabelErr
}

func (p *SpyHostingRepository) Links(repo entities.Repository) entities.RepositoryLinks {
	home := "https://example.com/" + repo.FullName()
	return entities.RepositoryLinks{
		Home:     home,
		CI:       home + "/actions",
		Releases: home + "/releases",
	}
}

func (p *SpyHostingRepository) CompareURL(repo entities.Repository, base, head string) string {
	return fmt.Sprintf("https://example.com/%s/compare/%s...%s", repo.FullName(), base, head)
}
