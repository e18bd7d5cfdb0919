package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

const (
	providerName     = "github"
	perPage          = 100
	organizationType = "Organization"
	publicWebURL     = "https://github.com"
	issueStateOpen   = "open"
)

// GitHubHostingRepository implements repositories.HostingRepository for GitHub.
type GitHubHostingRepository struct {
	client *gh.Client
	webURL string
}

// NewHostingRepository creates a GitHub hosting client. A non-empty baseURL
// points it at a GitHub Enterprise Server API.
func NewHostingRepository(token, baseURL string) (repositories.HostingRepository, error) {
	client := gh.NewClient(nil).WithAuthToken(token)
	if baseURL == "" {
		return newHostingRepository(client, publicWebURL), nil
	}

	enterpriseClient, err := client.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub Enterprise URL %q: %w", baseURL, err)
	}
	return newHostingRepository(enterpriseClient, webURLFromAPI(baseURL)), nil
}

func newHostingRepository(client *gh.Client, webURL string) *GitHubHostingRepository {
	return &GitHubHostingRepository{
		client: client,
		webURL: strings.TrimSuffix(webURL, "/"),
	}
}

func (it *GitHubHostingRepository) Name() string { return providerName }

// ListRepositories lists public, non-archived repositories of an organization,
// or the non-private, non-archived repositories a user owns.
func (it *GitHubHostingRepository) ListRepositories(
	ctx context.Context,
	owner string,
) ([]entities.Repository, error) {
	account, _, err := it.client.Users.Get(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account %q: %w", owner, err)
	}

	if account.GetType() == organizationType {
		return it.listOrganizationRepositories(ctx, owner)
	}
	return it.listUserRepositories(ctx, owner)
}

func (it *GitHubHostingRepository) listOrganizationRepositories(
	ctx context.Context,
	org string,
) ([]entities.Repository, error) {
	var result []entities.Repository
	opts := &gh.RepositoryListByOrgOptions{
		Type:        "public",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := it.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repos for organization %q: %w", org, err)
		}

		for _, r := range repos {
			if r.GetArchived() {
				continue
			}
			result = append(result, toRepository(r, org))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func (it *GitHubHostingRepository) listUserRepositories(
	ctx context.Context,
	user string,
) ([]entities.Repository, error) {
	var result []entities.Repository
	opts := &gh.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := it.client.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repos for user %q: %w", user, err)
		}

		for _, r := range repos {
			if r.GetArchived() || r.GetPrivate() {
				continue
			}
			result = append(result, toRepository(r, user))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func (it *GitHubHostingRepository) ListRootEntries(
	ctx context.Context,
	repo entities.Repository,
) ([]string, error) {
	_, dirContent, _, err := it.client.Repositories.GetContents(
		ctx, repo.Owner, repo.Name, "", &gh.RepositoryContentGetOptions{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list root of %s: %w", repo, err)
	}

	names := make([]string, 0, len(dirContent))
	for _, entry := range dirContent {
		names = append(names, entry.GetName())
	}
	return names, nil
}

func (it *GitHubHostingRepository) GetFileText(
	ctx context.Context,
	repo entities.Repository,
	path string,
) (string, error) {
	fileContent, _, _, err := it.client.Repositories.GetContents(
		ctx, repo.Owner, repo.Name, path, &gh.RepositoryContentGetOptions{},
	)
	if err != nil {
		return "", fmt.Errorf("failed to get file %q: %w", path, err)
	}
	if fileContent == nil {
		return "", nil
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode file %q: %w", path, err)
	}
	return content, nil
}

func (it *GitHubHostingRepository) GetDefaultBranch(
	ctx context.Context,
	repo entities.Repository,
) (string, error) {
	r, _, err := it.client.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		return "", fmt.Errorf("failed to get repository %s: %w", repo, err)
	}
	return r.GetDefaultBranch(), nil
}

func (it *GitHubHostingRepository) GetLegacyStatuses(
	ctx context.Context,
	repo entities.Repository,
	ref string,
) ([]entities.CommitStatus, error) {
	combined, _, err := it.client.Repositories.GetCombinedStatus(
		ctx, repo.Owner, repo.Name, ref, &gh.ListOptions{PerPage: perPage},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get combined status for %s@%s: %w", repo, ref, err)
	}

	statuses := make([]entities.CommitStatus, 0, len(combined.Statuses))
	for _, s := range combined.Statuses {
		statuses = append(statuses, entities.CommitStatus{
			State:     s.GetState(),
			Context:   s.GetContext(),
			TargetURL: s.GetTargetURL(),
		})
	}
	return statuses, nil
}

func (it *GitHubHostingRepository) GetCheckRuns(
	ctx context.Context,
	repo entities.Repository,
	ref string,
) ([]entities.CheckRun, error) {
	var runs []entities.CheckRun
	opts := &gh.ListCheckRunsOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		result, resp, err := it.client.Checks.ListCheckRunsForRef(ctx, repo.Owner, repo.Name, ref, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list check runs for %s@%s: %w", repo, ref, err)
		}

		for _, run := range result.CheckRuns {
			detailsURL := run.GetHTMLURL()
			if detailsURL == "" {
				detailsURL = run.GetDetailsURL()
			}
			runs = append(runs, entities.CheckRun{
				Name:       run.GetName(),
				Status:     run.GetStatus(),
				Conclusion: run.GetConclusion(),
				DetailsURL: detailsURL,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return runs, nil
}

// GetLatestTag returns the tag of the latest release, or the first tag the API
// lists when the repository has no release.
func (it *GitHubHostingRepository) GetLatestTag(
	ctx context.Context,
	repo entities.Repository,
) (string, error) {
	release, _, releaseErr := it.client.Repositories.GetLatestRelease(ctx, repo.Owner, repo.Name)
	if releaseErr == nil && release.GetTagName() != "" {
		return release.GetTagName(), nil
	}

	tags, _, err := it.client.Repositories.ListTags(ctx, repo.Owner, repo.Name, &gh.ListOptions{PerPage: 1})
	if err != nil {
		return "", fmt.Errorf("failed to list tags for %s: %w", repo, errors.Join(releaseErr, err))
	}
	if len(tags) == 0 {
		return "", nil
	}
	return tags[0].GetName(), nil
}

// CompareRefs pages through every commit between base and head. The changed
// files are only listed on the first page.
func (it *GitHubHostingRepository) CompareRefs(
	ctx context.Context,
	repo entities.Repository,
	base, head string,
) (entities.Comparison, error) {
	var result entities.Comparison
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		comparison, resp, err := it.client.Repositories.CompareCommits(
			ctx, repo.Owner, repo.Name, base, head, opts,
		)
		if err != nil {
			return entities.Comparison{}, fmt.Errorf("failed to compare %s...%s: %w", base, head, err)
		}

		if result.Files == nil {
			result.Files = make([]string, 0, len(comparison.Files))
			for _, file := range comparison.Files {
				result.Files = append(result.Files, file.GetFilename())
			}
		}
		for _, commit := range comparison.Commits {
			result.CommitMessages = append(result.CommitMessages, commit.GetCommit().GetMessage())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// ListOpenIssuesByLabel returns every open issue carrying the label. Pull
// requests, which the issues API also returns, are left out.
func (it *GitHubHostingRepository) ListOpenIssuesByLabel(
	ctx context.Context,
	repo entities.Repository,
	label string,
) ([]entities.ExistingIssue, error) {
	var result []entities.ExistingIssue
	opts := &gh.IssueListByRepoOptions{
		State:       issueStateOpen,
		Labels:      []string{label},
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		issues, resp, err := it.client.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list %q issues in %s: %w", label, repo, err)
		}

		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			result = append(result, entities.ExistingIssue{
				Title:  issue.GetTitle(),
				Number: issue.GetNumber(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func (it *GitHubHostingRepository) CreateIssue(
	ctx context.Context,
	repo entities.Repository,
	input entities.IssueInput,
) (int, error) {
	labels := input.Labels
	issue, _, err := it.client.Issues.Create(ctx, repo.Owner, repo.Name, &gh.IssueRequest{
		Title:  gh.String(input.Title),
		Body:   gh.String(input.Body),
		Labels: &labels,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create issue %q in %s: %w", input.Title, repo, err)
	}
	return issue.GetNumber(), nil
}

func (it *GitHubHostingRepository) EnsureLabel(
	ctx context.Context,
	repo entities.Repository,
	label entities.IssueLabel,
) error {
	_, resp, err := it.client.Issues.GetLabel(ctx, repo.Owner, repo.Name, label.Name)
	if err == nil {
		return nil
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("failed to get label %q: %w", label.Name, err)
	}

	_, _, err = it.client.Issues.CreateLabel(ctx, repo.Owner, repo.Name, &gh.Label{
		Name:        gh.String(label.Name),
		Color:       gh.String(label.Color),
		Description: gh.String(label.Description),
	})
	if err != nil {
		return fmt.Errorf("failed to create label %q: %w", label.Name, err)
	}
	return nil
}

func (it *GitHubHostingRepository) Links(repo entities.Repository) entities.RepositoryLinks {
	home := it.webURL + "/" + repo.FullName()
	return entities.RepositoryLinks{
		Home:     home,
		CI:       home + "/actions",
		Releases: home + "/releases",
	}
}

func (it *GitHubHostingRepository) CompareURL(repo entities.Repository, base, head string) string {
	return fmt.Sprintf("%s/%s/compare/%s...%s", it.webURL, repo.FullName(), base, head)
}

func toRepository(r *gh.Repository, fallbackOwner string) entities.Repository {
	owner := r.GetOwner().GetLogin()
	if owner == "" {
		owner = fallbackOwner
	}
	return entities.Repository{Owner: owner, Name: r.GetName()}
}

// webURLFromAPI derives the web root of a GitHub Enterprise Server from its API URL.
func webURLFromAPI(baseURL string) string {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	return parsed.Scheme + "://" + parsed.Host
}
