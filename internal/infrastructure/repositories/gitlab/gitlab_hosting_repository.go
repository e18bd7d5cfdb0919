package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

const (
	providerName   = "gitlab"
	perPage        = 100
	publicWebURL   = "https://gitlab.com"
	issueStateOpen = "opened"
	statusSuccess  = "success"
	statusFailed   = "failed"
)

// GitLabHostingRepository implements repositories.HostingRepository for GitLab.
// GitLab has no check-run API; pipeline jobs surface as commit statuses.
type GitLabHostingRepository struct {
	client *gl.Client
	webURL string
}

// NewHostingRepository creates a GitLab hosting client. A non-empty baseURL
// points it at a self-managed instance.
func NewHostingRepository(token, baseURL string) (repositories.HostingRepository, error) {
	var opts []gl.ClientOptionFunc
	webURL := publicWebURL
	if baseURL != "" {
		opts = append(opts, gl.WithBaseURL(baseURL))
		webURL = webURLFromAPI(baseURL)
	}

	client, err := gl.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}
	return &GitLabHostingRepository{client: client, webURL: webURL}, nil
}

func (it *GitLabHostingRepository) Name() string { return providerName }

// ListRepositories lists the public, non-archived projects of a group. Only a
// missing group falls back to the projects of a user with that name.
func (it *GitLabHostingRepository) ListRepositories(
	ctx context.Context,
	owner string,
) ([]entities.Repository, error) {
	var result []entities.Repository
	opts := &gl.ListGroupProjectsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Archived:    gl.Ptr(false),
		Visibility:  gl.Ptr(gl.PublicVisibility),
	}

	for {
		projects, resp, err := it.client.Groups.ListGroupProjects(owner, opts, gl.WithContext(ctx))
		if err != nil {
			if opts.Page == 0 && resp != nil && resp.StatusCode == http.StatusNotFound {
				return it.listUserProjects(ctx, owner)
			}
			return nil, fmt.Errorf("failed to list projects for group %q: %w", owner, err)
		}

		for _, project := range projects {
			result = append(result, toRepository(project))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func (it *GitLabHostingRepository) listUserProjects(
	ctx context.Context,
	user string,
) ([]entities.Repository, error) {
	var result []entities.Repository
	opts := &gl.ListProjectsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Archived:    gl.Ptr(false),
		Visibility:  gl.Ptr(gl.PublicVisibility),
	}

	for {
		projects, resp, err := it.client.Projects.ListUserProjects(user, opts, gl.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list projects for %q: %w", user, err)
		}

		for _, project := range projects {
			result = append(result, toRepository(project))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func (it *GitLabHostingRepository) ListRootEntries(
	ctx context.Context,
	repo entities.Repository,
) ([]string, error) {
	var names []string
	opts := &gl.ListTreeOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}

	for {
		nodes, resp, err := it.client.Repositories.ListTree(repo.FullName(), opts, gl.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list root of %s: %w", repo, err)
		}

		for _, node := range nodes {
			names = append(names, node.Name)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

func (it *GitLabHostingRepository) GetFileText(
	ctx context.Context,
	repo entities.Repository,
	path string,
) (string, error) {
	raw, _, err := it.client.RepositoryFiles.GetRawFile(
		repo.FullName(), path, &gl.GetRawFileOptions{}, gl.WithContext(ctx),
	)
	if err != nil {
		return "", fmt.Errorf("failed to get file %q: %w", path, err)
	}
	return string(raw), nil
}

func (it *GitLabHostingRepository) GetDefaultBranch(
	ctx context.Context,
	repo entities.Repository,
) (string, error) {
	project, _, err := it.client.Projects.GetProject(
		repo.FullName(), &gl.GetProjectOptions{}, gl.WithContext(ctx),
	)
	if err != nil {
		return "", fmt.Errorf("failed to get project %s: %w", repo, err)
	}
	return project.DefaultBranch, nil
}

// GetLegacyStatuses returns the commit statuses of the branch head. Jobs that
// are allowed to fail are reported as successful.
func (it *GitLabHostingRepository) GetLegacyStatuses(
	ctx context.Context,
	repo entities.Repository,
	ref string,
) ([]entities.CommitStatus, error) {
	branch, _, err := it.client.Branches.GetBranch(repo.FullName(), ref, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s@%s: %w", repo, ref, err)
	}
	if branch.Commit == nil {
		return nil, nil
	}

	var statuses []entities.CommitStatus
	opts := &gl.GetCommitStatusesOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}

	for {
		page, resp, listErr := it.client.Commits.GetCommitStatuses(
			repo.FullName(), branch.Commit.ID, opts, gl.WithContext(ctx),
		)
		if listErr != nil {
			return nil, fmt.Errorf("failed to list commit statuses for %s@%s: %w", repo, ref, listErr)
		}

		for _, status := range page {
			statuses = append(statuses, entities.CommitStatus{
				State:     commitState(status.Status, status.AllowFailure),
				Context:   status.Name,
				TargetURL: status.TargetURL,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return statuses, nil
}

// GetCheckRuns always returns nothing: check runs are a GitHub concept.
func (it *GitLabHostingRepository) GetCheckRuns(
	context.Context,
	entities.Repository,
	string,
) ([]entities.CheckRun, error) {
	return nil, nil
}

func (it *GitLabHostingRepository) GetLatestTag(
	ctx context.Context,
	repo entities.Repository,
) (string, error) {
	releases, _, releaseErr := it.client.Releases.ListReleases(
		repo.FullName(),
		&gl.ListReleasesOptions{ListOptions: gl.ListOptions{PerPage: 1}},
		gl.WithContext(ctx),
	)
	if releaseErr == nil && len(releases) > 0 && releases[0].TagName != "" {
		return releases[0].TagName, nil
	}

	tags, _, err := it.client.Tags.ListTags(
		repo.FullName(),
		&gl.ListTagsOptions{ListOptions: gl.ListOptions{PerPage: 1}},
		gl.WithContext(ctx),
	)
	if err != nil {
		return "", fmt.Errorf("failed to list tags for %s: %w", repo, errors.Join(releaseErr, err))
	}
	if len(tags) == 0 {
		return "", nil
	}
	return tags[0].Name, nil
}

func (it *GitLabHostingRepository) CompareRefs(
	ctx context.Context,
	repo entities.Repository,
	base, head string,
) (entities.Comparison, error) {
	compare, _, err := it.client.Repositories.Compare(
		repo.FullName(),
		&gl.CompareOptions{From: gl.Ptr(base), To: gl.Ptr(head)},
		gl.WithContext(ctx),
	)
	if err != nil {
		return entities.Comparison{}, fmt.Errorf("failed to compare %s...%s: %w", base, head, err)
	}

	result := entities.Comparison{
		Files:          make([]string, 0, len(compare.Diffs)),
		CommitMessages: make([]string, 0, len(compare.Commits)),
	}
	for _, diff := range compare.Diffs {
		result.Files = append(result.Files, diff.NewPath)
	}
	for _, commit := range compare.Commits {
		result.CommitMessages = append(result.CommitMessages, commit.Message)
	}
	return result, nil
}

func (it *GitLabHostingRepository) ListOpenIssuesByLabel(
	ctx context.Context,
	repo entities.Repository,
	label string,
) ([]entities.ExistingIssue, error) {
	var result []entities.ExistingIssue
	labels := gl.LabelOptions{label}
	opts := &gl.ListProjectIssuesOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		State:       gl.Ptr(issueStateOpen),
		Labels:      &labels,
	}

	for {
		issues, resp, err := it.client.Issues.ListProjectIssues(repo.FullName(), opts, gl.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list %q issues in %s: %w", label, repo, err)
		}

		for _, issue := range issues {
			result = append(result, entities.ExistingIssue{Title: issue.Title, Number: int(issue.IID)})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func (it *GitLabHostingRepository) CreateIssue(
	ctx context.Context,
	repo entities.Repository,
	input entities.IssueInput,
) (int, error) {
	labels := gl.LabelOptions(input.Labels)
	issue, _, err := it.client.Issues.CreateIssue(
		repo.FullName(),
		&gl.CreateIssueOptions{
			Title:       gl.Ptr(input.Title),
			Description: gl.Ptr(input.Body),
			Labels:      &labels,
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create issue %q in %s: %w", input.Title, repo, err)
	}
	return int(issue.IID), nil
}

// EnsureLabel creates the label and treats "already exists" as success.
func (it *GitLabHostingRepository) EnsureLabel(
	ctx context.Context,
	repo entities.Repository,
	label entities.IssueLabel,
) error {
	_, resp, err := it.client.Labels.CreateLabel(
		repo.FullName(),
		&gl.CreateLabelOptions{
			Name:        gl.Ptr(label.Name),
			Color:       gl.Ptr("#" + label.Color),
			Description: gl.Ptr(label.Description),
		},
		gl.WithContext(ctx),
	)
	if err == nil || (resp != nil && resp.StatusCode == http.StatusConflict) {
		return nil
	}
	return fmt.Errorf("failed to create label %q: %w", label.Name, err)
}

func (it *GitLabHostingRepository) Links(repo entities.Repository) entities.RepositoryLinks {
	home := it.webURL + "/" + repo.FullName()
	return entities.RepositoryLinks{
		Home:     home,
		CI:       home + "/-/pipelines",
		Releases: home + "/-/releases",
	}
}

func (it *GitLabHostingRepository) CompareURL(repo entities.Repository, base, head string) string {
	return fmt.Sprintf("%s/%s/-/compare/%s...%s", it.webURL, repo.FullName(), base, head)
}

// commitState maps a GitLab job status onto the legacy status vocabulary.
func commitState(status string, allowFailure bool) string {
	switch status {
	case statusSuccess:
		return string(entities.SignalSuccess)
	case statusFailed:
		if allowFailure {
			return string(entities.SignalSuccess)
		}
		return string(entities.SignalFailure)
	default:
		return string(entities.SignalPending)
	}
}

func toRepository(project *gl.Project) entities.Repository {
	if repo, err := entities.ParseRepository(project.PathWithNamespace); err == nil {
		return repo
	}
	owner := ""
	if project.Namespace != nil {
		owner = project.Namespace.FullPath
	}
	return entities.Repository{Owner: owner, Name: project.Path}
}

func webURLFromAPI(baseURL string) string {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	return parsed.Scheme + "://" + parsed.Host
}
