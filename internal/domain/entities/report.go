package entities

// RepositoryReport is the outcome of scanning one repository.
type RepositoryReport struct {
	Repository    Repository
	ProjectType   ProjectType
	CIStatus      CIStatus
	ReleaseStatus ReleaseStatus
}

// Issues returns the candidate issues implied by the report.
func (r RepositoryReport) Issues(links RepositoryLinks) []PendingIssue {
	var issues []PendingIssue
	name := r.Repository.FullName()
	if r.CIStatus.IsFailing() {
		issues = append(issues, NewCIFailureIssue(name, r.CIStatus.FailedChecks, links))
	}
	if r.ReleaseStatus.IsPending() {
		issues = append(issues, NewPendingReleaseIssue(name, r.ReleaseStatus, links))
	}
	return issues
}

// RunSummary aggregates the counters logged at the end of a run.
type RunSummary struct {
	Repositories    int
	CIFailures      int
	PendingReleases int
	Created         int
	Skipped         int
}

// Record counts a scanned repository.
func (s *RunSummary) Record(report RepositoryReport) {
	s.Repositories++
	if report.CIStatus.IsFailing() {
		s.CIFailures++
	}
	if report.ReleaseStatus.IsPending() {
		s.PendingReleases++
	}
}
