package entities

import "strings"

// SignalState is the normalized state of a single CI signal.
type SignalState string

const (
	SignalSuccess SignalState = "success"
	SignalFailure SignalState = "failure"
	SignalError   SignalState = "error"
	SignalPending SignalState = "pending"
)

// CIState is the aggregate verdict over all signals of a ref.
type CIState string

const (
	CIStateSuccess  CIState = "success"
	CIStateFailure  CIState = "failure"
	CIStatePending  CIState = "pending"
	CIStateNoCI     CIState = "no-ci"
	CIStateNoBranch CIState = "no-branch"
)

const (
	checkRunCompleted  = "completed"
	conclusionSuccess  = "success"
	conclusionFailure  = "failure"
	conclusionTimedOut = "timed_out"
	excludedCheckToken = "codecov"
)

// CheckSignal is one CI indicator attached to a commit.
type CheckSignal struct {
	Context string
	State   SignalState
	URL     string
}

// CommitStatus is a legacy commit status as reported by the hosting service.
type CommitStatus struct {
	State     string
	Context   string
	TargetURL string
}

// Signal normalizes the status. Unknown states count as pending.
func (s CommitStatus) Signal() CheckSignal {
	state := SignalState(strings.ToLower(s.State))
	switch state {
	case SignalSuccess, SignalFailure, SignalError, SignalPending:
	default:
		state = SignalPending
	}
	return CheckSignal{Context: s.Context, State: state, URL: s.TargetURL}
}

// CheckRun is a check run as reported by the hosting service.
type CheckRun struct {
	Name       string
	Status     string
	Conclusion string
	DetailsURL string
}

// Signal maps the run onto a signal: incomplete runs are pending, and only
// success, failure and timed_out conclusions are decisive.
func (r CheckRun) Signal() CheckSignal {
	signal := CheckSignal{Context: r.Name, State: SignalPending, URL: r.DetailsURL}
	if r.Status != checkRunCompleted {
		return signal
	}
	switch r.Conclusion {
	case conclusionSuccess:
		signal.State = SignalSuccess
	case conclusionFailure, conclusionTimedOut:
		signal.State = SignalFailure
	}
	return signal
}

// FailedCheck names a failing signal and, when known, where to look at it.
type FailedCheck struct {
	Name string
	URL  string
}

// CIStatus is the aggregated CI verdict for the default branch.
type CIStatus struct {
	Status       CIState
	FailedChecks []FailedCheck
}

// IsFailing reports whether an issue should be raised for this status.
func (s CIStatus) IsFailing() bool {
	return s.Status == CIStateFailure
}

// MergeSignals builds the signal list in the order used for reporting:
// legacy statuses first, then check runs.
func MergeSignals(statuses []CommitStatus, runs []CheckRun) []CheckSignal {
	signals := make([]CheckSignal, 0, len(statuses)+len(runs))
	for _, status := range statuses {
		signals = append(signals, status.Signal())
	}
	for _, run := range runs {
		signals = append(signals, run.Signal())
	}
	return signals
}

// AggregateSignals drops coverage reporters and reduces the remaining signals to one verdict.
// The result is failure exactly when at least one check failed; otherwise any pending signal
// makes it pending; an empty set is no-ci.
func AggregateSignals(signals []CheckSignal) CIStatus {
	var failed []FailedCheck
	considered := 0
	pending := false

	for _, signal := range signals {
		if strings.Contains(strings.ToLower(signal.Context), excludedCheckToken) {
			continue
		}
		considered++
		switch signal.State {
		case SignalFailure, SignalError:
			failed = append(failed, FailedCheck{Name: signal.Context, URL: signal.URL})
		case SignalPending:
			pending = true
		case SignalSuccess:
		}
	}

	switch {
	case considered == 0:
		return CIStatus{Status: CIStateNoCI}
	case len(failed) > 0:
		return CIStatus{Status: CIStateFailure, FailedChecks: failed}
	case pending:
		return CIStatus{Status: CIStatePending}
	default:
		return CIStatus{Status: CIStateSuccess}
	}
}
