package entities

import (
	"fmt"
	"strings"
)

// ReleaseState is the drift verdict between the latest tag and the default branch.
type ReleaseState string

const (
	ReleaseStateNoTag    ReleaseState = "no-tag"
	ReleaseStateUpToDate ReleaseState = "up-to-date"
	ReleaseStatePending  ReleaseState = "pending"
)

const maxListedSourceChanges = 5

// ReleaseStatus is the result of a drift analysis. Reasons and CompareURL are set only when pending.
type ReleaseStatus struct {
	State      ReleaseState
	Reasons    string
	CompareURL string
}

// IsPending reports whether an issue should be raised for this status.
func (s ReleaseStatus) IsPending() bool {
	return s.State == ReleaseStatePending
}

// Comparison holds what changed between two refs.
type Comparison struct {
	Files          []string
	CommitMessages []string
}

// IsEmpty is true when the refs point at the same content history.
func (c Comparison) IsEmpty() bool {
	return len(c.Files) == 0 && len(c.CommitMessages) == 0
}

// BuildReleaseReasons renders the reasons report. It returns an empty string
// when there are neither source changes nor production dependency updates.
func BuildReleaseReasons(sourceChanges []string, updates []DependencyReference) string {
	var lines []string

	if len(sourceChanges) > 0 {
		lines = append(lines, "**Source code changes:**")
		for _, path := range sourceChanges[:min(len(sourceChanges), maxListedSourceChanges)] {
			lines = append(lines, fmt.Sprintf("- `%s`", path))
		}
		if len(sourceChanges) > maxListedSourceChanges {
			lines = append(lines, fmt.Sprintf("- ... and %d more files", len(sourceChanges)-maxListedSourceChanges))
		}
		lines = append(lines, "")
	}

	if len(updates) > 0 {
		lines = append(lines, "**Dependency updates:**")
		for _, update := range updates {
			lines = append(lines, update.String())
		}
	}

	return strings.Join(lines, "\n")
}
