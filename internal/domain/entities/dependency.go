package entities

import (
	"fmt"
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // compiled once
var bumpPattern = regexp.MustCompile(`^Bump ([^\s]+) from ([^\s]+) to ([^\s]+)`)

// DependencyReference is a dependency version change announced by a bump commit.
type DependencyReference struct {
	Name string
	From string
	To   string
}

// String renders the reference as a report line.
func (d DependencyReference) String() string {
	return fmt.Sprintf("- %s %s -> %s", d.Name, d.From, d.To)
}

// ParseBumpCommit extracts the dependency change from a commit like
// "Bump lodash from 4.17.20 to 4.17.21". Only the subject line is considered.
func ParseBumpCommit(message string) (DependencyReference, bool) {
	subject, _, _ := strings.Cut(message, "\n")
	match := bumpPattern.FindStringSubmatch(strings.TrimRight(subject, "\r"))
	if match == nil {
		return DependencyReference{}, false
	}
	return DependencyReference{Name: match[1], From: match[2], To: match[3]}, true
}
