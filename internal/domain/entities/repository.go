package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRepository is returned when a repository reference is not in "owner/name" form.
var ErrInvalidRepository = errors.New("repository must be in owner/name form")

// Repository identifies a hosted repository by owner and name.
type Repository struct {
	Owner string
	Name  string
}

// FullName returns the "owner/name" form used in titles and logs.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

func (r Repository) String() string {
	return r.FullName()
}

// ParseRepository parses an "owner/name" reference. The owner may itself be a
// nested namespace ("group/subgroup/name").
func ParseRepository(fullName string) (Repository, error) {
	trimmed := strings.Trim(strings.TrimSpace(fullName), "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx <= 0 || idx == len(trimmed)-1 {
		return Repository{}, fmt.Errorf("%w: %q", ErrInvalidRepository, fullName)
	}
	return Repository{Owner: trimmed[:idx], Name: trimmed[idx+1:]}, nil
}

// RepositoryLinks are the web locations referenced from issue bodies.
type RepositoryLinks struct {
	Home     string
	CI       string
	Releases string
}
