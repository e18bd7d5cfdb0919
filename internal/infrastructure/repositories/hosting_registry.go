package repositories

import (
	"errors"
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/repowatch/internal/domain/repositories"
)

// ErrUnknownProvider is returned when no hosting factory is registered under a name.
var ErrUnknownProvider = errors.New("unknown provider type")

// HostingFactory builds a HostingRepository from a token and an optional API base URL.
type HostingFactory func(token, baseURL string) (domainRepos.HostingRepository, error)

// HostingRegistry manages all registered hosting provider implementations.
type HostingRegistry struct {
	factories map[string]HostingFactory
}

// NewHostingRegistry creates an empty hosting registry.
func NewHostingRegistry() *HostingRegistry {
	return &HostingRegistry{
		factories: make(map[string]HostingFactory),
	}
}

// Register adds a factory under the given name (e.g. "github").
func (r *HostingRegistry) Register(name string, factory HostingFactory) {
	r.factories[name] = factory
}

// Get returns a configured hosting instance for the given name.
func (r *HostingRegistry) Get(name, token, baseURL string) (domainRepos.HostingRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	hosting, err := factory(token, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %q: %w", name, err)
	}
	return hosting, nil
}

// Names returns the registered provider names, sorted.
func (r *HostingRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
