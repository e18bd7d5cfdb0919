//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

// StubClassifierRepository answers from a fixed set of production packages.
type StubClassifierRepository struct {
	mu sync.Mutex

	Type       entities.ProjectType
	Production map[string]bool
	Asked      []string
	LastOpts   entities.ClassifyOptions
}

var _ repositories.ClassifierRepository = (*StubClassifierRepository)(nil)

func (s *StubClassifierRepository) ProjectType() entities.ProjectType { return s.Type }

func (s *StubClassifierRepository) IsProduction(
	_ context.Context, _ repositories.ManifestReader, pkg string, opts entities.ClassifyOptions,
) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Asked = append(s.Asked, pkg)
	s.LastOpts = opts
	return s.Production[pkg]
}

// StubManifestReader serves manifests from memory; missing files read as empty.
type StubManifestReader struct {
	Entries []string
	Files   map[string]string
}

var _ repositories.ManifestReader = (*StubManifestReader)(nil)

func (s *StubManifestReader) RootEntries(context.Context) []string { return s.Entries }

func (s *StubManifestReader) FileText(_ context.Context, path string) string {
	return s.Files[path]
}
