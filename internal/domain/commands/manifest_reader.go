package commands

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/domain/repositories"
)

const manifestCacheSize = 32

// cachedManifestReader reads manifests of one repository through the hosting
// service and remembers them for the lifetime of a single scan. Failed reads
// are remembered as empty text.
type cachedManifestReader struct {
	hosting repositories.HostingRepository
	repo    entities.Repository
	files   *lru.Cache[string, string]

	rootOnce sync.Once
	root     []string
}

// NewManifestReader creates a manifest reader scoped to one repository scan.
func NewManifestReader(
	hosting repositories.HostingRepository,
	repo entities.Repository,
) repositories.ManifestReader {
	// only fails for a non-positive size
	files, _ := lru.New[string, string](manifestCacheSize)
	return &cachedManifestReader{hosting: hosting, repo: repo, files: files}
}

func (it *cachedManifestReader) RootEntries(ctx context.Context) []string {
	it.rootOnce.Do(func() {
		entries, err := it.hosting.ListRootEntries(ctx, it.repo)
		if err != nil {
			logger.Debugf("[%s] root listing unavailable: %v", it.repo, err)
			return
		}
		it.root = entries
	})
	return it.root
}

func (it *cachedManifestReader) FileText(ctx context.Context, path string) string {
	if text, ok := it.files.Get(path); ok {
		return text
	}

	text, err := it.hosting.GetFileText(ctx, it.repo, path)
	if err != nil {
		logger.Debugf("[%s] %s unavailable: %v", it.repo, path, err)
		text = ""
	}
	it.files.Add(path, text)
	return text
}
