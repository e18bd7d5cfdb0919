//go:build unit

package swift_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
	"github.com/rios0rios0/repowatch/internal/infrastructure/repositories/swift"
	"github.com/rios0rios0/repowatch/test/infrastructure/repositorydoubles"
)

func TestSwiftClassifierRepository_IsProduction(t *testing.T) {
	t.Parallel()

	t.Run("should accept packages declared in Package.swift", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &repositorydoubles.StubManifestReader{
			Files: map[string]string{
				"Package.swift": `dependencies: [.package(url: "https://github.com/apple/swift-argument-parser", from: "1.3.0")]`,
			},
		}
		classifier := swift.NewClassifierRepository()

		// when
		result := classifier.IsProduction(context.Background(), manifests, "swift-argument-parser", entities.ClassifyOptions{})

		// then
		assert.True(t, result)
	})

	t.Run("should reject packages missing from the manifest", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &repositorydoubles.StubManifestReader{}
		classifier := swift.NewClassifierRepository()

		// when
		result := classifier.IsProduction(context.Background(), manifests, "swift-argument-parser", entities.ClassifyOptions{})

		// then
		assert.False(t, result)
	})
}
