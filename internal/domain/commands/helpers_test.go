//go:build unit

package commands_test

import (
	"github.com/rios0rios0/repowatch/internal/domain/commands"
	domainRepos "github.com/rios0rios0/repowatch/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/repowatch/internal/infrastructure/repositories"
	"github.com/rios0rios0/repowatch/test/infrastructure/repositorydoubles"
)

func newScanCommand(classifiers ...domainRepos.ClassifierRepository) *commands.ScanCommand {
	registry := infraRepos.NewClassifierRegistry()
	for _, classifier := range classifiers {
		registry.Register(classifier)
	}
	return commands.NewScanCommand(
		commands.NewDetectCommand(),
		commands.NewCIStatusCommand(),
		commands.NewReleaseCommand(registry),
	)
}

func newHostingRegistry(spy *repositorydoubles.SpyHostingRepository) *infraRepos.HostingRegistry {
	registry := infraRepos.NewHostingRegistry()
	registry.Register("github", func(string, string) (domainRepos.HostingRepository, error) {
		return spy, nil
	})
	return registry
}
