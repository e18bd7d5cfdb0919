package repositories

import (
	"go.uber.org/dig"

	ghRepo "github.com/rios0rios0/repowatch/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/repowatch/internal/infrastructure/repositories/gitlab"
	goRepo "github.com/rios0rios0/repowatch/internal/infrastructure/repositories/golang"
	ktRepo "github.com/rios0rios0/repowatch/internal/infrastructure/repositories/kotlin"
	nodeRepo "github.com/rios0rios0/repowatch/internal/infrastructure/repositories/node"
	rbRepo "github.com/rios0rios0/repowatch/internal/infrastructure/repositories/ruby"
	rsRepo "github.com/rios0rios0/repowatch/internal/infrastructure/repositories/rust"
	swRepo "github.com/rios0rios0/repowatch/internal/infrastructure/repositories/swift"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() *HostingRegistry {
		reg := NewHostingRegistry()
		reg.Register("github", ghRepo.NewHostingRepository)
		reg.Register("gitlab", glRepo.NewHostingRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() *ClassifierRegistry {
		reg := NewClassifierRegistry()
		reg.Register(rbRepo.NewClassifierRepository())
		reg.Register(nodeRepo.NewClassifierRepository())
		reg.Register(rsRepo.NewClassifierRepository())
		reg.Register(ktRepo.NewClassifierRepository())
		reg.Register(goRepo.NewClassifierRepository())
		reg.Register(swRepo.NewClassifierRepository())
		return reg
	}); err != nil {
		return err
	}

	return nil
}
