//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repowatch/internal/domain/commands"
	"github.com/rios0rios0/repowatch/internal/domain/entities"
)

// StubCheckCommand is a stub implementation of commands.Check.
type StubCheckCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *commands.CheckResult
	LastSettings     *entities.Settings
	LastTarget       string
}

var _ commands.Check = (*StubCheckCommand)(nil)

func (s *StubCheckCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	target string,
) (*commands.CheckResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastTarget = target
	return s.Result, s.ExecuteErr
}
