package controllers

import (
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repowatch/internal/domain/entities"
)

// loadSettings reads the config file (explicit or auto-detected) and applies
// the command-line overrides on top of it. A missing file is not an error:
// flags and environment variables may carry everything.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		switch {
		case err == nil:
			configPath = found
		case errors.Is(err, entities.ErrConfigNotFound):
			logger.Debug("No config file found, using flags and environment only")
		default:
			return nil, err
		}
	}

	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	token, _ := cmd.Flags().GetString("token")
	provider, _ := cmd.Flags().GetString("provider")
	organizations, _ := cmd.Flags().GetStringSlice("org")
	issueRepository, _ := cmd.Flags().GetString("issue-repo")

	settings.Apply(entities.SettingsOverrides{
		Provider:        provider,
		Token:           token,
		Organizations:   organizations,
		IssueRepository: issueRepository,
	})
	return settings, nil
}
