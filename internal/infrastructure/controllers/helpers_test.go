//go:build unit

package controllers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type flagged interface {
	AddFlags(cmd *cobra.Command)
}

// newCommand mirrors the root command's persistent flags on a standalone command.
func newCommand(controller flagged) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().String("token", "", "")
	cmd.Flags().Bool("dry-run", false, "")
	cmd.Flags().BoolP("verbose", "v", false, "")
	controller.AddFlags(cmd)
	return cmd
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "repowatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
