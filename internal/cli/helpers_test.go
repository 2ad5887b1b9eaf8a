package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/tffedibot/fedibot/internal/config"
)

// setupTestConfig sets AppConfig to a default config over a fresh store in a
// temp directory and restores the previous value on cleanup.
func setupTestConfig(t *testing.T) *config.Config {
	t.Helper()

	old := AppConfig
	AppConfig = config.New()
	AppConfig.DatabasePath = filepath.Join(t.TempDir(), "data.db")

	t.Cleanup(func() { AppConfig = old })

	return AppConfig
}

// newTestCmd creates a fresh cobra.Command wired to run with a captured output buffer.
func newTestCmd(t *testing.T, use string, run func(*cobra.Command, []string) error) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	buf := new(bytes.Buffer)
	cmd := &cobra.Command{
		Use:  use,
		RunE: run,
	}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	return cmd, buf
}
