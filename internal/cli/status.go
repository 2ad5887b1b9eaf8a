package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the scripts recorded in the store's SchemaVersions ledger, the
embedded scripts still pending, and any applied script no longer embedded.
The store is not changed.`,
	RunE: runStatus,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	s, err := openStore(ctx, AppConfig)
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.Status(ctx)
	if err != nil {
		return fmt.Errorf("reading migration status: %w", err)
	}

	fmt.Fprintf(out, "Store: %s\n", AppConfig.DatabasePath)
	fmt.Fprintf(out, "Applied: %d, pending: %d\n", len(st.Applied), len(st.Pending))

	if len(st.Applied) > 0 {
		fmt.Fprintln(out, "\nApplied:")

		for _, a := range st.Applied {
			fmt.Fprintf(out, "  %-40s %s (%s)\n", a.ScriptName,
				a.AppliedAt.UTC().Format("2006-01-02 15:04:05"), humanize.Time(a.AppliedAt))
		}
	}

	if len(st.Pending) > 0 {
		fmt.Fprintln(out, "\nPending:")

		for _, p := range st.Pending {
			fmt.Fprintf(out, "  %-40s %s\n", p.Name, humanize.Bytes(uint64(len(p.Body))))
		}
	}

	if len(st.Missing) > 0 {
		fmt.Fprintln(out, "\nApplied, missing from bundle:")

		for _, name := range st.Missing {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}

	return nil
}
