package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/tffedibot/fedibot/internal/executor"
	"github.com/tffedibot/fedibot/internal/store"
)

var migrateCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "migrate",
	Short: "Apply pending migration scripts to the store",
	Long: `Apply every pending embedded migration script inside one transaction.
Each script runs under its own savepoint; a failing script is rolled back,
the run stops, and the scripts applied before it stay committed.`,
	RunE: runMigrate,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	migrateCmd.Flags().Bool("dry-run", false, "list the scripts that would run without applying them")
	migrateCmd.Flags().Bool("fail-on-high", false, "refuse to migrate when pending scripts have high/critical findings")
	migrateCmd.Flags().String("metrics-file", "", "write run metrics in Prometheus text format to this file")
	rootCmd.AddCommand(migrateCmd)
}

// errDangerousMigrations is returned when --fail-on-high blocks a run.
var errDangerousMigrations = errors.New("dangerous migrations detected, use analyze for details")

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	reg := prometheus.NewRegistry()

	s, err := openStore(ctx, AppConfig, store.WithMetrics(executor.NewMetrics(reg)))
	if err != nil {
		return err
	}
	defer s.Close()

	pending, err := s.Plan(ctx)
	if err != nil {
		return fmt.Errorf("planning migrations: %w", err)
	}

	if len(pending) == 0 {
		fmt.Fprintln(out, "No pending migrations.")
		return nil
	}

	failOnHigh, _ := cmd.Flags().GetBool("fail-on-high")
	if failOnHigh {
		a, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}

	results, err := a.AnalyzeAll(pending)
		if err != nil {
			return fmt.Errorf("analyzing migrations: %w", err)
		}

		for _, r := range results {
			if r.HasHighOrCritical() {
				return errDangerousMigrations
			}
		}
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Fprintln(out, "Dry run: nothing will be applied.")
	}

	result, runErr := s.Start(ctx,
		executor.WithDryRun(dryRun),
		executor.WithProgressCallback(progressPrinter(cmd)),
	)

	if path, _ := cmd.Flags().GetString("metrics-file"); path != "" {
		if err := prometheus.WriteToTextfile(path, reg); err != nil {
			return fmt.Errorf("writing metrics file: %w", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	if result.DryRun {
		fmt.Fprintf(out, "Would apply %d migration(s).\n", len(result.Pending))
		return nil
	}

	fmt.Fprintf(out, "Applied %d migration(s).\n", len(result.Applied))

	return nil
}

func progressPrinter(cmd *cobra.Command) func(executor.ProgressEvent) {
	out := cmd.OutOrStdout()

	return func(event executor.ProgressEvent) {
		switch event.Status {
		case executor.StatusStarting:
			fmt.Fprintf(out, "  Applying %s ... ", event.Script.Name)
		case executor.StatusCompleted:
			fmt.Fprintf(out, "done (%s)\n", event.Duration.Round(time.Millisecond))
		case executor.StatusFailed:
			fmt.Fprintln(out, "FAILED")
			fmt.Fprintf(out, "    Error: %v\n", event.Error)
		case executor.StatusSkipped:
			fmt.Fprintf(out, "  Skipping %s\n", event.Script.Name)
		}
	}
}
