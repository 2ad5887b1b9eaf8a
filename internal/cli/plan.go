package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "plan",
	Short: "Show execution plan for pending migrations",
	Long: `Display the pending migration scripts in the order migrate would apply
them, followed by the analysis findings for those scripts.`,
	RunE: runPlan,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	planCmd.Flags().String("min-severity", "low", "hide findings below this severity (low, medium, high, critical)")
	planCmd.Flags().Bool("fail-on-high", false, "exit with non-zero code if high/critical findings exist")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	s, err := openStore(ctx, AppConfig)
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

	fmt.Fprintf(out, "Execution plan (%d script(s)):\n", len(pending))

	for i, p := range pending {
		fmt.Fprintf(out, "  %d. %s\n", i+1, p.Name)
	}

	a, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}

	results, err := a.AnalyzeAll(pending)
	if err != nil {
		return fmt.Errorf("analyzing migrations: %w", err)
	}

	hasHighOrCritical := printAnalysisResults(cmd, results)

	failOnHigh, _ := cmd.Flags().GetBool("fail-on-high")
	if failOnHigh && hasHighOrCritical {
		return errHighSeverityFindings
	}

	return nil
}
