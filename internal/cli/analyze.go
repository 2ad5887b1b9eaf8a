package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/analyzer/rules"
	"github.com/tffedibot/fedibot/internal/migration"
	"github.com/tffedibot/fedibot/internal/store"
)

var analyzeCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "analyze [script-dir]",
	Short: "Analyze migration scripts for statements unsafe inside the migration transaction",
	Long: `Analyze migration scripts for statements that break the enclosing
migration transaction, destroy data, or may fail on existing rows. Without
an argument the embedded scripts under the configured prefix are analyzed;
with a directory, every Script*.sql file in it is.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	analyzeCmd.Flags().String("min-severity", "low", "hide findings below this severity (low, medium, high, critical)")
	analyzeCmd.Flags().Bool("fail-on-high", false, "exit with non-zero code if high/critical findings exist")
	rootCmd.AddCommand(analyzeCmd)
}

// errHighSeverityFindings is returned when --fail-on-high is set and high/critical findings exist.
var errHighSeverityFindings = errors.New("high or critical severity findings detected")

func runAnalyze(cmd *cobra.Command, args []string) error {
	bundle, prefix := store.Migrations(), AppConfig.MigrationsPrefix
	if len(args) > 0 {
		bundle, prefix = migration.NewBundle(os.DirFS(args[0]), ""), ""
	}

	scripts, err := bundle.Scripts(prefix)
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	if skipped, err := countSkipped(bundle, prefix); err == nil && skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d resource(s) not named %s*%s.\n",
			skipped, migration.ScriptToken, migration.ScriptSuffix)
	}

	if len(scripts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No migration scripts found.")
		return nil
	}

	a, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}

	results, err := a.AnalyzeAll(migration.Sort(scripts))
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

// newAnalyzer builds an analyzer with the default rules. The --min-severity
// flag is honoured when the command defines it.
func newAnalyzer(cmd *cobra.Command) (*analyzer.Analyzer, error) {
	opts := []analyzer.Option{analyzer.WithRegistry(rules.NewDefaultRegistry())}

	if f := cmd.Flags().Lookup("min-severity"); f != nil {
		sev, err := analyzer.ParseSeverity(f.Value.String())
		if err != nil {
			return nil, fmt.Errorf("--min-severity: %w", err)
		}

		opts = append(opts, analyzer.WithMinSeverity(sev))
	}

	return analyzer.New(opts...), nil
}

func printAnalysisResults(cmd *cobra.Command, results []analyzer.AnalysisResult) bool {
	out := cmd.OutOrStdout()
	totalFindings := 0
	hasHighOrCritical := false

	for _, r := range results {
		if len(r.Findings) == 0 {
			continue
		}

		fmt.Fprintf(out, "\n=== %s ===\n", r.Script.Name)

		for _, f := range r.Findings {
			fmt.Fprintf(out, "  [%s] %s\n", f.Severity, f.Message)

			if f.Table != "" {
				fmt.Fprintf(out, "    Table: %s\n", f.Table)
			}

			fmt.Fprintf(out, "    Rule:  %s\n", f.Rule)

			if f.Statement != "" {
				fmt.Fprintf(out, "    SQL:   %s\n", f.Statement)
			}

			fmt.Fprintf(out, "    Fix:   %s\n\n", f.Suggestion)
		}

		totalFindings += len(r.Findings)

		if r.HasHighOrCritical() {
			hasHighOrCritical = true
		}
	}

	if totalFindings == 0 {
		fmt.Fprintln(out, "No dangerous operations detected.")
	} else {
		fmt.Fprintf(out, "Found %d finding(s) across %d script(s).\n", totalFindings, countScriptsWithFindings(results))
	}

	return hasHighOrCritical
}

// countSkipped counts the resources under prefix that are not scripts.
func countSkipped(bundle *migration.Bundle, prefix string) (int, error) {
	resources, err := bundle.Resources()
	if err != nil {
		return 0, err
	}

	skipped := 0

	for _, r := range resources {
		if !strings.HasPrefix(r, prefix) {
			continue
		}

		if _, ok := migration.ParseResourceName(prefix, r); !ok {
			skipped++
		}
	}

	return skipped, nil
}

func countScriptsWithFindings(results []analyzer.AnalysisResult) int {
	count := 0

	for _, r := range results {
		if len(r.Findings) > 0 {
			count++
		}
	}

	return count
}
