package analyzer

import "github.com/tffedibot/fedibot/internal/migration"

// Finding represents a single risky statement detected in a script.
type Finding struct {
	Rule       string   // Rule ID (e.g., "transaction-control")
	Severity   Severity // Danger level
	Table      string   // Affected table name, when the rule knows it
	Statement  string   // The SQL statement text (truncated for display)
	Message    string   // Human-readable description of the danger
	Suggestion string   // Safe alternative approach
	StmtIndex  int      // Index in the script's statement list (0-based)
}

// AnalysisResult holds all findings for a single script.
type AnalysisResult struct {
	Script      *migration.Script
	Findings    []Finding
	MaxSeverity Severity // Highest severity across all findings
}

// HasHighOrCritical returns true if any finding is High or Critical severity.
func (r *AnalysisResult) HasHighOrCritical() bool {
	return r.MaxSeverity >= High
}

// TruncateSQL truncates a SQL string to maxLen characters for display.
// maxLen below 4 leaves the string untouched.
func TruncateSQL(sql string, maxLen int) string {
	if len(sql) <= maxLen || maxLen < 4 {
		return sql
	}

	return sql[:maxLen-3] + "..."
}
