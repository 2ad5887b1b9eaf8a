package rules

import (
	"regexp"
	"strings"

	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/parser"
)

// pragmaAssignment matches PRAGMA [schema.]name = value and PRAGMA [schema.]name(value).
var pragmaAssignment = regexp.MustCompile(`(?is)^PRAGMA\s+(?:[\w$]+\.)?([\w$]+)\s*(?:=|\()`)

// PragmaRule detects PRAGMA assignments. Some pragmas are silently ignored
// inside a transaction; the rest change connection state for every later script.
type PragmaRule struct{}

// NewPragmaRule creates a new PragmaRule.
func NewPragmaRule() *PragmaRule { return &PragmaRule{} }

// ID returns the rule identifier.
func (r *PragmaRule) ID() string { return "pragma-in-transaction" }

// Check examines a statement for a PRAGMA that sets a value.
func (r *PragmaRule) Check(stmt parser.Statement, ctx *analyzer.RuleContext) []analyzer.Finding {
	if stmt.Keyword(0) != "PRAGMA" {
		return nil
	}

	m := pragmaAssignment.FindStringSubmatch(stmt.Text)
	if m == nil {
		return nil // query-only pragma
	}

	name := strings.ToLower(m[1])
	f := analyzer.Finding{
		Rule:      r.ID(),
		StmtIndex: ctx.StmtIndex,
	}

	switch name {
	case "foreign_keys":
		f.Severity = analyzer.Medium
		f.Message = "PRAGMA foreign_keys is a no-op inside a transaction"
		f.Suggestion = "Use PRAGMA defer_foreign_keys, or rebuild the table without toggling enforcement"
	case "journal_mode":
		f.Severity = analyzer.High
		f.Message = "PRAGMA journal_mode cannot change inside a transaction"
		f.Suggestion = "Set the journal mode in the connection string instead"
	default:
		f.Severity = analyzer.Low
		f.Message = "PRAGMA " + name + " changes connection state for the rest of the run"
		f.Suggestion = "Prefer connection-level configuration over pragmas in migrations"
	}

	return []analyzer.Finding{f}
}
