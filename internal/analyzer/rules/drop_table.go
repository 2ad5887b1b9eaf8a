package rules

import (
	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/parser"
)

// DropTableRule detects DROP TABLE and unconditional DELETE statements.
type DropTableRule struct{}

// NewDropTableRule creates a new DropTableRule.
func NewDropTableRule() *DropTableRule { return &DropTableRule{} }

// ID returns the rule identifier.
func (r *DropTableRule) ID() string { return "drop-table" }

// Check examines a statement for DROP TABLE or DELETE without WHERE.
func (r *DropTableRule) Check(stmt parser.Statement, ctx *analyzer.RuleContext) []analyzer.Finding {
	switch {
	case stmt.Keyword(0) == "DROP" && stmt.Keyword(1) == "TABLE":
		msg := "DROP TABLE is irreversible and will permanently delete all data"
		if stmt.Keyword(2) == "IF" {
			msg = "DROP TABLE IF EXISTS is irreversible and will permanently delete all data"
		}

		return []analyzer.Finding{{
			Rule:       r.ID(),
			Severity:   analyzer.Critical,
			Table:      analyzer.TableName(stmt.Text),
			Message:    msg,
			Suggestion: "Ensure you have a backup and that no code still reads this table",
			StmtIndex:  ctx.StmtIndex,
		}}
	case stmt.Keyword(0) == "DELETE" && !hasWord(stmt, "WHERE"):
		return []analyzer.Finding{{
			Rule:       r.ID(),
			Severity:   analyzer.Critical,
			Table:      analyzer.TableName(stmt.Text),
			Message:    "DELETE without WHERE removes every row of the table",
			Suggestion: "Ensure you have a backup before clearing tables",
			StmtIndex:  ctx.StmtIndex,
		}}
	default:
		return nil
	}
}

func hasWord(stmt parser.Statement, word string) bool {
	for _, w := range stmt.Words {
		if w == word {
			return true
		}
	}

	return false
}
