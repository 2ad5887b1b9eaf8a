package rules

import (
	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/parser"
)

// AddColumnRule detects ALTER TABLE ... ADD COLUMN forms that SQLite rejects
// on a table that may already hold rows.
type AddColumnRule struct{}

// NewAddColumnRule creates a new AddColumnRule.
func NewAddColumnRule() *AddColumnRule { return &AddColumnRule{} }

// ID returns the rule identifier.
func (r *AddColumnRule) ID() string { return "add-column-constraint" }

// Check examines a statement for ADD COLUMN with NOT NULL and no DEFAULT,
// or with PRIMARY KEY or UNIQUE.
func (r *AddColumnRule) Check(stmt parser.Statement, ctx *analyzer.RuleContext) []analyzer.Finding {
	if stmt.Keyword(0) != "ALTER" || stmt.Keyword(1) != "TABLE" || !hasWord(stmt, "ADD") {
		return nil
	}

	var msg string

	switch {
	case hasWord(stmt, "PRIMARY") || hasWord(stmt, "UNIQUE"):
		msg = "ADD COLUMN cannot add a PRIMARY KEY or UNIQUE column"
	case hasSequence(stmt, "NOT", "NULL") && !hasWord(stmt, "DEFAULT"):
		msg = "ADD COLUMN with NOT NULL requires a non-NULL DEFAULT"
	default:
		return nil
	}

	return []analyzer.Finding{{
		Rule:       r.ID(),
		Severity:   analyzer.High,
		Table:      analyzer.TableName(stmt.Text),
		Message:    msg,
		Suggestion: "Add the column nullable or with a DEFAULT, or rebuild the table",
		StmtIndex:  ctx.StmtIndex,
	}}
}

func hasSequence(stmt parser.Statement, first, second string) bool {
	for i := 0; i+1 < len(stmt.Words); i++ {
		if stmt.Words[i] == first && stmt.Words[i+1] == second {
			return true
		}
	}

	return false
}
