package rules

import (
	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/parser"
)

// RenameRule detects table and column renames.
type RenameRule struct{}

// NewRenameRule creates a new RenameRule.
func NewRenameRule() *RenameRule { return &RenameRule{} }

// ID returns the rule identifier.
func (r *RenameRule) ID() string { return "rename" }

// Check examines a statement for ALTER TABLE ... RENAME.
func (r *RenameRule) Check(stmt parser.Statement, ctx *analyzer.RuleContext) []analyzer.Finding {
	if stmt.Keyword(0) != "ALTER" || stmt.Keyword(1) != "TABLE" || !hasWord(stmt, "RENAME") {
		return nil
	}

	msg := "Renaming a table breaks queries that still use the old name"
	if hasSequence(stmt, "RENAME", "COLUMN") || !hasSequence(stmt, "RENAME", "TO") {
		msg = "Renaming a column breaks queries that still use the old name"
	}

	return []analyzer.Finding{{
		Rule:       r.ID(),
		Severity:   analyzer.Medium,
		Table:      analyzer.TableName(stmt.Text),
		Message:    msg,
		Suggestion: "Update every query in the same release as the migration",
		StmtIndex:  ctx.StmtIndex,
	}}
}
