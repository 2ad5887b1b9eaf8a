package rules

import (
	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/parser"
)

// CreateIndexRule detects unique indexes built over existing data.
type CreateIndexRule struct{}

// NewCreateIndexRule creates a new CreateIndexRule.
func NewCreateIndexRule() *CreateIndexRule { return &CreateIndexRule{} }

// ID returns the rule identifier.
func (r *CreateIndexRule) ID() string { return "create-unique-index" }

// Check examines a statement for CREATE UNIQUE INDEX.
func (r *CreateIndexRule) Check(stmt parser.Statement, ctx *analyzer.RuleContext) []analyzer.Finding {
	if stmt.Keyword(0) != "CREATE" || stmt.Keyword(1) != "UNIQUE" || stmt.Keyword(2) != "INDEX" {
		return nil
	}

	return []analyzer.Finding{{
		Rule:       r.ID(),
		Severity:   analyzer.Low,
		Table:      analyzer.TableName(stmt.Text),
		Message:    "CREATE UNIQUE INDEX fails when existing rows contain duplicates",
		Suggestion: "Remove duplicates in an earlier statement of the same script",
		StmtIndex:  ctx.StmtIndex,
	}}
}
