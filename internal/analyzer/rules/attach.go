package rules

import (
	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/parser"
)

// AttachRule detects ATTACH and DETACH DATABASE statements.
type AttachRule struct{}

// NewAttachRule creates a new AttachRule.
func NewAttachRule() *AttachRule { return &AttachRule{} }

// ID returns the rule identifier.
func (r *AttachRule) ID() string { return "attach-detach" }

// Check examines a statement for ATTACH or DETACH.
func (r *AttachRule) Check(stmt parser.Statement, ctx *analyzer.RuleContext) []analyzer.Finding {
	kw := stmt.Keyword(0)
	if kw != "ATTACH" && kw != "DETACH" {
		return nil
	}

	return []analyzer.Finding{{
		Rule:       r.ID(),
		Severity:   analyzer.High,
		Message:    kw + " is not allowed within a transaction",
		Suggestion: "Keep migrations inside the main database",
		StmtIndex:  ctx.StmtIndex,
	}}
}
