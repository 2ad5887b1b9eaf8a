package rules

import (
	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/parser"
)

// TransactionControlRule detects statements that open, close or name
// transactions. Scripts run inside a savepoint of the enclosing run.
type TransactionControlRule struct{}

// NewTransactionControlRule creates a new TransactionControlRule.
func NewTransactionControlRule() *TransactionControlRule { return &TransactionControlRule{} }

// ID returns the rule identifier.
func (r *TransactionControlRule) ID() string { return "transaction-control" }

// Check examines a statement for BEGIN, COMMIT, END, ROLLBACK, SAVEPOINT or RELEASE.
func (r *TransactionControlRule) Check(stmt parser.Statement, ctx *analyzer.RuleContext) []analyzer.Finding {
	switch stmt.Keyword(0) {
	case "BEGIN", "COMMIT", "END", "ROLLBACK":
		return []analyzer.Finding{{
			Rule:       r.ID(),
			Severity:   analyzer.High,
			Message:    stmt.Keyword(0) + " conflicts with the transaction the migration run already holds",
			Suggestion: "Remove explicit transaction control; each script already runs atomically",
			StmtIndex:  ctx.StmtIndex,
		}}
	case "SAVEPOINT", "RELEASE":
		return []analyzer.Finding{{
			Rule:       r.ID(),
			Severity:   analyzer.High,
			Message:    stmt.Keyword(0) + " can release or shadow the savepoint guarding this script",
			Suggestion: "Split the work into separate scripts instead of nesting savepoints",
			StmtIndex:  ctx.StmtIndex,
		}}
	default:
		return nil
	}
}
