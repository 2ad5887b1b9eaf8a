package rules

import (
	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/parser"
)

// VacuumRule detects VACUUM, which SQLite refuses to run inside a transaction.
type VacuumRule struct{}

// NewVacuumRule creates a new VacuumRule.
func NewVacuumRule() *VacuumRule { return &VacuumRule{} }

// ID returns the rule identifier.
func (r *VacuumRule) ID() string { return "vacuum" }

// Check examines a statement for VACUUM.
func (r *VacuumRule) Check(stmt parser.Statement, ctx *analyzer.RuleContext) []analyzer.Finding {
	if stmt.Keyword(0) != "VACUUM" {
		return nil
	}

	return []analyzer.Finding{{
		Rule:       r.ID(),
		Severity:   analyzer.High,
		Message:    "VACUUM cannot run inside a transaction and fails the script",
		Suggestion: "Run VACUUM manually outside of migrations",
		StmtIndex:  ctx.StmtIndex,
	}}
}
