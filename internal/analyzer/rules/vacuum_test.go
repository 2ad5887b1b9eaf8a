package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/analyzer/rules"
)

func TestVacuumRule_ID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "vacuum", rules.NewVacuumRule().ID())
}

func TestVacuumRule_Check(t *testing.T) {
	t.Parallel()

	runRuleCases(t, rules.NewVacuumRule(), []ruleCase{
		{name: "VACUUM is HIGH", sql: "VACUUM;", wantCount: 1, wantSeverity: analyzer.High},
		{name: "VACUUM INTO is HIGH", sql: "VACUUM INTO 'backup.db';", wantCount: 1, wantSeverity: analyzer.High},
		{name: "ANALYZE is not flagged", sql: "ANALYZE;", wantCount: 0},
	})
}

func TestAttachRule_ID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "attach-detach", rules.NewAttachRule().ID())
}

func TestAttachRule_Check(t *testing.T) {
	t.Parallel()

	runRuleCases(t, rules.NewAttachRule(), []ruleCase{
		{name: "ATTACH is HIGH", sql: "ATTACH DATABASE 'other.db' AS other;", wantCount: 1, wantSeverity: analyzer.High},
		{name: "DETACH is HIGH", sql: "DETACH other;", wantCount: 1, wantSeverity: analyzer.High},
		{name: "SELECT is not flagged", sql: "SELECT 'ATTACH';", wantCount: 0},
	})
}
