package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tffedibot/fedibot/internal/analyzer"
	"github.com/tffedibot/fedibot/internal/parser"
)

type ruleCase struct {
	name         string
	sql          string
	wantCount    int
	wantSeverity analyzer.Severity
	wantTable    string
}

func runRuleCases(t *testing.T, rule analyzer.Rule, tests []ruleCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := parser.Parse(tt.sql)
			require.NoError(t, err)
			require.Len(t, result.Stmts, 1)

			findings := rule.Check(result.Stmts[0], &analyzer.RuleContext{StmtIndex: 3})
			assert.Len(t, findings, tt.wantCount)

			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantSeverity, findings[0].Severity)
				assert.Equal(t, rule.ID(), findings[0].Rule)
				assert.Equal(t, 3, findings[0].StmtIndex)
				assert.NotEmpty(t, findings[0].Message)

				if tt.wantTable != "" {
					assert.Equal(t, tt.wantTable, findings[0].Table)
				}
			}
		})
	}
}
