package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tffedibot/fedibot/internal/analyzer/rules"
)

func TestNewDefaultRegistry_registersEveryRuleOnce(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0, 8)
	for _, rule := range rules.NewDefaultRegistry().Rules() {
		ids = append(ids, rule.ID())
	}

	assert.ElementsMatch(t, []string{
		"transaction-control",
		"vacuum",
		"attach-detach",
		"pragma-in-transaction",
		"drop-table",
		"add-column-constraint",
		"rename",
		"create-unique-index",
	}, ids)
}
