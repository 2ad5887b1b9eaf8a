package analyzer

import (
	"regexp"
	"strings"

	"github.com/tffedibot/fedibot/internal/migration"
	"github.com/tffedibot/fedibot/internal/parser"
)

// Rule is the interface that all detection rules implement.
type Rule interface {
	// ID returns a unique kebab-case identifier for this rule.
	ID() string
	// Check examines a single statement and returns any findings.
	Check(stmt parser.Statement, ctx *RuleContext) []Finding
}

// RuleContext provides contextual information to rules during analysis.
type RuleContext struct {
	Script    *migration.Script
	StmtIndex int
}

// Registry holds a collection of rules.
type Registry struct {
	rules []Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a rule to the registry.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Rules returns all registered rules.
func (r *Registry) Rules() []Rule {
	return r.rules
}

var tableNamePattern = regexp.MustCompile(
	`(?is)\b(?:TABLE|FROM|INTO|ON)\s+(?:IF\s+(?:NOT\s+)?EXISTS\s+)?` +
		"(\"(?:[^\"]|\"\")+\"|\\[[^\\]]+\\]|`[^`]+`|[\\w$.]+)")

// TableName extracts the table a statement targets, unquoted.
// Returns "" when no table reference is found.
func TableName(text string) string {
	m := tableNamePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	name := m[1]
	switch name[0] {
	case '"':
		return strings.ReplaceAll(name[1:len(name)-1], `""`, `"`)
	case '[', '`':
		return name[1 : len(name)-1]
	default:
		return name
	}
}
