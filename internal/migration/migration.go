package migration

import "strings"

const (
	// ScriptToken is the literal that opens the final segment of a script resource.
	ScriptToken = "Script"
	// ScriptSuffix is the file suffix every script resource carries.
	ScriptSuffix = ".sql"
)

// Script is a single named migration discovered in a bundle.
type Script struct {
	Name     string // "0001_ProgramRun", the key used for diffing and ordering
	Body     string // Full text of the resource
	Resource string // "fedibot.store.Migrations.Script0001_ProgramRun.sql"
}

// Source discovers the migration scripts available under a resource prefix.
// Implementations must be re-invocable and return the same scripts for the
// same bundle content.
type Source interface {
	Scripts(prefix string) ([]Script, error)
}

// ParseResourceName extracts the script name from a resource identifier of the
// form <prefix>.<Category>.Script<Name>.sql. It reports false for resources
// that are outside prefix or do not follow the naming convention.
func ParseResourceName(prefix, resource string) (string, bool) {
	if !strings.HasPrefix(resource, prefix) || !strings.HasSuffix(resource, ScriptSuffix) {
		return "", false
	}

	stem := strings.TrimSuffix(resource, ScriptSuffix)

	segment := stem
	if i := strings.LastIndexByte(stem, '.'); i >= 0 {
		segment = stem[i+1:]
	}

	name, ok := strings.CutPrefix(segment, ScriptToken)
	if !ok || name == "" {
		return "", false
	}

	return name, true
}
