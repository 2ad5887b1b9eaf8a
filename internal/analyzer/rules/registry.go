package rules

import "github.com/tffedibot/fedibot/internal/analyzer"

// NewDefaultRegistry returns a Registry with all built-in detection rules.
func NewDefaultRegistry() *analyzer.Registry {
	r := analyzer.NewRegistry()
	r.Register(NewTransactionControlRule())
	r.Register(NewVacuumRule())
	r.Register(NewAttachRule())
	r.Register(NewPragmaRule())
	r.Register(NewDropTableRule())
	r.Register(NewAddColumnRule())
	r.Register(NewRenameRule())
	r.Register(NewCreateIndexRule())

	return r
}
