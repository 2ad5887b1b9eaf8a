package executor

import "fmt"

// Failure names the script that halted a run and why.
type Failure struct {
	Script string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("migration %s failed: %v", f.Script, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Result describes a completed Migrate run.
type Result struct {
	Prefix  string
	Pending []string // Names pending when the run started, in application order
	Applied []string // Names applied and committed by this run
	Failure *Failure // Set when a script halted the run
	DryRun  bool
}

// Success reports whether every pending script applied cleanly.
func (r *Result) Success() bool {
	return r.Failure == nil
}
