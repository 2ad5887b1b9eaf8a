package executor

import "errors"

// ErrBeginTransaction indicates the enclosing migration transaction could not be opened.
var ErrBeginTransaction = errors.New("beginning migration transaction")

// ErrCommitTransaction indicates the enclosing migration transaction could not be committed.
var ErrCommitTransaction = errors.New("committing migration transaction")

// ErrDiscovery indicates the script source could not enumerate its scripts.
var ErrDiscovery = errors.New("discovering migration scripts")
