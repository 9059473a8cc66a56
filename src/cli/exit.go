package cli

import "vault-raft-backup/src/run"

// Process exit codes, one per failure class.
const (
	ExitSuccess      = 0
	ExitUsage        = 1
	ExitPrecondition = 2
	ExitPrune        = 3
	ExitSnapshot     = 4
	ExitRenew        = 5
)

// exitError carries the exit code chosen by the failing step through cobra's
// error return.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func codeForState(s run.State) int {
	switch s {
	case run.StateChecking:
		return ExitPrecondition
	case run.StatePruning:
		return ExitPrune
	case run.StateSnapshotting:
		return ExitSnapshot
	case run.StateRenewing:
		return ExitRenew
	default:
		return ExitUsage
	}
}
