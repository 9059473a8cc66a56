// Package run drives one backup invocation through its state machine:
// checking preconditions, pruning, snapshotting, renewing. Any step failure
// is terminal for the run; the next scheduled invocation is the retry.
package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"vault-raft-backup/src/backup"
	"vault-raft-backup/src/config"
	"vault-raft-backup/src/preflight"
	"vault-raft-backup/src/prune"
	"vault-raft-backup/src/report"
	"vault-raft-backup/src/vaultcli"
)

// State identifies how far a run progressed.
type State int

const (
	StateStart State = iota
	StateChecking
	StatePruning
	StateSnapshotting
	StateRenewing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking-preconditions"
	case StatePruning:
		return "pruning"
	case StateSnapshotting:
		return "snapshotting"
	case StateRenewing:
		return "renewing"
	case StateDone:
		return "done"
	default:
		return "start"
	}
}

// Outcome is the inspectable result of one run. Err is nil only when the run
// reached StateDone; otherwise State names the step that failed.
type Outcome struct {
	State        State
	Err          error
	PrunedFiles  int
	SnapshotPath string
	Duration     time.Duration
}

// Failed reports whether the run ended in the terminal failed state.
func (o Outcome) Failed() bool { return o.Err != nil }

// Deps collects the run's collaborators so tests can substitute doubles.
// Zero fields get production defaults.
type Deps struct {
	Runner   vaultcli.Runner
	Reporter report.Reporter
	Logger   *slog.Logger
	Now      func() time.Time
	Hostname func() (string, error)
}

func (d *Deps) fillDefaults() {
	if d.Reporter == nil {
		d.Reporter = &report.Log{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Hostname == nil {
		d.Hostname = os.Hostname
	}
}

// Execute performs the full sequence. It is strictly sequential, runs at most
// one subprocess at a time, and writes exactly one error event when a step
// fails.
func Execute(ctx context.Context, cfg *config.Config, deps Deps) Outcome {
	deps.fillDefaults()
	start := deps.Now()
	runID := uuid.NewString()
	logger := deps.Logger.With("run_id", runID)

	fail := func(state State, err error) Outcome {
		logger.Error("run failed", "state", state.String(), "error", err)
		ev := report.Event{
			ID:       report.EventRunFailed,
			Severity: report.Error,
			Message:  fmt.Sprintf("backup run %s failed during %s: %v", runID, state, err),
		}
		if rerr := deps.Reporter.Report(ev); rerr != nil {
			logger.Error("report failure event", "error", rerr)
		}
		return Outcome{State: state, Err: err, Duration: deps.Now().Sub(start)}
	}

	// Preconditions.
	logger.Info("checking preconditions", "vault_bin", cfg.VaultBin, "backup_dir", cfg.BackupDir)
	resolved, err := preflight.Check(cfg.VaultBin, cfg.BackupDir)
	if err != nil {
		return fail(StateChecking, err)
	}
	runner := deps.Runner
	if runner == nil {
		runner = &vaultcli.ExecRunner{Path: resolved, Timeout: cfg.CommandTimeout}
	}

	// Retention.
	pruned := 0
	if !cfg.Prune {
		logger.Info("prune disabled, skipping")
		if err := deps.Reporter.Report(report.Event{
			ID:       report.EventPruneSkipped,
			Severity: report.Info,
			Message:  "backup prune skipped (disabled)",
		}); err != nil {
			logger.Warn("report prune-skipped event", "error", err)
		}
	} else {
		cutoff := prune.Cutoff(deps.Now(), cfg.RetentionDays)
		candidates, err := prune.Plan(cfg.BackupDir, cutoff)
		if err != nil {
			return fail(StatePruning, err)
		}
		pruned, err = prune.Apply(candidates)
		if err != nil {
			return fail(StatePruning, err)
		}
		logger.Info("pruned expired backups", "count", pruned, "cutoff", cutoff)
		if err := deps.Reporter.Report(report.Event{
			ID:       report.EventPruneOK,
			Severity: report.Info,
			Message:  fmt.Sprintf("pruned %d backup file(s) older than %s", pruned, cutoff.Format(time.RFC3339)),
		}); err != nil {
			logger.Warn("report prune event", "error", err)
		}
	}

	// Snapshot.
	host, err := deps.Hostname()
	if err != nil {
		return fail(StateSnapshotting, fmt.Errorf("resolve hostname: %w", err))
	}
	recipients, err := backup.ParseRecipients(cfg.AgeRecipients)
	if err != nil {
		return fail(StateSnapshotting, err)
	}
	path, err := backup.Take(ctx, runner, cfg.Token, backup.Options{
		Dir:        cfg.BackupDir,
		Host:       host,
		Recipients: recipients,
		Now:        deps.Now(),
	})
	if err != nil {
		return fail(StateSnapshotting, err)
	}
	logger.Info("snapshot saved", "path", path)
	if err := deps.Reporter.Report(report.Event{
		ID:       report.EventBackupOK,
		Severity: report.Info,
		Message:  fmt.Sprintf("raft snapshot saved to %s", path),
	}); err != nil {
		logger.Warn("report backup event", "error", err)
	}

	// Renewal.
	if err := vaultcli.TokenRenew(ctx, runner, cfg.Token); err != nil {
		return fail(StateRenewing, err)
	}
	logger.Info("service token renewed")
	if err := deps.Reporter.Report(report.Event{
		ID:       report.EventRenewOK,
		Severity: report.Info,
		Message:  "backup service token renewed",
	}); err != nil {
		logger.Warn("report renew event", "error", err)
	}

	return Outcome{
		State:        StateDone,
		PrunedFiles:  pruned,
		SnapshotPath: path,
		Duration:     deps.Now().Sub(start),
	}
}
