package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"vault-raft-backup/src/config"
	"vault-raft-backup/src/metrics"
	"vault-raft-backup/src/report"
	"vault-raft-backup/src/run"
)

// executeRun is a seam for tests.
var executeRun = run.Execute

// SetExecuteRunForTest replaces the run entry point and returns a restore
// function.
func SetExecuteRunForTest(fn func(ctx context.Context, cfg *config.Config, deps run.Deps) run.Outcome) func() {
	prev := executeRun
	executeRun = fn
	return func() { executeRun = prev }
}

func newRunCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Check preconditions, prune expired backups, save a raft snapshot, and renew the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, stderr)

			opts := getSafetyOptions(cmd)
			if opts.DryRun {
				plan, err := run.Preview(cfg, run.Deps{Logger: logger})
				if err != nil {
					return &exitError{code: ExitPrecondition, err: err}
				}
				fmt.Fprint(stdout, plan)
				return nil
			}

			if err := resolveToken(cmd, cfg, os.Stdin, stderr); err != nil {
				return err
			}

			reporter := openReporter(cfg, logger)
			outcome := executeRun(cmd.Context(), cfg, run.Deps{
				Reporter: reporter,
				Logger:   logger,
			})
			writeMetrics(cfg, outcome, logger)

			if outcome.Failed() {
				return &exitError{code: codeForState(outcome.State), err: outcome.Err}
			}
			fmt.Fprintf(stdout, "snapshot written: %s\n", outcome.SnapshotPath)
			return nil
		},
	}
	addConfigFlags(cmd)
	return cmd
}

// openReporter opens the host event sink, falling back to console logging
// when the sink is unavailable (e.g. no syslog daemon, unregistered source).
func openReporter(cfg *config.Config, logger *slog.Logger) report.Reporter {
	sink, err := report.NewHostSink(cfg.EventSource)
	if err != nil {
		logger.Warn("host event sink unavailable, logging events to console", "error", err)
		return &report.Log{Logger: logger}
	}
	return sink
}

// writeMetrics exports the outcome for the textfile collector; never fatal.
func writeMetrics(cfg *config.Config, outcome run.Outcome, logger *slog.Logger) {
	if cfg.MetricsTextfile == "" {
		return
	}
	var size int64
	if outcome.SnapshotPath != "" {
		if info, err := os.Stat(outcome.SnapshotPath); err == nil {
			size = info.Size()
		}
	}
	m := metrics.RunMetrics{
		Success:       !outcome.Failed(),
		State:         outcome.State.String(),
		Duration:      outcome.Duration,
		PrunedFiles:   outcome.PrunedFiles,
		SnapshotBytes: size,
	}
	if err := metrics.Write(cfg.MetricsTextfile, m); err != nil {
		logger.Warn("write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
	}
}
