package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"vault-raft-backup/src/prune"
	"vault-raft-backup/src/report"
	"vault-raft-backup/src/safety"
)

// timeNow is a seam for tests.
var timeNow = time.Now

func newPruneCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete backup files older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, stderr)

			cutoff := prune.Cutoff(timeNow(), cfg.RetentionDays)
			candidates, err := prune.Plan(cfg.BackupDir, cutoff)
			if err != nil {
				return &exitError{code: ExitPrune, err: err}
			}

			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tMODIFIED\tACTION")
			for _, c := range candidates {
				fmt.Fprintf(tw, "%s\t%s\tdelete\n", c.Path, c.ModTime.Format("2006-01-02 15:04:05"))
			}
			_ = tw.Flush()

			opts := getSafetyOptions(cmd)
			if opts.DryRun || len(candidates) == 0 {
				return nil
			}
			ok, err := safety.Confirm(opts, os.Stdin, stdout, fmt.Sprintf("Delete %d backup file(s)?", len(candidates)))
			if err != nil || !ok {
				return err
			}

			n, err := prune.Apply(candidates)
			if err != nil {
				return &exitError{code: ExitPrune, err: err}
			}
			if rerr := openReporter(cfg, logger).Report(report.Event{
				ID:       report.EventPruneOK,
				Severity: report.Info,
				Message:  fmt.Sprintf("pruned %d backup file(s) older than %s", n, cutoff.Format("2006-01-02 15:04:05")),
			}); rerr != nil {
				logger.Warn("report prune event", "error", rerr)
			}
			fmt.Fprintf(stdout, "deleted %d file(s)\n", n)
			return nil
		},
	}
	addConfigFlags(cmd)
	return cmd
}
