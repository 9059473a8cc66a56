package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vault-raft-backup/src/run"
	"vault-raft-backup/src/schedule"
)

func newScheduleCmd(stdout, stderr io.Writer) *cobra.Command {
	var cronSpec string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the backup sequence on a cron schedule (for hosts without a scheduler)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cronSpec != "" {
				cfg.Cron = cronSpec
			}
			if cfg.Cron == "" {
				return errors.New("--cron (or the cron config field) is required")
			}
			logger := newLogger(cmd, stderr)

			if err := resolveToken(cmd, cfg, os.Stdin, stderr); err != nil {
				return err
			}
			reporter := openReporter(cfg, logger)

			sched, err := schedule.New(cfg.Cron, logger, func(ctx context.Context) {
				outcome := executeRun(ctx, cfg, run.Deps{Reporter: reporter, Logger: logger})
				writeMetrics(cfg, outcome, logger)
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return sched.Start(ctx)
		},
	}
	addConfigFlags(cmd)
	cmd.Flags().StringVar(&cronSpec, "cron", "", "Cron expression, e.g. \"15 2 * * *\"")
	return cmd
}
