package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"vault-raft-backup/src/report"
)

// newEventSourceCmd manages the host event source registration. On Windows
// the source must exist before the first scheduled run; on Unix this is a
// no-op kept for script compatibility.
func newEventSourceCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventsource",
		Short: "Manage the host event log source",
	}

	install := &cobra.Command{
		Use:   "install",
		Short: "Register the event log source (requires administrative rights)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := report.Install(cfg.EventSource); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "event source %q registered\n", cfg.EventSource)
			return nil
		},
	}
	addConfigFlags(install)

	remove := &cobra.Command{
		Use:   "remove",
		Short: "Unregister the event log source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := report.Remove(cfg.EventSource); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "event source %q removed\n", cfg.EventSource)
			return nil
		},
	}
	addConfigFlags(remove)

	cmd.AddCommand(install, remove)
	return cmd
}
