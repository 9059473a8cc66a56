package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"vault-raft-backup/src/preflight"
	"vault-raft-backup/src/vaultcli"
)

func newCheckCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the vault binary and backup directory without making changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			resolved, err := preflight.Check(cfg.VaultBin, cfg.BackupDir)
			if err != nil {
				return &exitError{code: ExitPrecondition, err: err}
			}
			fmt.Fprintf(stdout, "executable: %s\n", resolved)
			fmt.Fprintf(stdout, "backup dir: %s (writable)\n", cfg.BackupDir)

			info, err := vaultcli.Detect(cmd.Context(), cfg.VaultBin)
			if err != nil {
				return &exitError{code: ExitPrecondition, err: err}
			}
			fmt.Fprintf(stdout, "vault version: %s\n", info.Version)
			return nil
		},
	}
	addConfigFlags(cmd)
	return cmd
}
