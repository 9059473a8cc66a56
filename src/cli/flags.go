package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vault-raft-backup/src/config"
)

// addConfigFlags attaches the configuration flags shared by run, check,
// prune, and schedule. Flag values override the YAML file and the
// VAULTBACKUP_* environment.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to YAML config file")
	cmd.Flags().String("token", "", "Vault service token (prefer VAULTBACKUP_TOKEN or --token-stdin)")
	cmd.Flags().Bool("token-stdin", false, "Read the service token from standard input")
	cmd.Flags().String("vault-bin", "", "Path or name of the vault binary")
	cmd.Flags().String("backup-dir", "", "Directory snapshots are written to")
	cmd.Flags().Int("retention-days", -1, "Delete backups older than this many days (with --prune)")
	cmd.Flags().Bool("prune", false, "Prune expired backups before taking the snapshot")
	cmd.Flags().StringArray("age-recipient", nil, "age X25519 recipient; encrypt the snapshot (repeatable)")
	cmd.Flags().String("metrics-textfile", "", "Write node_exporter textfile metrics to this path")
	cmd.Flags().Duration("command-timeout", 0, "Bound each vault invocation (0 = no timeout)")
	cmd.Flags().String("event-source", "", "Event log source / syslog tag")
}

// loadConfig layers the YAML file, environment, and explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("token") {
		cfg.Token, _ = flags.GetString("token")
	}
	if flags.Changed("vault-bin") {
		cfg.VaultBin, _ = flags.GetString("vault-bin")
	}
	if flags.Changed("backup-dir") {
		cfg.BackupDir, _ = flags.GetString("backup-dir")
	}
	if flags.Changed("retention-days") {
		cfg.RetentionDays, _ = flags.GetInt("retention-days")
	}
	if flags.Changed("prune") {
		cfg.Prune, _ = flags.GetBool("prune")
	}
	if flags.Changed("age-recipient") {
		cfg.AgeRecipients, _ = flags.GetStringArray("age-recipient")
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile, _ = flags.GetString("metrics-textfile")
	}
	if flags.Changed("command-timeout") {
		var d time.Duration
		d, _ = flags.GetDuration("command-timeout")
		cfg.CommandTimeout = d
	}
	if flags.Changed("event-source") {
		cfg.EventSource, _ = flags.GetString("event-source")
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveToken ensures cfg.Token is populated: flag and environment first,
// then --token-stdin, then an interactive no-echo prompt when stderr is a
// terminal. The token never appears on the child's command line.
func resolveToken(cmd *cobra.Command, cfg *config.Config, stdin io.Reader, stderr io.Writer) error {
	if cfg.Token != "" {
		return nil
	}
	if fromStdin, _ := cmd.Flags().GetBool("token-stdin"); fromStdin {
		scanner := bufio.NewScanner(stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read token from stdin: %w", err)
			}
			return errors.New("read token from stdin: empty input")
		}
		cfg.Token = strings.TrimSpace(scanner.Text())
		if cfg.Token == "" {
			return errors.New("read token from stdin: empty input")
		}
		return nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stderr, "Vault token: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(stderr)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		cfg.Token = strings.TrimSpace(string(raw))
		if cfg.Token == "" {
			return errors.New("read token: empty input")
		}
		return nil
	}
	return errors.New("no token supplied: use --token, --token-stdin, or VAULTBACKUP_TOKEN")
}
