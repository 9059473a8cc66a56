package run

import (
	"fmt"
	"path/filepath"
	"strings"

	"vault-raft-backup/src/backup"
	"vault-raft-backup/src/config"
	"vault-raft-backup/src/preflight"
	"vault-raft-backup/src/prune"
)

// Preview reports what a run would do without spawning subprocesses or
// deleting files. Preconditions are still checked, since the check itself is
// side-effect free.
func Preview(cfg *config.Config, deps Deps) (string, error) {
	deps.fillDefaults()

	resolved, err := preflight.Check(cfg.VaultBin, cfg.BackupDir)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "executable: %s\n", resolved)
	fmt.Fprintf(&b, "backup dir: %s\n", cfg.BackupDir)

	if !cfg.Prune {
		fmt.Fprintln(&b, "prune: disabled (would report skipped)")
	} else {
		cutoff := prune.Cutoff(deps.Now(), cfg.RetentionDays)
		candidates, err := prune.Plan(cfg.BackupDir, cutoff)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "prune: would delete %d file(s) older than %s\n",
			len(candidates), cutoff.Format("2006-01-02 15:04:05"))
		for _, c := range candidates {
			fmt.Fprintf(&b, "  delete %s (modified %s)\n", c.Path, c.ModTime.Format("2006-01-02 15:04:05"))
		}
	}

	host, err := deps.Hostname()
	if err != nil {
		return "", fmt.Errorf("resolve hostname: %w", err)
	}
	name := backup.SnapshotName(host, deps.Now())
	if len(cfg.AgeRecipients) > 0 {
		name += ".age"
	}
	fmt.Fprintf(&b, "snapshot: would write %s\n", filepath.Join(cfg.BackupDir, name))
	fmt.Fprintln(&b, "renew: would renew the service token")
	return b.String(), nil
}
