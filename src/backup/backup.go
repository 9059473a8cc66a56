// Package backup produces the point-in-time raft snapshot file.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"filippo.io/age"

	"vault-raft-backup/src/vaultcli"
)

// Options configures one snapshot.
type Options struct {
	Dir  string
	Host string
	// Recipients, when non-empty, cause the written snapshot to be
	// encrypted to <name>.age and the plaintext removed.
	Recipients []age.Recipient
	Now        time.Time
}

// SnapshotName returns <host>-raft.<timestamp>.snap. The timestamp components
// are intentionally not zero-padded and carry a single underscore between the
// date and time halves, matching the names produced by earlier tooling so
// retention treats old and new files alike.
func SnapshotName(host string, now time.Time) string {
	ts := fmt.Sprintf("%d%d%d_%d%d%d",
		now.Year(), int(now.Month()), now.Day(),
		now.Hour(), now.Minute(), now.Second())
	return fmt.Sprintf("%s-raft.%s.snap", host, ts)
}

// Take invokes the snapshot-save subcommand and returns the path of the file
// it reported writing. Success is judged solely by the subprocess exit code.
func Take(ctx context.Context, r vaultcli.Runner, token string, opts Options) (string, error) {
	path := filepath.Join(opts.Dir, SnapshotName(opts.Host, opts.Now))
	if err := vaultcli.SnapshotSave(ctx, r, token, path); err != nil {
		return "", err
	}
	if len(opts.Recipients) > 0 {
		enc, err := EncryptFile(path, opts.Recipients)
		if err != nil {
			return "", err
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("remove plaintext snapshot: %w", err)
		}
		return enc, nil
	}
	return path, nil
}

// EncryptFile encrypts path to path+".age" for the given recipients and
// returns the encrypted file's path. The plaintext is left in place for the
// caller to dispose of.
func EncryptFile(path string, recipients []age.Recipient) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("encrypt snapshot: %w", err)
	}
	defer in.Close()

	outPath := path + ".age"
	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("encrypt snapshot: %w", err)
	}

	w, err := age.Encrypt(out, recipients...)
	if err != nil {
		out.Close()
		return "", fmt.Errorf("encrypt snapshot: %w", err)
	}
	if _, err := io.Copy(w, in); err != nil {
		w.Close()
		out.Close()
		return "", fmt.Errorf("encrypt snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		out.Close()
		return "", fmt.Errorf("encrypt snapshot: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("encrypt snapshot: %w", err)
	}
	return outPath, nil
}

// ParseRecipients parses age X25519 recipient strings.
func ParseRecipients(values []string) ([]age.Recipient, error) {
	out := make([]age.Recipient, 0, len(values))
	for _, v := range values {
		r, err := age.ParseX25519Recipient(v)
		if err != nil {
			return nil, fmt.Errorf("parse age recipient %q: %w", v, err)
		}
		out = append(out, r)
	}
	return out, nil
}
