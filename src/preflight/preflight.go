// Package preflight validates the environment before any destructive or
// external operation runs.
package preflight

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	ErrMissingExecutable = errors.New("executable not found")
	ErrMissingDirectory  = errors.New("backup directory not found")
	ErrNotWritable       = errors.New("backup directory not writable")
)

// Check verifies that binPath resolves to a regular file and that backupDir
// exists and is writable. Writability is established by creating and removing
// a probe file, so a successful check leaves no residue. Returns the resolved
// executable path.
func Check(binPath, backupDir string) (string, error) {
	resolved, err := resolveExecutable(binPath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(backupDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrMissingDirectory, backupDir)
	}

	probe := filepath.Join(backupDir, fmt.Sprintf(".vault-raft-backup-probe-%d", os.Getpid()))
	if err := os.WriteFile(probe, []byte("probe"), 0o600); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotWritable, backupDir, err)
	}
	if err := os.Remove(probe); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotWritable, backupDir, err)
	}
	return resolved, nil
}

func resolveExecutable(binPath string) (string, error) {
	// Bare names are resolved against PATH; anything with a separator must
	// point at a regular file directly.
	if !strings.ContainsRune(binPath, os.PathSeparator) {
		exe, err := exec.LookPath(binPath)
		if err != nil {
			return "", fmt.Errorf("%w: %q not on PATH", ErrMissingExecutable, binPath)
		}
		return exe, nil
	}
	info, err := os.Stat(binPath)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrMissingExecutable, binPath)
	}
	return binPath, nil
}
