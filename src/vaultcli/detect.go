package vaultcli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// BinaryInfo describes a located vault CLI binary.
type BinaryInfo struct {
	Path    string
	Version string
}

var versionRegexp = regexp.MustCompile(`Vault v([0-9]+\.[0-9]+\.[0-9]+(?:[-+][A-Za-z0-9.]+)?)`)

// Detect resolves the vault binary (via PATH lookup when the name is bare),
// queries its version, and returns the gathered metadata.
func Detect(ctx context.Context, name string) (BinaryInfo, error) {
	exe, err := exec.LookPath(name)
	if err != nil {
		return BinaryInfo{}, fmt.Errorf("vault binary %q not found: %w", name, err)
	}

	// Guard against a hung binary; version queries should be instant.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	r := &ExecRunner{Path: exe}
	res, err := r.Run(ctx, nil, "version")
	if err != nil {
		return BinaryInfo{}, fmt.Errorf("vault version: %w", err)
	}
	if res.ExitCode != 0 {
		return BinaryInfo{}, &CommandError{Op: "version", Result: res}
	}
	ver, err := ExtractVersion(res.Stdout)
	if err != nil {
		return BinaryInfo{}, err
	}
	return BinaryInfo{Path: exe, Version: ver}, nil
}

// ExtractVersion derives the semantic version from `vault version` output.
func ExtractVersion(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		if m := versionRegexp.FindStringSubmatch(line); len(m) == 2 {
			return m[1], nil
		}
	}
	return "", errors.New("vault: could not parse version output")
}
