package vaultcli

import (
	"context"
	"fmt"
	"strings"
)

// TokenEnv is the environment variable the vault binary reads its
// credential from.
const TokenEnv = "VAULT_TOKEN"

// CommandError reports a vault invocation that exited non-zero. The captured
// stderr is the fault detail surfaced to the operator.
type CommandError struct {
	Op     string
	Result Result
}

func (e *CommandError) Error() string {
	detail := strings.TrimSpace(e.Result.Stderr)
	if detail == "" {
		detail = strings.TrimSpace(e.Result.Stdout)
	}
	if detail == "" {
		return fmt.Sprintf("vault %s: exit status %d", e.Op, e.Result.ExitCode)
	}
	return fmt.Sprintf("vault %s: exit status %d: %s", e.Op, e.Result.ExitCode, detail)
}

func tokenEnv(token string) []string {
	if token == "" {
		return nil
	}
	return []string{TokenEnv + "=" + token}
}

// SnapshotSave runs `vault operator raft snapshot save <outPath>`. Success is
// determined solely by a zero exit code.
func SnapshotSave(ctx context.Context, r Runner, token, outPath string) error {
	res, err := r.Run(ctx, tokenEnv(token), "operator", "raft", "snapshot", "save", outPath)
	if err != nil {
		return fmt.Errorf("vault snapshot save: %w", err)
	}
	if res.ExitCode != 0 {
		return &CommandError{Op: "operator raft snapshot save", Result: res}
	}
	return nil
}

// TokenRenew runs `vault token renew` with no arguments, extending the TTL of
// the token supplied via the child environment.
func TokenRenew(ctx context.Context, r Runner, token string) error {
	res, err := r.Run(ctx, tokenEnv(token), "token", "renew")
	if err != nil {
		return fmt.Errorf("vault token renew: %w", err)
	}
	if res.ExitCode != 0 {
		return &CommandError{Op: "token renew", Result: res}
	}
	return nil
}
