package vaultcli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"
)

// Result captures one completed invocation of the external binary.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes the vault binary with the given arguments. extraEnv entries
// are appended to the child's environment; secrets travel only through it,
// never through argv. The returned error is non-nil only when the process
// could not be spawned or waited on; a non-zero exit is reported in Result.
type Runner interface {
	Run(ctx context.Context, extraEnv []string, args ...string) (Result, error)
}

// ExecRunner runs the binary at Path via os/exec with both standard streams
// captured into buffers. A Timeout of zero means the invocation blocks until
// the child exits.
type ExecRunner struct {
	Path    string
	Timeout time.Duration
}

func (r *ExecRunner) Run(ctx context.Context, extraEnv []string, args ...string) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Path, args...)
	cmd.Env = append(os.Environ(), extraEnv...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	res := Result{Stdout: stdoutBuf.String(), Stderr: stderrBuf.String()}
	if err == nil {
		return res, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}
