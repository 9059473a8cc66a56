package vaultcli

import (
	"context"
	"strings"
)

// FakeCall records one invocation observed by a FakeRunner.
type FakeCall struct {
	Args []string
	Env  []string
}

// FakeRunner is an in-memory Runner for unit tests. Responses are keyed by
// the space-joined argument list; unmatched invocations get Default, whose
// zero value is a successful exit.
type FakeRunner struct {
	Responses map[string]Result
	Default   Result
	Err       error
	Calls     []FakeCall
}

func NewFake() *FakeRunner {
	return &FakeRunner{Responses: map[string]Result{}}
}

func (f *FakeRunner) Run(_ context.Context, extraEnv []string, args ...string) (Result, error) {
	f.Calls = append(f.Calls, FakeCall{Args: args, Env: extraEnv})
	if f.Err != nil {
		return Result{}, f.Err
	}
	if res, ok := f.Responses[strings.Join(args, " ")]; ok {
		return res, nil
	}
	return f.Default, nil
}

// CalledWith reports whether any recorded call starts with the given
// argument prefix.
func (f *FakeRunner) CalledWith(prefix ...string) bool {
	for _, c := range f.Calls {
		if len(c.Args) < len(prefix) {
			continue
		}
		match := true
		for i := range prefix {
			if c.Args[i] != prefix[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
