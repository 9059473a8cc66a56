// Package safety gates destructive actions behind dry-run and confirmation.
package safety

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Options carries the global destructive-action flags.
type Options struct {
	// DryRun means no changes at all; confirmations are declined.
	DryRun bool
	// Yes answers every prompt affirmatively for unattended runs.
	Yes bool
}

// Confirm asks before a destructive action. Dry-run declines without
// prompting, --yes accepts without prompting, otherwise the answer is read
// from in.
func Confirm(opts Options, in io.Reader, out io.Writer, question string) (bool, error) {
	if opts.DryRun {
		return false, nil
	}
	if opts.Yes {
		return true, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))
	}
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
