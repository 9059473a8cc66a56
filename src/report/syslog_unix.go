//go:build !windows

package report

import (
	"fmt"
	"log/syslog"
)

// hostSink writes to the local syslog daemon under a named tag, the closest
// Unix equivalent of a registered event log source.
type hostSink struct {
	w *syslog.Writer
}

// NewHostSink opens a syslog connection tagged with source.
func NewHostSink(source string) (Reporter, error) {
	w, err := syslog.New(syslog.LOG_INFO|syslog.LOG_DAEMON, source)
	if err != nil {
		return nil, fmt.Errorf("open syslog for %q: %w", source, err)
	}
	return &hostSink{w: w}, nil
}

func (s *hostSink) Report(ev Event) error {
	msg := fmt.Sprintf("[%d] %s", ev.ID, ev.Message)
	if ev.Severity == Error {
		return s.w.Err(msg)
	}
	return s.w.Info(msg)
}

// Install is a no-op on Unix; syslog tags need no registration.
func Install(string) error { return nil }

// Remove is a no-op on Unix.
func Remove(string) error { return nil }
