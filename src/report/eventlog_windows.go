//go:build windows

package report

import (
	"fmt"

	"golang.org/x/sys/windows/svc/eventlog"
)

// hostSink writes to the Windows Application event log under a named source.
// The source must be registered (see Install) before the first write.
type hostSink struct {
	log *eventlog.Log
}

// NewHostSink opens the Windows event log for the given source.
func NewHostSink(source string) (Reporter, error) {
	l, err := eventlog.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open event log source %q: %w", source, err)
	}
	return &hostSink{log: l}, nil
}

func (s *hostSink) Report(ev Event) error {
	if ev.Severity == Error {
		return s.log.Error(ev.ID, ev.Message)
	}
	return s.log.Info(ev.ID, ev.Message)
}

// Install registers the event source. Run once by an operator with
// administrative rights before the first scheduled run.
func Install(source string) error {
	return eventlog.InstallAsEventCreate(source, eventlog.Info|eventlog.Warning|eventlog.Error)
}

// Remove unregisters the event source.
func Remove(source string) error {
	return eventlog.Remove(source)
}
