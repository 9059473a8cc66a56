// Package report writes run outcomes to the host event sink. Event
// identifiers are fixed so operators can key alerting off them.
package report

import (
	"fmt"
	"log/slog"
)

// Fixed event identifiers.
const (
	EventBackupOK     uint32 = 1000
	EventRenewOK      uint32 = 1001
	EventPruneOK      uint32 = 1002
	EventPruneSkipped uint32 = 1003
	EventRunFailed    uint32 = 1100
)

// Severity of an event entry.
type Severity int

const (
	Info Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "info"
}

// Event is one append-only entry destined for the host event sink.
type Event struct {
	ID       uint32
	Severity Severity
	Message  string
}

// Reporter delivers events to a sink.
type Reporter interface {
	Report(ev Event) error
}

// Memory records events in order; used by tests.
type Memory struct {
	Events []Event
}

func (m *Memory) Report(ev Event) error {
	m.Events = append(m.Events, ev)
	return nil
}

// ByID returns the recorded events carrying the given identifier.
func (m *Memory) ByID(id uint32) []Event {
	var out []Event
	for _, ev := range m.Events {
		if ev.ID == id {
			out = append(out, ev)
		}
	}
	return out
}

// Multi fans an event out to every sink, returning the first error.
type Multi []Reporter

func (m Multi) Report(ev Event) error {
	var first error
	for _, r := range m {
		if err := r.Report(ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Log writes events through an slog.Logger. It serves as the fallback sink
// when the host event sink cannot be opened.
type Log struct {
	Logger *slog.Logger
}

func (l *Log) Report(ev Event) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	msg := fmt.Sprintf("event %d: %s", ev.ID, ev.Message)
	if ev.Severity == Error {
		logger.Error(msg)
	} else {
		logger.Info(msg)
	}
	return nil
}
