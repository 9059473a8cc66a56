package report

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestMemoryRecordsInOrder(t *testing.T) {
	m := &Memory{}
	_ = m.Report(Event{ID: EventPruneSkipped, Severity: Info, Message: "skipped"})
	_ = m.Report(Event{ID: EventBackupOK, Severity: Info, Message: "saved"})
	_ = m.Report(Event{ID: EventRenewOK, Severity: Info, Message: "renewed"})

	if len(m.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(m.Events))
	}
	if m.Events[1].ID != EventBackupOK {
		t.Fatalf("unexpected order: %#v", m.Events)
	}
	if got := m.ByID(EventRenewOK); len(got) != 1 || got[0].Message != "renewed" {
		t.Fatalf("ByID mismatch: %#v", got)
	}
}

type failingSink struct{}

func (failingSink) Report(Event) error { return errors.New("sink down") }

func TestMultiFansOutAndReturnsFirstError(t *testing.T) {
	m := &Memory{}
	multi := Multi{failingSink{}, m}
	err := multi.Report(Event{ID: EventBackupOK, Severity: Info, Message: "saved"})
	if err == nil || err.Error() != "sink down" {
		t.Fatalf("expected first error, got %v", err)
	}
	if len(m.Events) != 1 {
		t.Fatalf("second sink should still receive the event")
	}
}

func TestLogSinkSeverities(t *testing.T) {
	var buf bytes.Buffer
	l := &Log{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	if err := l.Report(Event{ID: EventBackupOK, Severity: Info, Message: "saved"}); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if err := l.Report(Event{ID: EventRunFailed, Severity: Error, Message: "boom"}); err != nil {
		t.Fatalf("Report: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "event 1000: saved") {
		t.Fatalf("missing info event in output: %s", out)
	}
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "event 1100: boom") {
		t.Fatalf("missing error event in output: %s", out)
	}
}

func TestSeverityString(t *testing.T) {
	if Info.String() != "info" || Error.String() != "error" {
		t.Fatalf("severity strings wrong: %s/%s", Info, Error)
	}
}
