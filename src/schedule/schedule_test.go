package schedule

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRejectsInvalidExpression(t *testing.T) {
	if _, err := New("not a cron", testLogger(), func(context.Context) {}); err == nil {
		t.Fatalf("expected error for invalid cron expression")
	}
}

func TestNewAcceptsStandardExpression(t *testing.T) {
	if _, err := New("15 2 * * *", testLogger(), func(context.Context) {}); err != nil {
		t.Fatalf("New: %v", err)
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	s, err := New("* * * * *", testLogger(), func(context.Context) {})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Start did not stop after cancellation")
	}
}

func TestTryRunSkipsOverlappingRuns(t *testing.T) {
	block := make(chan struct{})
	var mu sync.Mutex
	runs := 0
	s, err := New("* * * * *", testLogger(), func(context.Context) {
		mu.Lock()
		runs++
		mu.Unlock()
		<-block
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	go s.tryRun(context.Background())
	// Wait until the first run holds the slot.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if s.running.Load() {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first run never started")
		}
		time.Sleep(time.Millisecond)
	}

	s.tryRun(context.Background()) // must be skipped
	close(block)

	mu.Lock()
	defer mu.Unlock()
	if runs != 1 {
		t.Fatalf("overlapping run was not skipped, runs = %d", runs)
	}
}
