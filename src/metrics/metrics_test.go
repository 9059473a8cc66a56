package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault_raft_backup.prom")
	m := RunMetrics{
		Success:       true,
		State:         "done",
		Duration:      3 * time.Second,
		PrunedFiles:   2,
		SnapshotBytes: 1024,
		CompletedAt:   time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC),
	}
	if err := Write(path, m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"vault_raft_backup_success 1",
		"vault_raft_backup_duration_seconds 3",
		"vault_raft_backup_pruned_files 2",
		"vault_raft_backup_snapshot_size_bytes 1024",
		`vault_raft_backup_state{state="done"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("textfile missing %q:\n%s", want, out)
		}
	}
}

func TestWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault_raft_backup.prom")
	m := RunMetrics{Success: false, State: "snapshotting"}
	if err := Write(path, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "vault_raft_backup_success 0") {
		t.Fatalf("failure must export success 0:\n%s", data)
	}
}
