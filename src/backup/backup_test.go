package backup

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"filippo.io/age"

	"vault-raft-backup/src/vaultcli"
)

func TestSnapshotNameFormat(t *testing.T) {
	// Components must not be zero-padded; single underscore between date
	// and time.
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	got := SnapshotName("node1", now)
	want := "node1-raft.202412_345.snap"
	if got != want {
		t.Fatalf("SnapshotName = %q, want %q", got, want)
	}
}

func TestSnapshotNameNoPaddingLateInYear(t *testing.T) {
	now := time.Date(2024, 11, 25, 23, 59, 58, 0, time.Local)
	got := SnapshotName("db-2", now)
	want := "db-2-raft.20241125_235958.snap"
	if got != want {
		t.Fatalf("SnapshotName = %q, want %q", got, want)
	}
}

func TestSnapshotNameMatchesPattern(t *testing.T) {
	pattern := regexp.MustCompile(`^node1-raft\.\d+_\d+\.snap$`)
	got := SnapshotName("node1", time.Now())
	if !pattern.MatchString(got) {
		t.Fatalf("name %q does not match %v", got, pattern)
	}
}

func TestTakeInvokesSnapshotSave(t *testing.T) {
	fake := vaultcli.NewFake()
	dir := t.TempDir()
	now := time.Date(2024, 3, 5, 4, 7, 9, 0, time.Local)

	path, err := Take(context.Background(), fake, "secret", Options{Dir: dir, Host: "node1", Now: now})
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	want := filepath.Join(dir, "node1-raft.202435_479.snap")
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	if !fake.CalledWith("operator", "raft", "snapshot", "save", want) {
		t.Fatalf("snapshot subcommand not invoked: %#v", fake.Calls)
	}
	if len(fake.Calls) != 1 {
		t.Fatalf("expected exactly one invocation, got %d", len(fake.Calls))
	}
	env := fake.Calls[0].Env
	if len(env) != 1 || env[0] != vaultcli.TokenEnv+"=secret" {
		t.Fatalf("token must travel via the child environment, got %v", env)
	}
}

func TestTakeFailureSurfacesStderr(t *testing.T) {
	fake := vaultcli.NewFake()
	fake.Default = vaultcli.Result{ExitCode: 1, Stderr: "permission denied"}

	_, err := Take(context.Background(), fake, "secret", Options{Dir: t.TempDir(), Host: "n", Now: time.Now()})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); !bytes.Contains([]byte(got), []byte("permission denied")) {
		t.Fatalf("error should carry captured stderr, got %q", got)
	}
}

func TestEncryptFileRoundTrip(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("generate identity: %v", err)
	}

	dir := t.TempDir()
	plain := filepath.Join(dir, "x-raft.202411_111.snap")
	content := []byte("raft snapshot payload")
	if err := os.WriteFile(plain, content, 0o600); err != nil {
		t.Fatalf("write plaintext: %v", err)
	}

	encPath, err := EncryptFile(plain, []age.Recipient{identity.Recipient()})
	if err != nil {
		t.Fatalf("EncryptFile: %v", err)
	}
	if encPath != plain+".age" {
		t.Fatalf("unexpected encrypted path %q", encPath)
	}

	f, err := os.Open(encPath)
	if err != nil {
		t.Fatalf("open encrypted: %v", err)
	}
	defer f.Close()
	r, err := age.Decrypt(f, identity)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read decrypted: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestParseRecipients(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("generate identity: %v", err)
	}
	recips, err := ParseRecipients([]string{identity.Recipient().String()})
	if err != nil {
		t.Fatalf("ParseRecipients: %v", err)
	}
	if len(recips) != 1 {
		t.Fatalf("expected 1 recipient, got %d", len(recips))
	}
	if _, err := ParseRecipients([]string{"not-a-recipient"}); err == nil {
		t.Fatalf("expected error for malformed recipient")
	}
}
