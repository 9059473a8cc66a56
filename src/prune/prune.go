// Package prune deletes backup files older than a retention threshold.
package prune

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Candidate is a backup file eligible for deletion.
type Candidate struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Cutoff returns the instant before which backup files are expired. A
// retention of zero days is legal and makes every existing file a candidate;
// the new backup is written after pruning, so the newest file survives.
func Cutoff(now time.Time, retentionDays int) time.Time {
	return now.AddDate(0, 0, -retentionDays)
}

// Plan enumerates backup files in dir whose modification time is strictly
// earlier than cutoff, oldest first. Only files matching the backup naming
// convention (.snap, plus .snap.age for encrypted snapshots) are considered.
func Plan(dir string, cutoff time.Time) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("prune: list %s: %w", dir, err)
	}
	var out []Candidate
	for _, e := range entries {
		if e.IsDir() || !matchesBackupName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("prune: stat %s: %w", e.Name(), err)
		}
		if info.ModTime().Before(cutoff) {
			out = append(out, Candidate{
				Path:    filepath.Join(dir, e.Name()),
				ModTime: info.ModTime(),
				Size:    info.Size(),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModTime.Before(out[j].ModTime) })
	return out, nil
}

// Apply deletes the planned candidates in order. The first deletion failure
// aborts the pass and is fatal to the caller's run; the count of files
// already removed is returned alongside the error.
func Apply(candidates []Candidate) (int, error) {
	for i, c := range candidates {
		if err := os.Remove(c.Path); err != nil {
			return i, fmt.Errorf("prune: delete %s: %w", c.Path, err)
		}
	}
	return len(candidates), nil
}

func matchesBackupName(name string) bool {
	return strings.HasSuffix(name, ".snap") || strings.HasSuffix(name, ".snap.age")
}
