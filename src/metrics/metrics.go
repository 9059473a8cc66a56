// Package metrics exports the last run's outcome in Prometheus textfile
// format for the node_exporter textfile collector, the usual pattern for
// cron-driven jobs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics is the subset of a run outcome worth scraping.
type RunMetrics struct {
	Success       bool
	State         string
	Duration      time.Duration
	PrunedFiles   int
	SnapshotBytes int64
	CompletedAt   time.Time
}

// Write renders the metrics to path atomically via WriteToTextfile. Failures
// here must never fail the backup run; callers log and move on.
func Write(path string, m RunMetrics) error {
	reg := prometheus.NewRegistry()

	success := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vault_raft_backup_success",
		Help: "Whether the last backup run completed (1) or failed (0).",
	})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vault_raft_backup_last_run_timestamp_seconds",
		Help: "Unix time the last backup run finished.",
	})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vault_raft_backup_duration_seconds",
		Help: "Wall-clock duration of the last backup run.",
	})
	pruned := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vault_raft_backup_pruned_files",
		Help: "Backup files deleted by the last retention pass.",
	})
	size := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vault_raft_backup_snapshot_size_bytes",
		Help: "Size of the snapshot written by the last run.",
	})
	state := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vault_raft_backup_state",
		Help: "State the last run reached (1 for the reached state).",
	}, []string{"state"})

	reg.MustRegister(success, lastRun, duration, pruned, size, state)

	if m.Success {
		success.Set(1)
	}
	completed := m.CompletedAt
	if completed.IsZero() {
		completed = time.Now()
	}
	lastRun.Set(float64(completed.Unix()))
	duration.Set(m.Duration.Seconds())
	pruned.Set(float64(m.PrunedFiles))
	size.Set(float64(m.SnapshotBytes))
	state.WithLabelValues(m.State).Set(1)

	return prometheus.WriteToTextfile(path, reg)
}
