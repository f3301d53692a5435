package models

import "time"

// UsageSample is one day's raw utilization reading from the billing source.
type UsageSample struct {
	ConsumedUnits float64
	UptimeHours   float64
}

// DailySnapshot is one cluster's derived utilization record for one date.
// At most one snapshot exists per (cluster_id, date); writes are upserts.
type DailySnapshot struct {
	ClusterID   string          `json:"cluster_id"`
	ClusterName string          `json:"cluster_name"`
	Date        time.Time       `json:"date"` // UTC midnight
	Category    ClusterCategory `json:"category"`

	WorkerCount   int     `json:"worker_count"`
	CapacityUnits float64 `json:"capacity_units"`
	ConsumedUnits float64 `json:"consumed_units"`
	UptimeHours   float64 `json:"uptime_hours"`

	// EfficiencyScore is nil when potential capacity for the day was zero.
	EfficiencyScore *float64 `json:"efficiency_score,omitempty"`

	IsOversized     bool `json:"is_oversized"`
	IsUnderutilized bool `json:"is_underutilized"`

	CollectedAt time.Time `json:"collected_at"`
}

// CollectionRun records one collection pass for the audit trail.
type CollectionRun struct {
	ID                string
	Date              time.Time
	ClustersProcessed int
	SnapshotsWritten  int
	Persisted         bool
	ErrorCount        int
	CreatedAt         time.Time
}

// CollectionResult is returned by a collection pass.
type CollectionResult struct {
	RunID             string    `json:"run_id"`
	Date              time.Time `json:"date"`
	ClustersProcessed int       `json:"clusters_processed"`
	SnapshotsWritten  int       `json:"snapshots_written"`
	Persisted         bool      `json:"persisted"`
	Errors            []string  `json:"errors,omitempty"`
}
