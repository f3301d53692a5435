package models

import "time"

// CloudProvider identifies the cloud hosting a cluster.
type CloudProvider string

const (
	CloudAWS     CloudProvider = "aws"
	CloudAzure   CloudProvider = "azure"
	CloudGCP     CloudProvider = "gcp"
	CloudUnknown CloudProvider = "unknown"
)

// ClusterCategory classifies what a cluster is used for.
type ClusterCategory string

const (
	CategoryInteractive  ClusterCategory = "INTERACTIVE"
	CategoryJob          ClusterCategory = "JOB"
	CategorySQL          ClusterCategory = "SQL"
	CategoryPipeline     ClusterCategory = "PIPELINE"
	CategoryModelServing ClusterCategory = "MODELS"
)

// AutoscaleConfig holds autoscaling bounds for a cluster.
type AutoscaleConfig struct {
	MinWorkers int `json:"min_workers"`
	MaxWorkers int `json:"max_workers"`
}

// ClusterConfig is a point-in-time snapshot of a cluster's configuration,
// refreshed from the inventory source on each analysis pass. Optional fields
// that the inventory may not supply are pointers (nil = not set).
type ClusterConfig struct {
	ID       string          `json:"cluster_id"`
	Name     string          `json:"cluster_name"`
	Category ClusterCategory `json:"category"`

	// Either a fixed worker count or autoscale bounds.
	NumWorkers int              `json:"num_workers"`
	Autoscale  *AutoscaleConfig `json:"autoscale,omitempty"`

	WorkerNodeType string        `json:"worker_node_type"`
	DriverNodeType string        `json:"driver_node_type"`
	CloudProvider  CloudProvider `json:"cloud_provider"`

	UsesSpot          bool   `json:"uses_spot"`
	FirstOnDemand     *int   `json:"first_on_demand,omitempty"`
	StorageVolumeType string `json:"storage_volume_type,omitempty"`

	RuntimeVersion    string `json:"runtime_version"`
	PhotonEnabled     bool   `json:"photon_enabled"`
	AQEEnabled        *bool  `json:"aqe_enabled,omitempty"` // nil = runtime default (on)
	ShufflePartitions *int   `json:"shuffle_partitions,omitempty"`

	AutoTerminationMinutes *int    `json:"auto_termination_minutes,omitempty"`
	PolicyID               *string `json:"policy_id,omitempty"`
}

// EffectiveWorkers returns the worker count used for capacity math: the
// fixed size, or the midpoint of the autoscale bounds.
func (c *ClusterConfig) EffectiveWorkers() int {
	if c.Autoscale != nil {
		return (c.Autoscale.MinWorkers + c.Autoscale.MaxWorkers) / 2
	}
	return c.NumWorkers
}

// CapacityUnits is the provisioned capacity per hour: one unit per worker
// plus one for the driver.
func (c *ClusterConfig) CapacityUnits() float64 {
	return float64(c.EffectiveWorkers() + 1)
}

// IsFaultTolerant reports whether the cluster's workload category can
// tolerate preempted nodes, making it a candidate for spot capacity.
func (c *ClusterConfig) IsFaultTolerant() bool {
	return c.Category == CategoryInteractive || c.Category == CategoryJob
}

// DateOf truncates a timestamp to UTC midnight, the key granularity for
// daily snapshots.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
