package models

// OptimizationCategory is the closed set of analysis categories. The same
// definition backs both the evaluators and the serialized API shapes.
type OptimizationCategory string

const (
	OptimizationSizing         OptimizationCategory = "SIZING"
	OptimizationAutoscaling    OptimizationCategory = "AUTOSCALING"
	OptimizationNodeType       OptimizationCategory = "NODE_TYPE"
	OptimizationRuntimeConfig  OptimizationCategory = "RUNTIME_CONFIG"
	OptimizationCostInstrument OptimizationCategory = "COST_INSTRUMENT"
	OptimizationSchedule       OptimizationCategory = "SCHEDULE"
)

// IssueType identifies the specific condition a finding reports, scoped to
// its category.
type IssueType string

const (
	// Sizing
	IssueOversizedCluster IssueType = "OVERSIZED_CLUSTER"

	// Autoscaling
	IssueNoAutoscaling IssueType = "NO_AUTOSCALING"
	IssueHighMinimum   IssueType = "HIGH_MINIMUM"
	IssueWideRange     IssueType = "WIDE_RANGE"
	IssueNarrowRange   IssueType = "NARROW_RANGE"
	IssueScaleToZero   IssueType = "SCALE_TO_ZERO"

	// NodeType
	IssueOversizedDriver  IssueType = "OVERSIZED_DRIVER"
	IssueGPUNonML         IssueType = "GPU_ON_NON_ML"
	IssueLegacyGeneration IssueType = "LEGACY_GENERATION"
	IssueMismatchedFamily IssueType = "MISMATCHED_DRIVER_WORKER"
	IssueOverprovisioned  IssueType = "OVERPROVISIONED_NODES"
	IssueWrongCategory    IssueType = "WRONG_NODE_CATEGORY"

	// RuntimeConfig
	IssueAQEDisabled       IssueType = "AQE_DISABLED"
	IssuePhotonDisabled    IssueType = "PHOTON_DISABLED"
	IssueExcessivePartitions IssueType = "EXCESSIVE_SHUFFLE_PARTITIONS"

	// CostInstrument
	IssueNoSpotInstances   IssueType = "NO_SPOT_INSTANCES"
	IssueHighOnDemandRatio IssueType = "HIGH_ON_DEMAND_RATIO"
	IssueStorageMismatch   IssueType = "STORAGE_MISMATCH"

	// Schedule
	IssueNoAutoTermination   IssueType = "NO_AUTO_TERMINATION"
	IssueLongAutoTermination IssueType = "LONG_AUTO_TERMINATION"
	IssueHighIdleTime        IssueType = "HIGH_IDLE_TIME"
)

// Severity ranks how urgent a finding is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank returns a sortable order for severities, highest first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	}
	return 3
}

// Finding is a single detected optimization opportunity. Findings are
// produced fresh on each analysis pass and never persisted.
type Finding struct {
	Category         OptimizationCategory `json:"category"`
	Issue            IssueType            `json:"issue_type"`
	Severity         Severity             `json:"severity"`
	CurrentState     string               `json:"current_state"`
	RecommendedState string               `json:"recommended_state"`

	// EstimatedSavingsPercent is the bounded savings estimate for this
	// finding alone, in [0,100].
	EstimatedSavingsPercent float64 `json:"estimated_savings_percent"`

	Reason              string   `json:"reason"`
	ImplementationSteps []string `json:"implementation_steps,omitempty"`
}

// ClusterAnalysis is the merged, ranked output for one cluster.
type ClusterAnalysis struct {
	ClusterID   string    `json:"cluster_id"`
	ClusterName string    `json:"cluster_name"`
	Findings    []Finding `json:"findings"`

	// TotalPotentialSavingsPercent compounds the individual estimates
	// multiplicatively so independent findings never sum past 100%.
	TotalPotentialSavingsPercent float64 `json:"total_potential_savings_percent"`
}
