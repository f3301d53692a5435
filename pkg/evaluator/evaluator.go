package evaluator

import (
	"fmt"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// Evaluator inspects one cluster's configuration and its recent usage
// window and emits zero or more findings.
type Evaluator interface {
	Category() models.OptimizationCategory
	Evaluate(cfg *models.ClusterConfig, window []models.DailySnapshot) ([]models.Finding, error)
}

// InvalidConfigError reports a cluster record whose configuration is
// missing a field an evaluator needs. The category still counts as
// evaluated; the caller decides whether to surface or skip.
type InvalidConfigError struct {
	ClusterID string
	Category  models.OptimizationCategory
	Field     string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("cluster %s: %s evaluation needs field %q", e.ClusterID, e.Category, e.Field)
}

// Thresholds holds the tuning knobs shared by all evaluators. Values
// mirror what operators expect from the dashboard defaults; override
// individual fields before constructing the evaluators to retune.
type Thresholds struct {
	// Sizing
	LargeClusterWorkers   int
	OversizedEfficiency   float64
	CriticalEfficiency    float64
	MinRecommendedWorkers int

	// Autoscaling
	FixedSizeWorkers       int
	HighMinimumWorkers     int
	CriticalMinimumWorkers int
	WideRangeRatio         float64
	WideRangeSpread        int
	NarrowRangeSpread      int

	// Node types
	DriverOversizeFactor float64
	SmallClusterWorkers  int
	LargeInstanceVCPUs   int

	// Runtime configuration
	ShufflePartitionsPerCore int
	ShufflePartitionsFloor   int

	// Cost instruments
	SpotMinWorkers     int
	OnDemandRatioLimit float64

	// Schedules
	ScheduleMinWorkers     int
	AutoTerminationCeiling int
	RecommendedAutoTerm    int
	HighIdleMinutes        int
	MediumIdleMinutes      int
}

// DefaultThresholds returns the standard tuning used in production.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LargeClusterWorkers:   10,
		OversizedEfficiency:   30.0,
		CriticalEfficiency:    25.0,
		MinRecommendedWorkers: 2,

		FixedSizeWorkers:       4,
		HighMinimumWorkers:     8,
		CriticalMinimumWorkers: 16,
		WideRangeRatio:         5.0,
		WideRangeSpread:        10,
		NarrowRangeSpread:      2,

		DriverOversizeFactor: 2.0,
		SmallClusterWorkers:  2,
		LargeInstanceVCPUs:   32,

		ShufflePartitionsPerCore: 4,
		ShufflePartitionsFloor:   200,

		SpotMinWorkers:     2,
		OnDemandRatioLimit: 0.5,

		ScheduleMinWorkers:     2,
		AutoTerminationCeiling: 120,
		RecommendedAutoTerm:    60,
		HighIdleMinutes:        180,
		MediumIdleMinutes:      60,
	}
}

// All returns the full evaluator set in report order.
func All(t Thresholds) []Evaluator {
	return []Evaluator{
		NewSizingEvaluator(t),
		NewAutoscalingEvaluator(t),
		NewNodeTypeEvaluator(t),
		NewRuntimeConfigEvaluator(t),
		NewCostInstrumentEvaluator(t),
		NewScheduleEvaluator(t),
	}
}

// averageEfficiency averages the non-nil efficiency scores in a window.
// The second return is false when no snapshot carried a score.
func averageEfficiency(window []models.DailySnapshot) (float64, bool) {
	var sum float64
	var n int
	for _, snap := range window {
		if snap.EfficiencyScore != nil {
			sum += *snap.EfficiencyScore
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
