package aggregator

import (
	"time"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// ClusterReport bundles everything the summary needs about one cluster.
type ClusterReport struct {
	Config   *models.ClusterConfig
	Window   []models.DailySnapshot
	Analysis models.ClusterAnalysis

	// UnitRate overrides the aggregator's default when the caller has
	// a cloud-specific price for this cluster.
	UnitRate float64
}

// SummaryAggregator rolls per-cluster analyses into the fleet-level
// dashboard numbers. Its thresholds are deliberately separate from the
// sizing evaluator's so the dashboard can be retuned without changing
// which findings fire.
type SummaryAggregator struct {
	OversizedThreshold     float64
	UnderutilizedThreshold float64
	UnitRate               float64 // USD per capacity-unit-hour
	MonthlyHours           float64
}

func NewSummaryAggregator(oversized, underutilized, unitRate, monthlyHours float64) *SummaryAggregator {
	return &SummaryAggregator{
		OversizedThreshold:     oversized,
		UnderutilizedThreshold: underutilized,
		UnitRate:               unitRate,
		MonthlyHours:           monthlyHours,
	}
}

// Summarize builds the fleet summary. An empty input is reported
// through the InsufficientData flag, never as fabricated zeros.
func (a *SummaryAggregator) Summarize(reports []ClusterReport, at time.Time) models.OptimizationSummary {
	if len(reports) == 0 {
		return models.OptimizationSummary{
			InsufficientData: true,
			Message:          "no clusters available to summarize",
			LastAnalysisTime: at,
		}
	}

	summary := models.OptimizationSummary{
		TotalClustersAnalyzed: len(reports),
		LastAnalysisTime:      at,
	}

	for _, r := range reports {
		if avg, ok := windowAverage(r.Window); ok {
			if avg < a.OversizedThreshold {
				summary.OversizedClusters++
			}
			if avg < a.UnderutilizedThreshold {
				summary.UnderutilizedClusters++
			}
		}
		summary.RecommendationsCount += len(r.Analysis.Findings)
		summary.TotalPotentialMonthlySavings += a.monthlySavings(r)
	}
	return summary
}

// monthlySavings prices the compounded savings percentage against the
// cluster's full-capacity monthly run rate.
func (a *SummaryAggregator) monthlySavings(r ClusterReport) float64 {
	if r.Config == nil || r.Analysis.TotalPotentialSavingsPercent <= 0 {
		return 0
	}
	rate := a.UnitRate
	if r.UnitRate > 0 {
		rate = r.UnitRate
	}
	monthlyCost := r.Config.CapacityUnits() * rate * a.MonthlyHours
	return monthlyCost * r.Analysis.TotalPotentialSavingsPercent / 100.0
}

func windowAverage(window []models.DailySnapshot) (float64, bool) {
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
