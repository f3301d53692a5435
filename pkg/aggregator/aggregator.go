package aggregator

import (
	"sort"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// CompoundSavings folds per-finding savings estimates into one total.
// Savings multiply against the remaining cost rather than add, so two
// 50% findings yield 75%, not an impossible 100%.
func CompoundSavings(findings []models.Finding) float64 {
	remaining := 1.0
	for _, f := range findings {
		s := f.EstimatedSavingsPercent
		if s < 0 {
			s = 0
		}
		if s > 100 {
			s = 100
		}
		remaining *= 1.0 - s/100.0
	}
	return (1.0 - remaining) * 100.0
}

// Aggregate orders findings for presentation and attaches the
// compounded savings total. High severity sorts first; within a
// severity, bigger savings first.
func Aggregate(cfg *models.ClusterConfig, findings []models.Finding) models.ClusterAnalysis {
	sorted := make([]models.Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Severity.Rank() != sorted[j].Severity.Rank() {
			return sorted[i].Severity.Rank() < sorted[j].Severity.Rank()
		}
		return sorted[i].EstimatedSavingsPercent > sorted[j].EstimatedSavingsPercent
	})

	return models.ClusterAnalysis{
		ClusterID:                    cfg.ID,
		ClusterName:                  cfg.Name,
		Findings:                     sorted,
		TotalPotentialSavingsPercent: CompoundSavings(sorted),
	}
}
