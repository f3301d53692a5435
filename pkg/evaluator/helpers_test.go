package evaluator

import (
	"time"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// windowWithEfficiency builds a usage window with one snapshot per
// given score, 10 uptime hours each.
func windowWithEfficiency(scores ...float64) []models.DailySnapshot {
	window := make([]models.DailySnapshot, 0, len(scores))
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, s := range scores {
		score := s
		window = append(window, models.DailySnapshot{
			ClusterID:       "c-test",
			Date:            day.AddDate(0, 0, i),
			UptimeHours:     10,
			EfficiencyScore: &score,
		})
	}
	return window
}

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

func findIssue(findings []models.Finding, issue models.IssueType) *models.Finding {
	for i := range findings {
		if findings[i].Issue == issue {
			return &findings[i]
		}
	}
	return nil
}
