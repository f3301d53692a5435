package evaluator

import (
	"fmt"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// ScheduleEvaluator covers when a cluster runs rather than how big it
// is: auto-termination settings and measured idle time.
type ScheduleEvaluator struct {
	thresholds Thresholds
}

func NewScheduleEvaluator(t Thresholds) *ScheduleEvaluator {
	return &ScheduleEvaluator{thresholds: t}
}

func (e *ScheduleEvaluator) Category() models.OptimizationCategory {
	return models.OptimizationSchedule
}

func (e *ScheduleEvaluator) Evaluate(cfg *models.ClusterConfig, window []models.DailySnapshot) ([]models.Finding, error) {
	// Job and pipeline clusters terminate with their run; scheduling
	// findings only make sense for always-available clusters.
	if cfg.Category != models.CategoryInteractive && cfg.Category != models.CategorySQL {
		return nil, nil
	}

	idleMinutes := estimateDailyIdleMinutes(window)
	var findings []models.Finding

	if cfg.AutoTerminationMinutes == nil || *cfg.AutoTerminationMinutes == 0 {
		severity := models.SeverityLow
		switch {
		case idleMinutes >= float64(e.thresholds.HighIdleMinutes):
			severity = models.SeverityHigh
		case idleMinutes >= float64(e.thresholds.MediumIdleMinutes):
			severity = models.SeverityMedium
		}
		findings = append(findings, models.Finding{
			Category:                models.OptimizationSchedule,
			Issue:                   models.IssueNoAutoTermination,
			Severity:                severity,
			CurrentState:            "No auto-termination configured",
			RecommendedState:        fmt.Sprintf("Auto-terminate after %d idle minutes", e.thresholds.RecommendedAutoTerm),
			EstimatedSavingsPercent: 40.0,
			Reason:                  fmt.Sprintf("Cluster averages %.0f idle minutes per day and never shuts itself down", idleMinutes),
			ImplementationSteps: []string{
				fmt.Sprintf("Set auto-termination to %d minutes on cluster %s", e.thresholds.RecommendedAutoTerm, cfg.Name),
			},
		})
	} else if *cfg.AutoTerminationMinutes > e.thresholds.AutoTerminationCeiling {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationSchedule,
			Issue:                   models.IssueLongAutoTermination,
			Severity:                models.SeverityMedium,
			CurrentState:            fmt.Sprintf("Auto-termination after %d minutes", *cfg.AutoTerminationMinutes),
			RecommendedState:        fmt.Sprintf("Auto-terminate after %d idle minutes", e.thresholds.RecommendedAutoTerm),
			EstimatedSavingsPercent: 20.0,
			Reason:                  "A multi-hour idle timeout pays for capacity nobody is using",
			ImplementationSteps: []string{
				fmt.Sprintf("Lower auto-termination from %d to %d minutes on cluster %s", *cfg.AutoTerminationMinutes, e.thresholds.RecommendedAutoTerm, cfg.Name),
			},
		})
	}

	if idleMinutes >= float64(e.thresholds.HighIdleMinutes) && cfg.EffectiveWorkers() >= e.thresholds.ScheduleMinWorkers {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationSchedule,
			Issue:                   models.IssueHighIdleTime,
			Severity:                models.SeverityMedium,
			CurrentState:            fmt.Sprintf("Roughly %.0f idle minutes per day over the window", idleMinutes),
			RecommendedState:        "Schedule the cluster around working hours or shrink its floor",
			EstimatedSavingsPercent: 15.0,
			Reason:                  "Sustained idle uptime suggests the cluster is left running out of habit",
			ImplementationSteps: []string{
				fmt.Sprintf("Review usage hours for cluster %s and add a start/stop schedule", cfg.Name),
			},
		})
	}

	return findings, nil
}

// estimateDailyIdleMinutes derives idle time from the usage window.
// Uptime not matched by consumed capacity counts as idle.
func estimateDailyIdleMinutes(window []models.DailySnapshot) float64 {
	var idleHours float64
	var days int
	for _, snap := range window {
		if snap.UptimeHours <= 0 {
			continue
		}
		days++
		if snap.EfficiencyScore == nil {
			idleHours += snap.UptimeHours
			continue
		}
		idleHours += snap.UptimeHours * (1.0 - *snap.EfficiencyScore/100.0)
	}
	if days == 0 {
		return 0
	}
	return idleHours / float64(days) * 60.0
}
