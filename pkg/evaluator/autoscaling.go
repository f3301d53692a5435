package evaluator

import (
	"fmt"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// AutoscalingEvaluator judges whether a cluster's scaling policy fits
// its size. Fixed clusters above a floor should autoscale; autoscaling
// clusters should keep a sane min/max range.
type AutoscalingEvaluator struct {
	thresholds Thresholds
}

func NewAutoscalingEvaluator(t Thresholds) *AutoscalingEvaluator {
	return &AutoscalingEvaluator{thresholds: t}
}

func (e *AutoscalingEvaluator) Category() models.OptimizationCategory {
	return models.OptimizationAutoscaling
}

func (e *AutoscalingEvaluator) Evaluate(cfg *models.ClusterConfig, window []models.DailySnapshot) ([]models.Finding, error) {
	if cfg.Autoscale == nil {
		return e.evaluateFixed(cfg), nil
	}
	return e.evaluateRange(cfg), nil
}

func (e *AutoscalingEvaluator) evaluateFixed(cfg *models.ClusterConfig) []models.Finding {
	if cfg.NumWorkers < e.thresholds.FixedSizeWorkers {
		return nil
	}
	suggestedMin := cfg.NumWorkers / 4
	if suggestedMin < 1 {
		suggestedMin = 1
	}
	return []models.Finding{{
		Category:                models.OptimizationAutoscaling,
		Issue:                   models.IssueNoAutoscaling,
		Severity:                models.SeverityHigh,
		CurrentState:            fmt.Sprintf("Fixed size of %d workers, no autoscaling", cfg.NumWorkers),
		RecommendedState:        fmt.Sprintf("Enable autoscaling with min=%d max=%d", suggestedMin, cfg.NumWorkers),
		EstimatedSavingsPercent: 35.0,
		Reason:                  "Fixed-size clusters pay for peak capacity around the clock",
		ImplementationSteps: []string{
			fmt.Sprintf("Enable autoscaling on cluster %s", cfg.Name),
			fmt.Sprintf("Start with min=%d and max=%d, then tighten based on observed load", suggestedMin, cfg.NumWorkers),
		},
	}}
}

func (e *AutoscalingEvaluator) evaluateRange(cfg *models.ClusterConfig) []models.Finding {
	var findings []models.Finding
	min := cfg.Autoscale.MinWorkers
	max := cfg.Autoscale.MaxWorkers
	spread := max - min

	if min >= e.thresholds.HighMinimumWorkers {
		severity := models.SeverityMedium
		savings := 20.0
		if min >= e.thresholds.CriticalMinimumWorkers {
			severity = models.SeverityHigh
			savings = 30.0
		}
		findings = append(findings, models.Finding{
			Category:                models.OptimizationAutoscaling,
			Issue:                   models.IssueHighMinimum,
			Severity:                severity,
			CurrentState:            fmt.Sprintf("Autoscaling floor of %d workers", min),
			RecommendedState:        fmt.Sprintf("Lower minimum to %d workers", e.thresholds.FixedSizeWorkers/2+1),
			EstimatedSavingsPercent: savings,
			Reason:                  fmt.Sprintf("A floor of %d workers keeps that capacity billed even when idle", min),
			ImplementationSteps: []string{
				fmt.Sprintf("Lower the autoscaling minimum on cluster %s", cfg.Name),
				"Verify scale-up latency stays acceptable for the workload",
			},
		})
	}

	if min > 0 && (float64(max)/float64(min) >= e.thresholds.WideRangeRatio || spread >= e.thresholds.WideRangeSpread) {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationAutoscaling,
			Issue:                   models.IssueWideRange,
			Severity:                models.SeverityLow,
			CurrentState:            fmt.Sprintf("Autoscaling range %d-%d workers", min, max),
			RecommendedState:        "Narrow the range around the observed working size",
			EstimatedSavingsPercent: 5.0,
			Reason:                  "Very wide ranges cause thrashing and unpredictable cost",
			ImplementationSteps: []string{
				"Review peak worker counts over the last month",
				fmt.Sprintf("Cap the maximum on cluster %s closer to the observed peak", cfg.Name),
			},
		})
	}

	if spread <= e.thresholds.NarrowRangeSpread {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationAutoscaling,
			Issue:                   models.IssueNarrowRange,
			Severity:                models.SeverityLow,
			CurrentState:            fmt.Sprintf("Autoscaling range %d-%d workers", min, max),
			RecommendedState:        fmt.Sprintf("Use a fixed size of %d workers or widen the range", cfg.EffectiveWorkers()),
			EstimatedSavingsPercent: 0.0,
			Reason:                  "A range this narrow gives autoscaling no room to act",
			ImplementationSteps: []string{
				fmt.Sprintf("Convert cluster %s to a fixed size, or widen the range", cfg.Name),
			},
		})
	}

	if cfg.Category == models.CategoryJob && min > 0 {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationAutoscaling,
			Issue:                   models.IssueScaleToZero,
			Severity:                models.SeverityMedium,
			CurrentState:            fmt.Sprintf("Job cluster keeps a floor of %d workers between runs", min),
			RecommendedState:        "Allow the job cluster to scale to zero between runs",
			EstimatedSavingsPercent: 15.0,
			Reason:                  "Job clusters only need capacity while a run is active",
			ImplementationSteps: []string{
				fmt.Sprintf("Set the autoscaling minimum to 0 on cluster %s", cfg.Name),
			},
		})
	}

	return findings
}
