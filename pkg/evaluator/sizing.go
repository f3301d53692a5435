package evaluator

import (
	"fmt"
	"math"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// SizingEvaluator flags large fixed-size clusters whose measured
// efficiency does not justify their worker count.
type SizingEvaluator struct {
	thresholds Thresholds
}

func NewSizingEvaluator(t Thresholds) *SizingEvaluator {
	return &SizingEvaluator{thresholds: t}
}

func (e *SizingEvaluator) Category() models.OptimizationCategory {
	return models.OptimizationSizing
}

func (e *SizingEvaluator) Evaluate(cfg *models.ClusterConfig, window []models.DailySnapshot) ([]models.Finding, error) {
	// Autoscaling clusters size themselves; only fixed clusters are judged here.
	if cfg.Autoscale != nil {
		return nil, nil
	}
	if cfg.NumWorkers < e.thresholds.LargeClusterWorkers {
		return nil, nil
	}

	avgEff, ok := averageEfficiency(window)
	if !ok {
		// No measured usage in the window; sizing cannot be judged.
		return nil, nil
	}
	if avgEff >= e.thresholds.OversizedEfficiency {
		return nil, nil
	}

	recommended := int(math.Ceil(float64(cfg.NumWorkers) * avgEff / 100.0))
	if recommended < e.thresholds.MinRecommendedWorkers {
		recommended = e.thresholds.MinRecommendedWorkers
	}
	savings := (1.0 - float64(recommended)/float64(cfg.NumWorkers)) * 100.0
	if savings < 0 {
		savings = 0
	}

	severity := models.SeverityMedium
	if avgEff < e.thresholds.CriticalEfficiency {
		severity = models.SeverityHigh
	}

	return []models.Finding{{
		Category:                models.OptimizationSizing,
		Issue:                   models.IssueOversizedCluster,
		Severity:                severity,
		CurrentState:            fmt.Sprintf("%d fixed workers at %.1f%% average efficiency", cfg.NumWorkers, avgEff),
		RecommendedState:        fmt.Sprintf("Reduce to %d workers or enable autoscaling", recommended),
		EstimatedSavingsPercent: savings,
		Reason:                  fmt.Sprintf("Cluster runs %d workers but average efficiency over the window is %.1f%%", cfg.NumWorkers, avgEff),
		ImplementationSteps: []string{
			fmt.Sprintf("Resize cluster %s from %d to %d workers", cfg.Name, cfg.NumWorkers, recommended),
			fmt.Sprintf("Or enable autoscaling with min=%d max=%d", e.thresholds.MinRecommendedWorkers, recommended),
			"Monitor efficiency for one week after the change",
		},
	}}, nil
}
