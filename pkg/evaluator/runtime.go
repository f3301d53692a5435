package evaluator

import (
	"fmt"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// RuntimeConfigEvaluator inspects the engine-level settings on a
// cluster: adaptive execution, native acceleration, shuffle tuning.
type RuntimeConfigEvaluator struct {
	thresholds Thresholds
}

func NewRuntimeConfigEvaluator(t Thresholds) *RuntimeConfigEvaluator {
	return &RuntimeConfigEvaluator{thresholds: t}
}

func (e *RuntimeConfigEvaluator) Category() models.OptimizationCategory {
	return models.OptimizationRuntimeConfig
}

func (e *RuntimeConfigEvaluator) Evaluate(cfg *models.ClusterConfig, window []models.DailySnapshot) ([]models.Finding, error) {
	if cfg.RuntimeVersion == "" {
		return nil, &InvalidConfigError{ClusterID: cfg.ID, Category: models.OptimizationRuntimeConfig, Field: "runtime_version"}
	}

	var findings []models.Finding

	// AQE defaults on; only an explicit opt-out is a finding.
	if cfg.AQEEnabled != nil && !*cfg.AQEEnabled {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationRuntimeConfig,
			Issue:                   models.IssueAQEDisabled,
			Severity:                models.SeverityHigh,
			CurrentState:            "Adaptive query execution explicitly disabled",
			RecommendedState:        "Re-enable adaptive query execution",
			EstimatedSavingsPercent: 25.0,
			Reason:                  "Without adaptive execution, skewed joins and bad partition counts run at full cost",
			ImplementationSteps: []string{
				fmt.Sprintf("Remove the spark.sql.adaptive.enabled=false override on cluster %s", cfg.Name),
				"Re-run the heaviest jobs and compare wall time",
			},
		})
	}

	if !cfg.PhotonEnabled && (cfg.Category == models.CategorySQL || cfg.Category == models.CategoryPipeline) {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationRuntimeConfig,
			Issue:                   models.IssuePhotonDisabled,
			Severity:                models.SeverityMedium,
			CurrentState:            fmt.Sprintf("Native acceleration off on %s cluster", cfg.Category),
			RecommendedState:        "Enable the native vectorized engine",
			EstimatedSavingsPercent: 20.0,
			Reason:                  "SQL and pipeline workloads typically finish much faster with the native engine, cutting billed hours",
			ImplementationSteps: []string{
				fmt.Sprintf("Enable Photon on cluster %s", cfg.Name),
				"Compare per-job cost before and after; the higher rate is usually offset by runtime",
			},
		})
	}

	if cfg.ShufflePartitions != nil {
		limit := e.partitionLimit(cfg)
		if *cfg.ShufflePartitions > limit {
			findings = append(findings, models.Finding{
				Category:                models.OptimizationRuntimeConfig,
				Issue:                   models.IssueExcessivePartitions,
				Severity:                models.SeverityMedium,
				CurrentState:            fmt.Sprintf("%d shuffle partitions configured", *cfg.ShufflePartitions),
				RecommendedState:        fmt.Sprintf("Reduce to at most %d, or remove the override", limit),
				EstimatedSavingsPercent: 10.0,
				Reason:                  "Far more partitions than cores spends time on scheduling instead of work",
				ImplementationSteps: []string{
					fmt.Sprintf("Lower spark.sql.shuffle.partitions on cluster %s", cfg.Name),
				},
			})
		}
	}

	return findings, nil
}

// partitionLimit is a generous upper bound on useful shuffle
// partitions: a multiple of total cores, never below the engine default.
func (e *RuntimeConfigEvaluator) partitionLimit(cfg *models.ClusterConfig) int {
	coresPerWorker := 4
	if info, ok := ParseInstanceType(cfg.CloudProvider, cfg.WorkerNodeType); ok && info.VCPUs > 0 {
		coresPerWorker = info.VCPUs
	}
	limit := cfg.EffectiveWorkers() * coresPerWorker * e.thresholds.ShufflePartitionsPerCore
	if limit < e.thresholds.ShufflePartitionsFloor {
		limit = e.thresholds.ShufflePartitionsFloor
	}
	return limit
}
