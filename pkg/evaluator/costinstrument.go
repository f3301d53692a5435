package evaluator

import (
	"fmt"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// CostInstrumentEvaluator looks at the purchasing levers: spot
// capacity, on-demand fallback ratio, storage volume choice. These
// depend on the cloud provider, so an unknown provider is a config error.
type CostInstrumentEvaluator struct {
	thresholds Thresholds
}

func NewCostInstrumentEvaluator(t Thresholds) *CostInstrumentEvaluator {
	return &CostInstrumentEvaluator{thresholds: t}
}

func (e *CostInstrumentEvaluator) Category() models.OptimizationCategory {
	return models.OptimizationCostInstrument
}

func (e *CostInstrumentEvaluator) Evaluate(cfg *models.ClusterConfig, window []models.DailySnapshot) ([]models.Finding, error) {
	if cfg.CloudProvider == models.CloudUnknown || cfg.CloudProvider == "" {
		return nil, &InvalidConfigError{ClusterID: cfg.ID, Category: models.OptimizationCostInstrument, Field: "cloud_provider"}
	}

	var findings []models.Finding

	if !cfg.UsesSpot && cfg.IsFaultTolerant() && cfg.EffectiveWorkers() >= e.thresholds.SpotMinWorkers {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationCostInstrument,
			Issue:                   models.IssueNoSpotInstances,
			Severity:                models.SeverityHigh,
			CurrentState:            fmt.Sprintf("All %d workers on on-demand capacity", cfg.EffectiveWorkers()),
			RecommendedState:        "Run workers on spot capacity with on-demand fallback",
			EstimatedSavingsPercent: 65.0,
			Reason:                  fmt.Sprintf("%s clusters tolerate worker loss and spot capacity on %s is deeply discounted", cfg.Category, cfg.CloudProvider),
			ImplementationSteps: []string{
				fmt.Sprintf("Enable spot workers on cluster %s", cfg.Name),
				"Keep the driver on on-demand capacity",
				"Set first_on_demand to 1 so the driver never lands on spot",
			},
		})
	}

	if cfg.UsesSpot && cfg.FirstOnDemand != nil {
		workers := cfg.EffectiveWorkers()
		if workers > 0 {
			ratio := float64(*cfg.FirstOnDemand) / float64(workers+1)
			if ratio > e.thresholds.OnDemandRatioLimit {
				findings = append(findings, models.Finding{
					Category:                models.OptimizationCostInstrument,
					Issue:                   models.IssueHighOnDemandRatio,
					Severity:                models.SeverityMedium,
					CurrentState:            fmt.Sprintf("%d of %d nodes pinned to on-demand", *cfg.FirstOnDemand, workers+1),
					RecommendedState:        "Pin only the driver to on-demand",
					EstimatedSavingsPercent: 30.0,
					Reason:                  "Spot is enabled but most nodes never use it",
					ImplementationSteps: []string{
						fmt.Sprintf("Lower first_on_demand to 1 on cluster %s", cfg.Name),
					},
				})
			}
		}
	}

	if f := e.evaluateStorage(cfg); f != nil {
		findings = append(findings, *f)
	}

	return findings, nil
}

// evaluateStorage flags premium volume tiers on providers where the
// workload profile does not need them.
func (e *CostInstrumentEvaluator) evaluateStorage(cfg *models.ClusterConfig) *models.Finding {
	premium := false
	var cheaper string
	switch cfg.CloudProvider {
	case models.CloudAWS:
		premium = cfg.StorageVolumeType == "io1" || cfg.StorageVolumeType == "io2"
		cheaper = "gp3"
	case models.CloudAzure:
		premium = cfg.StorageVolumeType == "UltraSSD_LRS" || cfg.StorageVolumeType == "Premium_LRS"
		cheaper = "StandardSSD_LRS"
	case models.CloudGCP:
		premium = cfg.StorageVolumeType == "pd-extreme" || cfg.StorageVolumeType == "pd-ssd"
		cheaper = "pd-balanced"
	}
	if !premium || cfg.Category == models.CategorySQL {
		return nil
	}
	return &models.Finding{
		Category:                models.OptimizationCostInstrument,
		Issue:                   models.IssueStorageMismatch,
		Severity:                models.SeverityLow,
		CurrentState:            fmt.Sprintf("Premium volume tier %s on a %s cluster", cfg.StorageVolumeType, cfg.Category),
		RecommendedState:        fmt.Sprintf("Use %s volumes", cheaper),
		EstimatedSavingsPercent: 10.0,
		Reason:                  "Shuffle-local disks rarely need provisioned IOPS tiers",
		ImplementationSteps: []string{
			fmt.Sprintf("Switch cluster %s volumes from %s to %s", cfg.Name, cfg.StorageVolumeType, cheaper),
		},
	}
}
