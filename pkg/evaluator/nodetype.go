package evaluator

import (
	"fmt"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// NodeTypeEvaluator reads the provider instance type names on a cluster
// and flags hardware that does not match the workload.
type NodeTypeEvaluator struct {
	thresholds Thresholds
}

func NewNodeTypeEvaluator(t Thresholds) *NodeTypeEvaluator {
	return &NodeTypeEvaluator{thresholds: t}
}

func (e *NodeTypeEvaluator) Category() models.OptimizationCategory {
	return models.OptimizationNodeType
}

func (e *NodeTypeEvaluator) Evaluate(cfg *models.ClusterConfig, window []models.DailySnapshot) ([]models.Finding, error) {
	if cfg.WorkerNodeType == "" {
		return nil, &InvalidConfigError{ClusterID: cfg.ID, Category: models.OptimizationNodeType, Field: "worker_node_type"}
	}

	var findings []models.Finding

	worker, workerOK := ParseInstanceType(cfg.CloudProvider, cfg.WorkerNodeType)
	if workerOK {
		findings = append(findings, e.evaluateWorker(cfg, worker)...)
	}

	if cfg.DriverNodeType != "" {
		if driver, ok := ParseInstanceType(cfg.CloudProvider, cfg.DriverNodeType); ok && workerOK {
			findings = append(findings, e.evaluateDriver(cfg, driver, worker)...)
		}
	}

	return findings, nil
}

func (e *NodeTypeEvaluator) evaluateWorker(cfg *models.ClusterConfig, worker InstanceInfo) []models.Finding {
	var findings []models.Finding

	if worker.Class == ClassGPU && cfg.Category != models.CategoryModelServing {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationNodeType,
			Issue:                   models.IssueGPUNonML,
			Severity:                models.SeverityHigh,
			CurrentState:            fmt.Sprintf("GPU workers (%s) on a %s cluster", worker.Name, cfg.Category),
			RecommendedState:        "Switch to general purpose or compute optimized workers",
			EstimatedSavingsPercent: 70.0,
			Reason:                  "GPU capacity is billed at a steep premium and this workload cannot use it",
			ImplementationSteps: []string{
				fmt.Sprintf("Replace %s workers on cluster %s with a non-GPU type", worker.Name, cfg.Name),
				"Confirm no jobs on this cluster call GPU libraries",
			},
		})
	}

	if IsLegacyGeneration(cfg.CloudProvider, worker) {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationNodeType,
			Issue:                   models.IssueLegacyGeneration,
			Severity:                models.SeverityMedium,
			CurrentState:            fmt.Sprintf("Workers on legacy generation type %s", worker.Name),
			RecommendedState:        "Move to the current generation of the same family",
			EstimatedSavingsPercent: 15.0,
			Reason:                  "Newer generations deliver more work per dollar at the same size",
			ImplementationSteps: []string{
				fmt.Sprintf("Swap %s for the current generation equivalent on cluster %s", worker.Name, cfg.Name),
			},
		})
	}

	if worker.VCPUs >= e.thresholds.LargeInstanceVCPUs && cfg.EffectiveWorkers() <= e.thresholds.SmallClusterWorkers {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationNodeType,
			Issue:                   models.IssueOverprovisioned,
			Severity:                models.SeverityMedium,
			CurrentState:            fmt.Sprintf("%d-vCPU workers (%s) on a %d-worker cluster", worker.VCPUs, worker.Name, cfg.EffectiveWorkers()),
			RecommendedState:        "Use smaller instances with more workers for better bin packing",
			EstimatedSavingsPercent: 25.0,
			Reason:                  "A couple of very large nodes waste headroom that smaller nodes would not",
			ImplementationSteps: []string{
				fmt.Sprintf("Halve the instance size on cluster %s and double the worker count", cfg.Name),
			},
		})
	}

	if mismatch, want := e.classMismatch(cfg.Category, worker.Class); mismatch {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationNodeType,
			Issue:                   models.IssueWrongCategory,
			Severity:                models.SeverityLow,
			CurrentState:            fmt.Sprintf("%s-class workers (%s) on a %s cluster", worker.Class, worker.Name, cfg.Category),
			RecommendedState:        fmt.Sprintf("Prefer %s-class instances for this workload", want),
			EstimatedSavingsPercent: 10.0,
			Reason:                  "The instance family is tuned for a different resource profile than this workload",
			ImplementationSteps: []string{
				fmt.Sprintf("Benchmark cluster %s on a %s-class instance of similar size", cfg.Name, want),
			},
		})
	}

	return findings
}

// classMismatch pairs workload categories with the instance class they
// normally want. General purpose is always acceptable.
func (e *NodeTypeEvaluator) classMismatch(cat models.ClusterCategory, class InstanceClass) (bool, InstanceClass) {
	if class == ClassGeneral || class == ClassGPU {
		return false, ""
	}
	switch cat {
	case models.CategorySQL:
		// SQL warehouses are memory hungry; storage or compute class is a mismatch.
		if class != ClassMemory {
			return true, ClassMemory
		}
	case models.CategoryPipeline, models.CategoryJob:
		if class == ClassStorage {
			return true, ClassGeneral
		}
	}
	return false, ""
}

func (e *NodeTypeEvaluator) evaluateDriver(cfg *models.ClusterConfig, driver, worker InstanceInfo) []models.Finding {
	var findings []models.Finding

	if driver.Class != worker.Class {
		findings = append(findings, models.Finding{
			Category:                models.OptimizationNodeType,
			Issue:                   models.IssueMismatchedFamily,
			Severity:                models.SeverityLow,
			CurrentState:            fmt.Sprintf("Driver %s (%s class) with workers %s (%s class)", driver.Name, driver.Class, worker.Name, worker.Class),
			RecommendedState:        "Keep driver and workers in the same instance family",
			EstimatedSavingsPercent: 5.0,
			Reason:                  "Mixed families complicate capacity planning and spot fallback",
			ImplementationSteps: []string{
				fmt.Sprintf("Align the driver family with the workers on cluster %s", cfg.Name),
			},
		})
	}

	if cfg.EffectiveWorkers() > e.thresholds.SmallClusterWorkers {
		return findings
	}
	if worker.VCPUs == 0 || float64(driver.VCPUs) < e.thresholds.DriverOversizeFactor*float64(worker.VCPUs) {
		return findings
	}
	return append(findings, models.Finding{
		Category:                models.OptimizationNodeType,
		Issue:                   models.IssueOversizedDriver,
		Severity:                models.SeverityHigh,
		CurrentState:            fmt.Sprintf("Driver %s (%d vCPUs) against workers %s (%d vCPUs)", driver.Name, driver.VCPUs, worker.Name, worker.VCPUs),
		RecommendedState:        fmt.Sprintf("Use a driver no larger than the worker type %s", worker.Name),
		EstimatedSavingsPercent: 20.0,
		Reason:                  "On a small cluster an oversized driver is a large share of total spend",
		ImplementationSteps: []string{
			fmt.Sprintf("Downsize the driver on cluster %s to match the workers", cfg.Name),
		},
	})
}
