package evaluator

import (
	"testing"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

func TestSizingFlagsLargeInefficientCluster(t *testing.T) {
	eval := NewSizingEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:         "c-1",
		Name:       "reporting-prod",
		Category:   models.CategoryInteractive,
		NumWorkers: 25,
	}

	findings, err := eval.Evaluate(cfg, windowWithEfficiency(22, 22, 22))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}

	f := findings[0]
	if f.Issue != models.IssueOversizedCluster {
		t.Errorf("expected OVERSIZED_CLUSTER, got %s", f.Issue)
	}
	if f.Severity != models.SeverityHigh {
		t.Errorf("expected high severity at 22%% efficiency, got %s", f.Severity)
	}
	// 25 workers at 22% rounds up to 6 recommended, a 76% reduction.
	if f.EstimatedSavingsPercent < 75.9 || f.EstimatedSavingsPercent > 76.1 {
		t.Errorf("expected 76%% savings, got %.1f", f.EstimatedSavingsPercent)
	}
}

func TestSizingSkipsAutoscalingClusters(t *testing.T) {
	eval := NewSizingEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:         "c-2",
		Name:       "etl-auto",
		NumWorkers: 30,
		Autoscale:  &models.AutoscaleConfig{MinWorkers: 2, MaxWorkers: 30},
	}

	findings, err := eval.Evaluate(cfg, windowWithEfficiency(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("autoscaling cluster should not get sizing findings, got %d", len(findings))
	}
}

func TestSizingSkipsSmallClusters(t *testing.T) {
	eval := NewSizingEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{ID: "c-3", Name: "tiny", NumWorkers: 4}

	findings, err := eval.Evaluate(cfg, windowWithEfficiency(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("small cluster should not get sizing findings, got %d", len(findings))
	}
}

func TestSizingRequiresMeasuredUsage(t *testing.T) {
	eval := NewSizingEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{ID: "c-4", Name: "no-data", NumWorkers: 20}

	window := windowWithEfficiency(50)
	window[0].EfficiencyScore = nil

	findings, err := eval.Evaluate(cfg, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("window without scores should yield no findings, got %d", len(findings))
	}
}

func TestSizingMediumSeverityAboveCriticalCutoff(t *testing.T) {
	eval := NewSizingEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{ID: "c-5", Name: "mid", NumWorkers: 12}

	findings, err := eval.Evaluate(cfg, windowWithEfficiency(28))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Severity != models.SeverityMedium {
		t.Errorf("expected medium severity at 28%%, got %s", findings[0].Severity)
	}
}
