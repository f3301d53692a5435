package evaluator

import (
	"testing"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

func TestAutoscalingFlagsFixedCluster(t *testing.T) {
	eval := NewAutoscalingEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{ID: "c-1", Name: "fixed-8", NumWorkers: 8}

	findings, err := eval.Evaluate(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := findIssue(findings, models.IssueNoAutoscaling)
	if f == nil {
		t.Fatal("expected NO_AUTOSCALING finding")
	}
	if f.EstimatedSavingsPercent != 35.0 {
		t.Errorf("expected 35%% savings, got %.1f", f.EstimatedSavingsPercent)
	}
	if f.Severity != models.SeverityHigh {
		t.Errorf("expected high severity, got %s", f.Severity)
	}
}

func TestAutoscalingIgnoresTinyFixedCluster(t *testing.T) {
	eval := NewAutoscalingEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{ID: "c-2", Name: "fixed-2", NumWorkers: 2}

	findings, _ := eval.Evaluate(cfg, nil)
	if len(findings) != 0 {
		t.Errorf("2-worker fixed cluster should pass, got %d findings", len(findings))
	}
}

func TestAutoscalingHighMinimum(t *testing.T) {
	tests := []struct {
		name     string
		min      int
		max      int
		severity models.Severity
	}{
		{"high floor", 8, 12, models.SeverityMedium},
		{"critical floor", 16, 40, models.SeverityHigh},
	}

	eval := NewAutoscalingEvaluator(DefaultThresholds())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &models.ClusterConfig{
				ID:        "c-3",
				Name:      "floors",
				Autoscale: &models.AutoscaleConfig{MinWorkers: tt.min, MaxWorkers: tt.max},
			}
			findings, err := eval.Evaluate(cfg, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			f := findIssue(findings, models.IssueHighMinimum)
			if f == nil {
				t.Fatal("expected HIGH_MINIMUM finding")
			}
			if f.Severity != tt.severity {
				t.Errorf("expected %s severity for min=%d, got %s", tt.severity, tt.min, f.Severity)
			}
		})
	}
}

func TestAutoscalingWideAndNarrowRanges(t *testing.T) {
	eval := NewAutoscalingEvaluator(DefaultThresholds())

	wide := &models.ClusterConfig{
		ID:        "c-4",
		Name:      "wide",
		Autoscale: &models.AutoscaleConfig{MinWorkers: 2, MaxWorkers: 50},
	}
	findings, _ := eval.Evaluate(wide, nil)
	if findIssue(findings, models.IssueWideRange) == nil {
		t.Error("expected WIDE_RANGE for 2-50")
	}

	narrow := &models.ClusterConfig{
		ID:        "c-5",
		Name:      "narrow",
		Autoscale: &models.AutoscaleConfig{MinWorkers: 4, MaxWorkers: 5},
	}
	findings, _ = eval.Evaluate(narrow, nil)
	if findIssue(findings, models.IssueNarrowRange) == nil {
		t.Error("expected NARROW_RANGE for 4-5")
	}
}

func TestAutoscalingJobClusterScaleToZero(t *testing.T) {
	eval := NewAutoscalingEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:        "c-6",
		Name:      "nightly-etl",
		Category:  models.CategoryJob,
		Autoscale: &models.AutoscaleConfig{MinWorkers: 2, MaxWorkers: 6},
	}

	findings, _ := eval.Evaluate(cfg, nil)
	if findIssue(findings, models.IssueScaleToZero) == nil {
		t.Error("expected SCALE_TO_ZERO for job cluster with nonzero floor")
	}
}
