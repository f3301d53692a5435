package evaluator

import (
	"testing"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

func TestScheduleNoAutoTermination(t *testing.T) {
	eval := NewScheduleEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:       "c-1",
		Name:     "always-on",
		Category: models.CategoryInteractive,
	}

	// 10 uptime hours a day at 20% efficiency is 480 idle minutes.
	findings, err := eval.Evaluate(cfg, windowWithEfficiency(20, 20, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := findIssue(findings, models.IssueNoAutoTermination)
	if f == nil {
		t.Fatal("expected NO_AUTO_TERMINATION finding")
	}
	if f.Severity != models.SeverityHigh {
		t.Errorf("expected high severity at 480 idle minutes/day, got %s", f.Severity)
	}
	if f.EstimatedSavingsPercent != 40.0 {
		t.Errorf("expected 40%% savings, got %.1f", f.EstimatedSavingsPercent)
	}
}

func TestScheduleNoAutoTerminationLowIdleIsLowSeverity(t *testing.T) {
	eval := NewScheduleEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{ID: "c-2", Name: "busy", Category: models.CategoryInteractive}

	// 95% efficiency over 10 uptime hours leaves 30 idle minutes.
	findings, _ := eval.Evaluate(cfg, windowWithEfficiency(95, 95))
	f := findIssue(findings, models.IssueNoAutoTermination)
	if f == nil {
		t.Fatal("expected NO_AUTO_TERMINATION finding even on a busy cluster")
	}
	if f.Severity != models.SeverityLow {
		t.Errorf("expected low severity at 30 idle minutes/day, got %s", f.Severity)
	}
}

func TestScheduleLongAutoTermination(t *testing.T) {
	eval := NewScheduleEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:                     "c-3",
		Name:                   "slow-shutdown",
		Category:               models.CategoryInteractive,
		AutoTerminationMinutes: intPtr(240),
	}

	findings, _ := eval.Evaluate(cfg, windowWithEfficiency(90))
	if findIssue(findings, models.IssueLongAutoTermination) == nil {
		t.Error("expected LONG_AUTO_TERMINATION at 240 minutes")
	}

	cfg.AutoTerminationMinutes = intPtr(60)
	findings, _ = eval.Evaluate(cfg, windowWithEfficiency(90))
	if findIssue(findings, models.IssueLongAutoTermination) != nil {
		t.Error("60 minutes is within the recommended ceiling")
	}
}

func TestScheduleHighIdleTime(t *testing.T) {
	eval := NewScheduleEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:                     "c-4",
		Name:                   "habit",
		Category:               models.CategorySQL,
		NumWorkers:             4,
		AutoTerminationMinutes: intPtr(60),
	}

	findings, _ := eval.Evaluate(cfg, windowWithEfficiency(10, 10))
	if findIssue(findings, models.IssueHighIdleTime) == nil {
		t.Error("expected HIGH_IDLE_TIME at 540 idle minutes/day")
	}
}

func TestScheduleSkipsJobClusters(t *testing.T) {
	eval := NewScheduleEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{ID: "c-5", Name: "nightly", Category: models.CategoryJob}

	findings, err := eval.Evaluate(cfg, windowWithEfficiency(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("job clusters terminate with their run; got %d findings", len(findings))
	}
}
