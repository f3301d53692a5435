package evaluator

import (
	"errors"
	"testing"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

func TestRuntimeRequiresVersion(t *testing.T) {
	eval := NewRuntimeConfigEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{ID: "c-1", Name: "no-version"}

	_, err := eval.Evaluate(cfg, nil)
	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected InvalidConfigError, got %v", err)
	}
	if cfgErr.Field != "runtime_version" {
		t.Errorf("expected field runtime_version, got %s", cfgErr.Field)
	}
}

func TestRuntimeAQEExplicitlyDisabled(t *testing.T) {
	eval := NewRuntimeConfigEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:             "c-2",
		Name:           "aqe-off",
		RuntimeVersion: "14.3.x-scala2.12",
		AQEEnabled:     boolPtr(false),
	}

	findings, err := eval.Evaluate(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := findIssue(findings, models.IssueAQEDisabled)
	if f == nil {
		t.Fatal("expected AQE_DISABLED finding")
	}
	if f.Severity != models.SeverityHigh {
		t.Errorf("expected high severity, got %s", f.Severity)
	}
}

func TestRuntimeAQEDefaultIsFine(t *testing.T) {
	eval := NewRuntimeConfigEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:             "c-3",
		Name:           "aqe-default",
		RuntimeVersion: "14.3.x-scala2.12",
	}

	findings, _ := eval.Evaluate(cfg, nil)
	if findIssue(findings, models.IssueAQEDisabled) != nil {
		t.Error("unset AQE means the runtime default, not a finding")
	}
}

func TestRuntimePhotonOffOnSQL(t *testing.T) {
	eval := NewRuntimeConfigEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:             "c-4",
		Name:           "warehouse",
		Category:       models.CategorySQL,
		RuntimeVersion: "14.3.x-scala2.12",
		PhotonEnabled:  false,
	}

	findings, _ := eval.Evaluate(cfg, nil)
	f := findIssue(findings, models.IssuePhotonDisabled)
	if f == nil {
		t.Fatal("expected PHOTON_DISABLED for SQL cluster")
	}
	if f.EstimatedSavingsPercent != 20.0 {
		t.Errorf("expected 20%% savings, got %.1f", f.EstimatedSavingsPercent)
	}
}

func TestRuntimePhotonNotRequiredOnInteractive(t *testing.T) {
	eval := NewRuntimeConfigEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:             "c-5",
		Name:           "notebooks",
		Category:       models.CategoryInteractive,
		RuntimeVersion: "14.3.x-scala2.12",
	}

	findings, _ := eval.Evaluate(cfg, nil)
	if findIssue(findings, models.IssuePhotonDisabled) != nil {
		t.Error("interactive cluster without Photon is not a finding")
	}
}

func TestRuntimeExcessiveShufflePartitions(t *testing.T) {
	eval := NewRuntimeConfigEvaluator(DefaultThresholds())
	cfg := &models.ClusterConfig{
		ID:                "c-6",
		Name:              "shuffle-heavy",
		Category:          models.CategoryJob,
		CloudProvider:     models.CloudAWS,
		WorkerNodeType:    "m5.xlarge",
		NumWorkers:        4,
		RuntimeVersion:    "14.3.x-scala2.12",
		ShufflePartitions: intPtr(4000),
	}

	findings, _ := eval.Evaluate(cfg, nil)
	if findIssue(findings, models.IssueExcessivePartitions) == nil {
		t.Error("expected EXCESSIVE_SHUFFLE_PARTITIONS at 4000 on 16 cores")
	}

	cfg.ShufflePartitions = intPtr(200)
	findings, _ = eval.Evaluate(cfg, nil)
	if findIssue(findings, models.IssueExcessivePartitions) != nil {
		t.Error("200 partitions is within the default floor")
	}
}
