package efficiency

import (
	"testing"
	"time"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

func TestScoreBasic(t *testing.T) {
	calc := NewCalculator(30, 50)
	cfg := &models.ClusterConfig{ID: "c-1", NumWorkers: 9}

	// 10 capacity units over 10 hours is 100 potential; 40 consumed is 40%.
	score := calc.Score(cfg, models.UsageSample{ConsumedUnits: 40, UptimeHours: 10})
	if score == nil {
		t.Fatal("expected a score")
	}
	if *score != 40.0 {
		t.Errorf("expected 40.0, got %.2f", *score)
	}
}

func TestScoreNilWhenNoUptime(t *testing.T) {
	calc := NewCalculator(30, 50)
	cfg := &models.ClusterConfig{ID: "c-2", NumWorkers: 4}

	if score := calc.Score(cfg, models.UsageSample{ConsumedUnits: 5, UptimeHours: 0}); score != nil {
		t.Errorf("zero uptime should yield nil score, got %.2f", *score)
	}
	if score := calc.Score(cfg, models.UsageSample{ConsumedUnits: 5, UptimeHours: -3}); score != nil {
		t.Errorf("negative uptime should clamp to zero and yield nil, got %.2f", *score)
	}
}

func TestScoreCappedAtHundred(t *testing.T) {
	calc := NewCalculator(30, 50)
	cfg := &models.ClusterConfig{ID: "c-3", NumWorkers: 1}

	score := calc.Score(cfg, models.UsageSample{ConsumedUnits: 500, UptimeHours: 1})
	if score == nil || *score != 100.0 {
		t.Errorf("expected cap at 100, got %v", score)
	}
}

func TestScoreUsesAutoscaleMidpoint(t *testing.T) {
	calc := NewCalculator(30, 50)
	cfg := &models.ClusterConfig{
		ID:        "c-4",
		Autoscale: &models.AutoscaleConfig{MinWorkers: 2, MaxWorkers: 8},
	}

	// Midpoint 5 workers plus driver is 6 units; 6 units over 1 hour at
	// 3 consumed is 50%.
	score := calc.Score(cfg, models.UsageSample{ConsumedUnits: 3, UptimeHours: 1})
	if score == nil {
		t.Fatal("expected a score")
	}
	if *score != 50.0 {
		t.Errorf("expected 50.0, got %.2f", *score)
	}
}

func TestSnapshotFlags(t *testing.T) {
	calc := NewCalculator(30, 50)
	cfg := &models.ClusterConfig{
		ID:         "c-5",
		Name:       "flags",
		Category:   models.CategoryJob,
		NumWorkers: 9,
	}
	date := time.Date(2026, 8, 15, 13, 45, 0, 0, time.UTC)

	snap := calc.Snapshot(cfg, date, models.UsageSample{ConsumedUnits: 20, UptimeHours: 10})
	if snap.EfficiencyScore == nil || *snap.EfficiencyScore != 20.0 {
		t.Fatalf("expected score 20.0, got %v", snap.EfficiencyScore)
	}
	if !snap.IsOversized {
		t.Error("20%% should be flagged oversized")
	}
	if !snap.IsUnderutilized {
		t.Error("20%% should be flagged underutilized")
	}
	if !snap.Date.Equal(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("snapshot date should truncate to midnight UTC, got %v", snap.Date)
	}

	snap = calc.Snapshot(cfg, date, models.UsageSample{ConsumedUnits: 45, UptimeHours: 10})
	if snap.IsOversized {
		t.Error("45%% is above the oversized threshold")
	}
	if !snap.IsUnderutilized {
		t.Error("45%% is still below the underutilized threshold")
	}

	snap = calc.Snapshot(cfg, date, models.UsageSample{ConsumedUnits: 0, UptimeHours: 0})
	if snap.EfficiencyScore != nil {
		t.Error("no uptime should leave the score nil")
	}
	if snap.IsOversized || snap.IsUnderutilized {
		t.Error("flags must stay false when the score is nil")
	}
}
