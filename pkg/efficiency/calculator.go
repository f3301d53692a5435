package efficiency

import (
	"time"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// Calculator turns raw usage samples into scored daily snapshots.
type Calculator struct {
	oversizedThreshold     float64
	underutilizedThreshold float64
}

// NewCalculator builds a calculator with the given dashboard
// thresholds. Scores below oversized mark the snapshot oversized;
// below underutilized marks it underutilized.
func NewCalculator(oversizedThreshold, underutilizedThreshold float64) *Calculator {
	return &Calculator{
		oversizedThreshold:     oversizedThreshold,
		underutilizedThreshold: underutilizedThreshold,
	}
}

// Score computes the efficiency percentage for one day of usage:
// consumed capacity over potential capacity, where potential is every
// node (workers plus driver) held for the full uptime. Returns nil
// when there was no uptime, since a ratio over zero capacity says
// nothing about the cluster.
func (c *Calculator) Score(cfg *models.ClusterConfig, sample models.UsageSample) *float64 {
	uptime := sample.UptimeHours
	if uptime < 0 {
		uptime = 0
	}
	potential := cfg.CapacityUnits() * uptime
	if potential == 0 {
		return nil
	}
	score := sample.ConsumedUnits / potential * 100.0
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return &score
}

// Snapshot assembles the persisted daily record for a cluster.
func (c *Calculator) Snapshot(cfg *models.ClusterConfig, date time.Time, sample models.UsageSample) models.DailySnapshot {
	score := c.Score(cfg, sample)
	uptime := sample.UptimeHours
	if uptime < 0 {
		uptime = 0
	}

	snap := models.DailySnapshot{
		ClusterID:       cfg.ID,
		ClusterName:     cfg.Name,
		Date:            models.DateOf(date),
		Category:        cfg.Category,
		WorkerCount:     cfg.EffectiveWorkers(),
		CapacityUnits:   cfg.CapacityUnits(),
		ConsumedUnits:   sample.ConsumedUnits,
		UptimeHours:     uptime,
		EfficiencyScore: score,
		CollectedAt:     time.Now().UTC(),
	}
	if score != nil {
		snap.IsOversized = *score < c.oversizedThreshold
		snap.IsUnderutilized = *score < c.underutilizedThreshold
	}
	return snap
}
