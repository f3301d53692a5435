package trend

import (
	"fmt"
	"math"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// Direction labels for the trend summary.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"

	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// Aggregator smooths daily fleet aggregates with a trailing moving
// average and classifies the direction of travel.
type Aggregator struct {
	window int
	band   float64
}

// NewAggregator builds a trend aggregator with the given smoothing
// window and strict binary classification: a moving average that held
// or rose is improving, anything else is declining. Windows below 1
// are raised to 1.
func NewAggregator(window int) *Aggregator {
	return NewAggregatorWithBand(window, 0)
}

// NewAggregatorWithBand additionally treats moving-average deltas
// within band as stable. Negative bands are raised to 0.
func NewAggregatorWithBand(window int, band float64) *Aggregator {
	if window < 1 {
		window = 1
	}
	if band < 0 {
		band = 0
	}
	return &Aggregator{window: window, band: band}
}

// Points annotates each aggregate with trailing moving averages. Early
// points average over however many days exist so the series has no
// warm-up gap.
func (a *Aggregator) Points(aggs []models.DailyAggregate) []models.TrendPoint {
	points := make([]models.TrendPoint, len(aggs))
	for i, agg := range aggs {
		start := i + 1 - a.window
		if start < 0 {
			start = 0
		}
		span := aggs[start : i+1]

		var effSum, consumedSum, oversizedSum float64
		for _, s := range span {
			effSum += s.AvgEfficiency
			consumedSum += s.TotalConsumedUnits
			oversizedSum += float64(s.OversizedCount)
		}
		n := float64(len(span))
		points[i] = models.TrendPoint{
			Date:               agg.Date,
			TotalClusters:      agg.TotalClusters,
			OversizedCount:     agg.OversizedCount,
			UnderutilizedCount: agg.UnderutilizedCount,
			AvgEfficiency:      agg.AvgEfficiency,
			TotalConsumedUnits: agg.TotalConsumedUnits,

			EfficiencyMovingAvg: effSum / n,
			ConsumedMovingAvg:   consumedSum / n,
			OversizedMovingAvg:  oversizedSum / n,
		}
	}
	return points
}

// Report builds the full trend report for a period. An empty series is
// reported through InsufficientData rather than as flat zeros.
func (a *Aggregator) Report(aggs []models.DailyAggregate, periodDays int) models.TrendReport {
	points := a.Points(aggs)

	summary := models.TrendSummary{
		PeriodDays:      periodDays,
		MovingAvgWindow: a.window,
		DataPoints:      len(points),
	}
	if len(points) == 0 {
		summary.InsufficientData = true
		summary.Message = fmt.Sprintf("no daily aggregates recorded in the last %d days", periodDays)
		return models.TrendReport{Summary: summary, Points: points}
	}

	latest := points[len(points)-1]
	summary.CurrentEfficiency = latest.EfficiencyMovingAvg
	summary.CurrentDailyUnits = latest.ConsumedMovingAvg

	baseline := len(points) - 1 - a.window
	if baseline < 0 {
		baseline = 0
	}
	summary.EfficiencyTrend = a.classifyEfficiency(points[baseline].EfficiencyMovingAvg, latest.EfficiencyMovingAvg)
	summary.ConsumedTrend = a.classifyConsumption(points[baseline].ConsumedMovingAvg, latest.ConsumedMovingAvg)

	if len(points) < 2 {
		summary.Message = "single data point; trend compares the point to itself"
	}
	return models.TrendReport{Summary: summary, Points: points}
}

// classifyEfficiency is a strict binary: held-or-rose is improving,
// fell is declining. A configured band carves out a stable middle.
func (a *Aggregator) classifyEfficiency(earlier, latest float64) string {
	if a.band > 0 && math.Abs(latest-earlier) <= a.band {
		return TrendStable
	}
	if latest >= earlier {
		return TrendImproving
	}
	return TrendDeclining
}

func (a *Aggregator) classifyConsumption(earlier, latest float64) string {
	// Consumption moves on a much larger scale than efficiency
	// percentages, so a configured band is applied relative to the
	// earlier value.
	if a.band > 0 {
		band := a.band
		if rel := math.Abs(earlier) * 0.01; rel > band {
			band = rel
		}
		if math.Abs(latest-earlier) <= band {
			return TrendStable
		}
	}
	switch {
	case latest > earlier:
		return TrendIncreasing
	case latest < earlier:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
