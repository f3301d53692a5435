package trend

import (
	"math"
	"testing"
	"time"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

func makeSeries(efficiencies ...float64) []models.DailyAggregate {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	aggs := make([]models.DailyAggregate, len(efficiencies))
	for i, eff := range efficiencies {
		aggs[i] = models.DailyAggregate{
			Date:               day.AddDate(0, 0, i),
			TotalClusters:      10,
			AvgEfficiency:      eff,
			TotalConsumedUnits: 1000,
		}
	}
	return aggs
}

func TestPointsTrailingMovingAverage(t *testing.T) {
	agg := NewAggregator(3)
	points := agg.Points(makeSeries(10, 20, 30, 40, 50))

	// Early points average over what exists, later ones over the window.
	want := []float64{10, 15, 20, 30, 40}
	for i, w := range want {
		if math.Abs(points[i].EfficiencyMovingAvg-w) > 0.001 {
			t.Errorf("point %d: expected moving avg %.1f, got %.3f", i, w, points[i].EfficiencyMovingAvg)
		}
	}
}

func TestPointsCarryRawValues(t *testing.T) {
	agg := NewAggregator(7)
	points := agg.Points(makeSeries(42))

	if points[0].AvgEfficiency != 42 {
		t.Errorf("expected raw efficiency 42, got %.1f", points[0].AvgEfficiency)
	}
	if points[0].TotalClusters != 10 {
		t.Errorf("expected 10 clusters, got %d", points[0].TotalClusters)
	}
}

func TestReportEmptySeries(t *testing.T) {
	agg := NewAggregator(7)
	report := agg.Report(nil, 30)

	if !report.Summary.InsufficientData {
		t.Error("empty series must set InsufficientData")
	}
	if report.Summary.Message == "" {
		t.Error("empty series must carry a message")
	}
	if report.Summary.CurrentEfficiency != 0 {
		t.Error("no data point should leave current efficiency zero")
	}
}

func TestReportImprovingEfficiency(t *testing.T) {
	agg := NewAggregator(3)
	report := agg.Report(makeSeries(20, 25, 30, 35, 40, 45, 50), 30)

	if report.Summary.InsufficientData {
		t.Fatal("series with data must not be insufficient")
	}
	if report.Summary.EfficiencyTrend != TrendImproving {
		t.Errorf("expected improving, got %s", report.Summary.EfficiencyTrend)
	}
	if report.Summary.DataPoints != 7 {
		t.Errorf("expected 7 data points, got %d", report.Summary.DataPoints)
	}
}

func TestReportDecliningEfficiency(t *testing.T) {
	agg := NewAggregator(3)
	report := agg.Report(makeSeries(50, 45, 40, 35, 30, 25, 20), 30)

	if report.Summary.EfficiencyTrend != TrendDeclining {
		t.Errorf("expected declining, got %s", report.Summary.EfficiencyTrend)
	}
}

func TestReportSlightImprovementIsImproving(t *testing.T) {
	// Classification is a strict binary with no default noise band:
	// any rise in the moving average, however small, is improving.
	agg := NewAggregator(3)
	report := agg.Report(makeSeries(40.0, 40.1, 40.2, 40.3, 40.4, 40.5, 40.6), 30)

	if report.Summary.EfficiencyTrend != TrendImproving {
		t.Errorf("expected improving for a slowly rising series, got %s", report.Summary.EfficiencyTrend)
	}
}

func TestReportFlatSeriesIsImproving(t *testing.T) {
	// A moving average that held counts as improving; ties go up.
	agg := NewAggregator(3)
	report := agg.Report(makeSeries(40, 40, 40, 40, 40), 30)

	if report.Summary.EfficiencyTrend != TrendImproving {
		t.Errorf("expected improving for a held moving average, got %s", report.Summary.EfficiencyTrend)
	}
	if report.Summary.ConsumedTrend != TrendStable {
		t.Errorf("expected stable consumption, got %s", report.Summary.ConsumedTrend)
	}
}

func TestReportStableWithinConfiguredBand(t *testing.T) {
	agg := NewAggregatorWithBand(3, 0.5)
	report := agg.Report(makeSeries(40, 40.1, 39.9, 40, 40.2), 30)

	if report.Summary.EfficiencyTrend != TrendStable {
		t.Errorf("expected stable, got %s", report.Summary.EfficiencyTrend)
	}
	if report.Summary.ConsumedTrend != TrendStable {
		t.Errorf("expected stable consumption, got %s", report.Summary.ConsumedTrend)
	}
}

func TestReportSinglePoint(t *testing.T) {
	agg := NewAggregator(7)
	report := agg.Report(makeSeries(33), 30)

	if report.Summary.InsufficientData {
		t.Error("one point is data, not insufficiency")
	}
	if report.Summary.EfficiencyTrend != TrendImproving {
		t.Errorf("one point compares to itself and holds, got %s", report.Summary.EfficiencyTrend)
	}
	if report.Summary.CurrentEfficiency != 33 {
		t.Errorf("expected current efficiency 33, got %.1f", report.Summary.CurrentEfficiency)
	}
}

func TestReportConsumptionDirection(t *testing.T) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var aggs []models.DailyAggregate
	for i := 0; i < 7; i++ {
		aggs = append(aggs, models.DailyAggregate{
			Date:               day.AddDate(0, 0, i),
			AvgEfficiency:      40,
			TotalConsumedUnits: float64(1000 + i*200),
		})
	}

	agg := NewAggregator(3)
	report := agg.Report(aggs, 30)
	if report.Summary.ConsumedTrend != TrendIncreasing {
		t.Errorf("expected increasing consumption, got %s", report.Summary.ConsumedTrend)
	}
}
