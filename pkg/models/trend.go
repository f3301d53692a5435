package models

import "time"

// DailyAggregate is the workspace-wide rollup of all clusters' snapshots for
// one date, the input row for trend aggregation.
type DailyAggregate struct {
	Date               time.Time
	TotalClusters      int
	OversizedCount     int
	UnderutilizedCount int
	AvgEfficiency      float64
	TotalConsumedUnits float64
	TotalUptimeHours   float64
}

// TrendPoint is one date's aggregate metrics with trailing moving averages.
type TrendPoint struct {
	Date               time.Time `json:"date"`
	TotalClusters      int       `json:"total_clusters"`
	OversizedCount     int       `json:"oversized_count"`
	UnderutilizedCount int       `json:"underutilized_count"`
	AvgEfficiency      float64   `json:"avg_efficiency"`
	TotalConsumedUnits float64   `json:"total_consumed_units"`

	EfficiencyMovingAvg float64 `json:"efficiency_moving_avg"`
	ConsumedMovingAvg   float64 `json:"consumed_moving_avg"`
	OversizedMovingAvg  float64 `json:"oversized_moving_avg"`
}

// TrendSummary describes the overall direction of the trend window.
type TrendSummary struct {
	PeriodDays        int     `json:"period_days"`
	MovingAvgWindow   int     `json:"moving_avg_window"`
	DataPoints        int     `json:"data_points"`
	CurrentEfficiency float64 `json:"current_efficiency,omitempty"`
	EfficiencyTrend   string  `json:"efficiency_trend,omitempty"` // improving | declining | stable
	CurrentDailyUnits float64 `json:"current_daily_units,omitempty"`
	ConsumedTrend     string  `json:"consumed_trend,omitempty"` // increasing | decreasing | stable
	InsufficientData  bool    `json:"insufficient_data"`
	Message           string  `json:"message,omitempty"`
}

// TrendReport pairs trend points with their classification summary.
type TrendReport struct {
	Summary TrendSummary `json:"summary"`
	Points  []TrendPoint `json:"trends"`
}

// OptimizationSummary is the single workspace-wide rollup consumed by the
// dashboard.
type OptimizationSummary struct {
	TotalClustersAnalyzed        int       `json:"total_clusters_analyzed"`
	OversizedClusters            int       `json:"oversized_clusters"`
	UnderutilizedClusters        int       `json:"underutilized_clusters"`
	RecommendationsCount         int       `json:"recommendations_count"`
	TotalPotentialMonthlySavings float64   `json:"total_potential_monthly_savings"`
	InsufficientData             bool      `json:"insufficient_data"`
	Message                      string    `json:"message,omitempty"`
	LastAnalysisTime             time.Time `json:"last_analysis_time"`
}
