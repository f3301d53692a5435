package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/opscart/cluster-cost-advisor/pkg/evaluator"
)

// Config holds application configuration
type Config struct {
	// Snapshot store
	StorageEnabled bool
	DatabaseURL    string

	// Utilization source
	PrometheusURL string

	// Analysis
	LookbackDays    int     // snapshot window read by the evaluators
	MovingAvgWindow int     // default trailing window for trends
	TrendStableBand float64 // moving-average delta treated as flat, 0 = strict
	Concurrency     int     // parallel cluster analyses per pass

	// Rule cutoffs, overridable per deployment through EVAL_* vars.
	Evaluator evaluator.Thresholds

	// Dashboard-level thresholds; intentionally independent of the sizing
	// evaluator's own cutoffs so alerting can be tuned separately.
	OversizedThreshold     float64
	UnderutilizedThreshold float64

	// Cost model
	DefaultUnitRate float64 // USD per capacity-unit-hour
	MonthlyHours    float64

	// Output
	OutputFormat string // text, json
	Verbose      bool
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		StorageEnabled:         getEnvBool("STORAGE_ENABLED", true),
		DatabaseURL:            getEnv("DATABASE_URL", "host=localhost port=5432 user=advisor password=devpassword dbname=clusteradvisor sslmode=disable"),
		PrometheusURL:          getEnv("PROMETHEUS_URL", "http://localhost:9090"),
		LookbackDays:           getEnvInt("LOOKBACK_DAYS", 7),
		MovingAvgWindow:        getEnvInt("MOVING_AVG_WINDOW", 7),
		TrendStableBand:        getEnvFloat("TREND_STABLE_BAND", 0),
		Concurrency:            getEnvInt("ANALYSIS_CONCURRENCY", 8),
		Evaluator:              evaluatorThresholds(),
		OversizedThreshold:     getEnvFloat("OVERSIZED_THRESHOLD", 30.0),
		UnderutilizedThreshold: getEnvFloat("UNDERUTILIZED_THRESHOLD", 50.0),
		DefaultUnitRate:        getEnvFloat("UNIT_RATE_USD", 0.15),
		MonthlyHours:           730.0,
		OutputFormat:           "text",
		Verbose:                false,
	}
}

// evaluatorThresholds starts from the standard cutoffs and applies any
// EVAL_* environment overrides.
func evaluatorThresholds() evaluator.Thresholds {
	t := evaluator.DefaultThresholds()

	t.LargeClusterWorkers = getEnvInt("EVAL_LARGE_CLUSTER_WORKERS", t.LargeClusterWorkers)
	t.OversizedEfficiency = getEnvFloat("EVAL_OVERSIZED_EFFICIENCY", t.OversizedEfficiency)
	t.CriticalEfficiency = getEnvFloat("EVAL_CRITICAL_EFFICIENCY", t.CriticalEfficiency)
	t.MinRecommendedWorkers = getEnvInt("EVAL_MIN_RECOMMENDED_WORKERS", t.MinRecommendedWorkers)

	t.FixedSizeWorkers = getEnvInt("EVAL_FIXED_SIZE_WORKERS", t.FixedSizeWorkers)
	t.HighMinimumWorkers = getEnvInt("EVAL_HIGH_MINIMUM_WORKERS", t.HighMinimumWorkers)
	t.CriticalMinimumWorkers = getEnvInt("EVAL_CRITICAL_MINIMUM_WORKERS", t.CriticalMinimumWorkers)
	t.WideRangeRatio = getEnvFloat("EVAL_WIDE_RANGE_RATIO", t.WideRangeRatio)
	t.WideRangeSpread = getEnvInt("EVAL_WIDE_RANGE_SPREAD", t.WideRangeSpread)
	t.NarrowRangeSpread = getEnvInt("EVAL_NARROW_RANGE_SPREAD", t.NarrowRangeSpread)

	t.DriverOversizeFactor = getEnvFloat("EVAL_DRIVER_OVERSIZE_FACTOR", t.DriverOversizeFactor)
	t.SmallClusterWorkers = getEnvInt("EVAL_SMALL_CLUSTER_WORKERS", t.SmallClusterWorkers)
	t.LargeInstanceVCPUs = getEnvInt("EVAL_LARGE_INSTANCE_VCPUS", t.LargeInstanceVCPUs)

	t.ShufflePartitionsPerCore = getEnvInt("EVAL_SHUFFLE_PARTITIONS_PER_CORE", t.ShufflePartitionsPerCore)
	t.ShufflePartitionsFloor = getEnvInt("EVAL_SHUFFLE_PARTITIONS_FLOOR", t.ShufflePartitionsFloor)

	t.SpotMinWorkers = getEnvInt("EVAL_SPOT_MIN_WORKERS", t.SpotMinWorkers)
	t.OnDemandRatioLimit = getEnvFloat("EVAL_ON_DEMAND_RATIO_LIMIT", t.OnDemandRatioLimit)

	t.ScheduleMinWorkers = getEnvInt("EVAL_SCHEDULE_MIN_WORKERS", t.ScheduleMinWorkers)
	t.AutoTerminationCeiling = getEnvInt("EVAL_AUTO_TERMINATION_CEILING", t.AutoTerminationCeiling)
	t.RecommendedAutoTerm = getEnvInt("EVAL_RECOMMENDED_AUTO_TERM", t.RecommendedAutoTerm)
	t.HighIdleMinutes = getEnvInt("EVAL_HIGH_IDLE_MINUTES", t.HighIdleMinutes)
	t.MediumIdleMinutes = getEnvInt("EVAL_MEDIUM_IDLE_MINUTES", t.MediumIdleMinutes)

	return t
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.StorageEnabled && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when storage is enabled")
	}
	if c.LookbackDays < 1 {
		return fmt.Errorf("lookback must be at least 1 day")
	}
	if c.MovingAvgWindow < 1 {
		return fmt.Errorf("moving average window must be at least 1")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("analysis concurrency must be at least 1")
	}
	if c.OversizedThreshold < 0 || c.OversizedThreshold > 100 {
		return fmt.Errorf("oversized threshold must be in [0,100]")
	}
	if c.UnderutilizedThreshold < 0 || c.UnderutilizedThreshold > 100 {
		return fmt.Errorf("underutilized threshold must be in [0,100]")
	}
	if c.TrendStableBand < 0 {
		return fmt.Errorf("trend stable band must be >= 0")
	}
	if c.DefaultUnitRate < 0 {
		return fmt.Errorf("unit rate must be >= 0")
	}
	return nil
}
