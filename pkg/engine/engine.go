package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/opscart/cluster-cost-advisor/pkg/aggregator"
	"github.com/opscart/cluster-cost-advisor/pkg/config"
	"github.com/opscart/cluster-cost-advisor/pkg/efficiency"
	"github.com/opscart/cluster-cost-advisor/pkg/evaluator"
	"github.com/opscart/cluster-cost-advisor/pkg/inventory"
	"github.com/opscart/cluster-cost-advisor/pkg/models"
	"github.com/opscart/cluster-cost-advisor/pkg/pricing"
	"github.com/opscart/cluster-cost-advisor/pkg/storage"
	"github.com/opscart/cluster-cost-advisor/pkg/trend"
	"github.com/opscart/cluster-cost-advisor/pkg/usage"
)

// PassError records a non-fatal problem from one evaluator pass. The
// analysis keeps going; the caller decides what to surface.
type PassError struct {
	ClusterID string
	Category  models.OptimizationCategory
	Err       error
}

func (e PassError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("cluster %s [%s]: %v", e.ClusterID, e.Category, e.Err)
	}
	return fmt.Sprintf("cluster %s: %v", e.ClusterID, e.Err)
}

// Filter narrows AnalyzeAll to a subset of the inventory. The zero
// value (or nil) matches everything.
type Filter struct {
	Category         models.ClusterCategory
	MinWorkers       int
	OnlyWithFindings bool
}

func (f *Filter) matches(cfg *models.ClusterConfig) bool {
	if f == nil {
		return true
	}
	if f.Category != "" && cfg.Category != f.Category {
		return false
	}
	if f.MinWorkers > 0 && cfg.EffectiveWorkers() < f.MinWorkers {
		return false
	}
	return true
}

// Engine wires the inventory, usage source, snapshot store and
// evaluators into the operations the CLI exposes.
type Engine struct {
	inventory  inventory.Source
	usage      usage.Source
	store      storage.Store
	prices     pricing.Provider
	evaluators []evaluator.Evaluator
	calc       *efficiency.Calculator
	summarizer *aggregator.SummaryAggregator
	trends     *trend.Aggregator

	trendBand    float64
	lookbackDays int
	concurrency  int
	persistent   bool
	verbose      bool
}

// New assembles an engine from configuration and its collaborators.
func New(cfg *config.Config, inv inventory.Source, usageSrc usage.Source, store storage.Store, prices pricing.Provider) *Engine {
	return &Engine{
		inventory:  inv,
		usage:      usageSrc,
		store:      store,
		prices:     prices,
		evaluators: evaluator.All(cfg.Evaluator),
		calc:       efficiency.NewCalculator(cfg.OversizedThreshold, cfg.UnderutilizedThreshold),
		summarizer: aggregator.NewSummaryAggregator(
			cfg.OversizedThreshold, cfg.UnderutilizedThreshold,
			cfg.DefaultUnitRate, cfg.MonthlyHours,
		),
		trends:       trend.NewAggregatorWithBand(cfg.MovingAvgWindow, cfg.TrendStableBand),
		trendBand:    cfg.TrendStableBand,
		lookbackDays: cfg.LookbackDays,
		concurrency:  cfg.Concurrency,
		persistent:   cfg.StorageEnabled,
		verbose:      cfg.Verbose,
	}
}

// Analyze runs every evaluator against one cluster.
func (e *Engine) Analyze(ctx context.Context, clusterID string) (*models.ClusterAnalysis, []PassError, error) {
	cfg, err := e.inventory.GetCluster(ctx, clusterID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cluster %s: %w", clusterID, err)
	}

	analysis, _, passErrs := e.analyzeOne(ctx, cfg)
	return &analysis, passErrs, nil
}

// AnalyzeAll analyzes every cluster the filter matches, with bounded
// parallelism. Per-cluster evaluator problems come back as PassErrors;
// only inventory or store failures abort the run.
func (e *Engine) AnalyzeAll(ctx context.Context, filter *Filter) ([]models.ClusterAnalysis, []PassError, error) {
	clusters, err := e.inventory.ListClusters(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list clusters: %w", err)
	}

	var matched []*models.ClusterConfig
	for _, cfg := range clusters {
		if filter.matches(cfg) {
			matched = append(matched, cfg)
		}
	}

	analyses := make([]models.ClusterAnalysis, len(matched))
	var mu sync.Mutex
	var passErrs []PassError

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, cfg := range matched {
		i, cfg := i, cfg
		g.Go(func() error {
			analysis, _, errs := e.analyzeOne(gctx, cfg)
			mu.Lock()
			analyses[i] = analysis
			passErrs = append(passErrs, errs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if filter != nil && filter.OnlyWithFindings {
		kept := analyses[:0]
		for _, a := range analyses {
			if len(a.Findings) > 0 {
				kept = append(kept, a)
			}
		}
		analyses = kept
	}
	return analyses, passErrs, nil
}

// Summary rolls the whole fleet up into the dashboard numbers.
func (e *Engine) Summary(ctx context.Context) (models.OptimizationSummary, []PassError, error) {
	clusters, err := e.inventory.ListClusters(ctx)
	if err != nil {
		return models.OptimizationSummary{}, nil, fmt.Errorf("failed to list clusters: %w", err)
	}

	reports := make([]aggregator.ClusterReport, len(clusters))
	var mu sync.Mutex
	var passErrs []PassError

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, cfg := range clusters {
		i, cfg := i, cfg
		g.Go(func() error {
			analysis, window, errs := e.analyzeOne(gctx, cfg)
			rate, rateErr := e.prices.UnitRate(gctx, cfg.CloudProvider)
			if rateErr != nil {
				rate = 0 // fall back to the summarizer default
				errs = append(errs, PassError{ClusterID: cfg.ID, Err: fmt.Errorf("pricing lookup failed: %w", rateErr)})
			}
			mu.Lock()
			reports[i] = aggregator.ClusterReport{
				Config:   cfg,
				Window:   window,
				Analysis: analysis,
				UnitRate: rate,
			}
			passErrs = append(passErrs, errs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.OptimizationSummary{}, nil, err
	}

	return e.summarizer.Summarize(reports, time.Now().UTC()), passErrs, nil
}

// Trends reads the stored daily aggregates for a period and classifies
// the fleet's direction. A period below 1 day selects nothing and is
// reported as insufficient data. A window < 1 falls back to the
// configured moving-average window.
func (e *Engine) Trends(ctx context.Context, periodDays, window int) (models.TrendReport, error) {
	if periodDays < 1 {
		return models.TrendReport{Summary: models.TrendSummary{
			PeriodDays:       periodDays,
			InsufficientData: true,
			Message:          "trend period must cover at least 1 day",
		}}, nil
	}
	since := models.DateOf(time.Now().UTC()).AddDate(0, 0, -periodDays)

	aggs, err := e.store.DailyAggregates(ctx, since)
	if err != nil {
		return models.TrendReport{}, fmt.Errorf("failed to load daily aggregates: %w", err)
	}

	trends := e.trends
	if window >= 1 {
		trends = trend.NewAggregatorWithBand(window, e.trendBand)
	}
	return trends.Report(aggs, periodDays), nil
}

// analyzeOne fetches the cluster's usage window and runs the full
// evaluator set. Evaluator errors never stop the other categories.
func (e *Engine) analyzeOne(ctx context.Context, cfg *models.ClusterConfig) (models.ClusterAnalysis, []models.DailySnapshot, []PassError) {
	var passErrs []PassError

	since := models.DateOf(time.Now().UTC()).AddDate(0, 0, -e.lookbackDays)
	window, err := e.store.GetWindow(ctx, cfg.ID, since)
	if err != nil {
		passErrs = append(passErrs, PassError{ClusterID: cfg.ID, Err: err})
		window = nil
	}

	var findings []models.Finding
	for _, ev := range e.evaluators {
		result, err := ev.Evaluate(cfg, window)
		if err != nil {
			passErrs = append(passErrs, PassError{ClusterID: cfg.ID, Category: ev.Category(), Err: err})
			continue
		}
		findings = append(findings, result...)
	}

	if e.verbose {
		fmt.Printf("[DEBUG] analyzed %s: %d findings, %d pass errors\n", cfg.ID, len(findings), len(passErrs))
	}
	return aggregator.Aggregate(cfg, findings), window, passErrs
}
