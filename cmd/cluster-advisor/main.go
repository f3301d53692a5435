package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opscart/cluster-cost-advisor/pkg/config"
	"github.com/opscart/cluster-cost-advisor/pkg/engine"
	"github.com/opscart/cluster-cost-advisor/pkg/inventory"
	"github.com/opscart/cluster-cost-advisor/pkg/models"
	"github.com/opscart/cluster-cost-advisor/pkg/pricing"
	"github.com/opscart/cluster-cost-advisor/pkg/reporter"
	"github.com/opscart/cluster-cost-advisor/pkg/storage"
	"github.com/opscart/cluster-cost-advisor/pkg/usage"
)

var (
	inventoryPath string
	outputFormat  string
	verbose       bool
	noStore       bool
	collectDate   string
	trendDays     int
	trendWindow   int
	historyLimit  int

	filterCategory   string
	filterMinWorkers int
	onlyIssues       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cluster-advisor",
		Short: "Cost and utilization advisor for compute clusters",
	}

	rootCmd.PersistentFlags().StringVarP(&inventoryPath, "inventory", "i", "clusters.json", "Path to the cluster inventory JSON export")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json, csv, markdown")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noStore, "no-store", false, "Run without the snapshot database (in-memory only)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [cluster-id]",
		Short: "Analyze one cluster, or the whole inventory",
		Args:  cobra.MaximumNArgs(1),
		Run:   runAnalyze,
	}
	analyzeCmd.Flags().StringVar(&filterCategory, "category", "", "Only analyze clusters in this category")
	analyzeCmd.Flags().IntVar(&filterMinWorkers, "min-workers", 0, "Only analyze clusters with at least this many workers")
	analyzeCmd.Flags().BoolVar(&onlyIssues, "only-issues", false, "Omit clusters with no findings")

	collectCmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect and persist one day of usage snapshots",
		Run:   runCollect,
	}
	collectCmd.Flags().StringVar(&collectDate, "date", "", "Day to collect (YYYY-MM-DD, default today)")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Fleet-wide optimization summary",
		Run:   runSummary,
	}

	trendsCmd := &cobra.Command{
		Use:   "trends",
		Short: "Efficiency and consumption trends from stored snapshots",
		Run:   runTrends,
	}
	trendsCmd.Flags().IntVar(&trendDays, "days", 30, "Trend period in days")
	trendsCmd.Flags().IntVar(&trendWindow, "window", 0, "Moving-average window in days (default from config)")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Recent collection runs",
		Run:   runHistory,
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to show")

	rootCmd.AddCommand(analyzeCmd, collectCmd, summaryCmd, trendsCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildEngine() (*engine.Engine, func()) {
	cfg := config.NewConfig()
	cfg.Verbose = verbose
	if noStore {
		cfg.StorageEnabled = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	inv := inventory.NewFileSource(inventoryPath)

	src, err := usage.NewPrometheusSource(cfg.PrometheusURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store storage.Store
	if cfg.StorageEnabled {
		pg, err := storage.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		store = pg
	} else {
		fmt.Println("[INFO] Storage disabled, snapshots stay in memory")
		store = storage.NewMemoryStore()
	}

	prices := pricing.NewCachedProvider(pricing.NewStaticProvider(cfg.DefaultUnitRate), time.Hour)

	eng := engine.New(cfg, inv, src, store, prices)
	return eng, func() { store.Close() }
}

func runAnalyze(cmd *cobra.Command, args []string) {
	eng, cleanup := buildEngine()
	defer cleanup()
	ctx := context.Background()

	var analyses []models.ClusterAnalysis
	var passErrs []engine.PassError

	if len(args) == 1 {
		analysis, errs, err := eng.Analyze(ctx, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		analyses = append(analyses, *analysis)
		passErrs = errs
	} else {
		filter := &engine.Filter{
			Category:         models.ClusterCategory(strings.ToUpper(filterCategory)),
			MinWorkers:       filterMinWorkers,
			OnlyWithFindings: onlyIssues,
		}
		all, errs, err := eng.AnalyzeAll(ctx, filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		analyses = all
		passErrs = errs
	}

	for _, pe := range passErrs {
		fmt.Printf("[WARN] %v\n", pe)
	}

	if outputFormat == "json" {
		printJSON(analyses)
		return
	}

	summary, _, err := eng.Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	report := reporter.NewReport(analyses, summary)
	switch outputFormat {
	case "csv":
		err = reporter.GenerateCSV(report, os.Stdout)
	case "markdown":
		err = reporter.GenerateMarkdown(report, os.Stdout)
	default:
		report.WriteText(os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCollect(cmd *cobra.Command, args []string) {
	eng, cleanup := buildEngine()
	defer cleanup()

	day := time.Now().UTC()
	if collectDate != "" {
		parsed, err := time.Parse("2006-01-02", collectDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --date: %v\n", err)
			os.Exit(1)
		}
		day = parsed
	}

	result, err := eng.CollectAndPersist(context.Background(), day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("[INFO] Collection %s: %d clusters processed, %d snapshots written\n",
		result.RunID, result.ClustersProcessed, result.SnapshotsWritten)
	for _, msg := range result.Errors {
		fmt.Printf("[WARN] %s\n", msg)
	}
}

func runSummary(cmd *cobra.Command, args []string) {
	eng, cleanup := buildEngine()
	defer cleanup()
	ctx := context.Background()

	summary, passErrs, err := eng.Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, pe := range passErrs {
		fmt.Printf("[WARN] %v\n", pe)
	}

	switch outputFormat {
	case "json":
		printJSON(summary)
	case "csv", "markdown", "text":
		analyses, _, err := eng.AnalyzeAll(ctx, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		report := reporter.NewReport(analyses, summary)
		switch outputFormat {
		case "csv":
			err = reporter.GenerateCSV(report, os.Stdout)
		case "markdown":
			err = reporter.GenerateMarkdown(report, os.Stdout)
		default:
			report.WriteText(os.Stdout)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", outputFormat)
		os.Exit(1)
	}
}

func runTrends(cmd *cobra.Command, args []string) {
	eng, cleanup := buildEngine()
	defer cleanup()

	report, err := eng.Trends(context.Background(), trendDays, trendWindow)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if outputFormat == "json" {
		printJSON(report)
		return
	}

	s := report.Summary
	if s.InsufficientData {
		fmt.Printf("[WARN] %s\n", s.Message)
		return
	}
	fmt.Printf("Trend over %d days (%d data points, %d-day smoothing)\n", s.PeriodDays, s.DataPoints, s.MovingAvgWindow)
	fmt.Printf("  Efficiency:  %.1f%% (%s)\n", s.CurrentEfficiency, s.EfficiencyTrend)
	fmt.Printf("  Daily units: %.1f (%s)\n", s.CurrentDailyUnits, s.ConsumedTrend)
}

func runHistory(cmd *cobra.Command, args []string) {
	eng, cleanup := buildEngine()
	defer cleanup()

	runs, err := eng.CollectionHistory(context.Background(), historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if outputFormat == "json" {
		printJSON(runs)
		return
	}
	for _, run := range runs {
		fmt.Printf("%s  %s  clusters=%d snapshots=%d errors=%d persisted=%t\n",
			run.CreatedAt.Format(time.RFC3339), run.Date.Format("2006-01-02"),
			run.ClustersProcessed, run.SnapshotsWritten, run.ErrorCount, run.Persisted)
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
