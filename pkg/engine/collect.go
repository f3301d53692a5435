package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
	"github.com/opscart/cluster-cost-advisor/pkg/usage"
)

// CollectAndPersist samples every cluster's usage for one day, scores
// it and upserts the snapshots. Clusters without usage data are
// recorded and skipped rather than written as zeros. An unreachable
// store aborts the whole run.
func (e *Engine) CollectAndPersist(ctx context.Context, date time.Time) (*models.CollectionResult, error) {
	if err := e.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("refusing to collect: %w", err)
	}

	clusters, err := e.inventory.ListClusters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clusters: %w", err)
	}

	day := models.DateOf(date)
	result := &models.CollectionResult{
		RunID:     uuid.New().String(),
		Date:      day,
		Persisted: e.persistent,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, cfg := range clusters {
		cfg := cfg
		g.Go(func() error {
			sample, err := e.usage.GetUsage(gctx, cfg.ID, day)

			mu.Lock()
			defer mu.Unlock()
			result.ClustersProcessed++

			if err != nil {
				if errors.Is(err, usage.ErrNoData) {
					result.Errors = append(result.Errors, fmt.Sprintf("cluster %s: no usage data for %s", cfg.ID, day.Format("2006-01-02")))
					return nil
				}
				result.Errors = append(result.Errors, fmt.Sprintf("cluster %s: %v", cfg.ID, err))
				return nil
			}

			snap := e.calc.Snapshot(cfg, day, *sample)
			if err := e.store.UpsertSnapshot(gctx, &snap); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("cluster %s: %v", cfg.ID, err))
				return nil
			}
			result.SnapshotsWritten++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	run := &models.CollectionRun{
		ID:                result.RunID,
		Date:              day,
		ClustersProcessed: result.ClustersProcessed,
		SnapshotsWritten:  result.SnapshotsWritten,
		Persisted:         result.Persisted,
		ErrorCount:        len(result.Errors),
	}
	if err := e.store.RecordCollectionRun(ctx, run); err != nil {
		fmt.Printf("[WARN] failed to record collection run %s: %v\n", run.ID, err)
	}

	if e.verbose {
		fmt.Printf("[DEBUG] collection %s: %d clusters, %d snapshots, %d errors\n",
			result.RunID, result.ClustersProcessed, result.SnapshotsWritten, len(result.Errors))
	}
	return result, nil
}

// CollectionHistory lists recent collection runs, newest first.
func (e *Engine) CollectionHistory(ctx context.Context, limit int) ([]*models.CollectionRun, error) {
	runs, err := e.store.ListCollectionRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection runs: %w", err)
	}
	return runs, nil
}
