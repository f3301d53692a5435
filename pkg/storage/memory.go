package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// MemoryStore keeps snapshots in process memory. Used when storage is
// disabled and throughout the tests.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]map[time.Time]models.DailySnapshot // cluster id -> date -> snapshot
	runs      []*models.CollectionRun
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]map[time.Time]models.DailySnapshot),
	}
}

func (s *MemoryStore) UpsertSnapshot(ctx context.Context, snap *models.DailySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := models.DateOf(snap.Date)
	byDate, ok := s.snapshots[snap.ClusterID]
	if !ok {
		byDate = make(map[time.Time]models.DailySnapshot)
		s.snapshots[snap.ClusterID] = byDate
	}
	stored := *snap
	stored.Date = date
	if stored.CollectedAt.IsZero() {
		stored.CollectedAt = time.Now().UTC()
	}
	byDate[date] = stored
	return nil
}

func (s *MemoryStore) GetWindow(ctx context.Context, clusterID string, since time.Time) ([]models.DailySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var window []models.DailySnapshot
	for date, snap := range s.snapshots[clusterID] {
		if date.Before(models.DateOf(since)) {
			continue
		}
		window = append(window, snap)
	}
	sort.Slice(window, func(i, j int) bool { return window[i].Date.Before(window[j].Date) })
	return window, nil
}

func (s *MemoryStore) DailyAggregates(ctx context.Context, since time.Time) ([]models.DailyAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDate := make(map[time.Time]*models.DailyAggregate)
	scored := make(map[time.Time]int)
	for _, dates := range s.snapshots {
		for date, snap := range dates {
			if date.Before(models.DateOf(since)) {
				continue
			}
			agg, ok := byDate[date]
			if !ok {
				agg = &models.DailyAggregate{Date: date}
				byDate[date] = agg
			}
			agg.TotalClusters++
			if snap.IsOversized {
				agg.OversizedCount++
			}
			if snap.IsUnderutilized {
				agg.UnderutilizedCount++
			}
			if snap.EfficiencyScore != nil {
				agg.AvgEfficiency += *snap.EfficiencyScore
				scored[date]++
			}
			agg.TotalConsumedUnits += snap.ConsumedUnits
			agg.TotalUptimeHours += snap.UptimeHours
		}
	}

	var aggs []models.DailyAggregate
	for date, agg := range byDate {
		if n := scored[date]; n > 0 {
			agg.AvgEfficiency /= float64(n)
		}
		aggs = append(aggs, *agg)
	}
	sort.Slice(aggs, func(i, j int) bool { return aggs[i].Date.Before(aggs[j].Date) })
	return aggs, nil
}

func (s *MemoryStore) RecordCollectionRun(ctx context.Context, run *models.CollectionRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *run
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.runs = append(s.runs, &stored)
	return nil
}

func (s *MemoryStore) ListCollectionRuns(ctx context.Context, limit int) ([]*models.CollectionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.runs) {
		limit = len(s.runs)
	}
	// Newest first.
	runs := make([]*models.CollectionRun, 0, limit)
	for i := len(s.runs) - 1; i >= 0 && len(runs) < limit; i-- {
		copied := *s.runs[i]
		runs = append(runs, &copied)
	}
	return runs, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
