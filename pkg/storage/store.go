package storage

import (
	"context"
	"errors"
	"time"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// ErrStoreUnavailable wraps connectivity failures so callers can tell
// an unreachable store apart from a bad query.
var ErrStoreUnavailable = errors.New("snapshot store unavailable")

// Store defines the interface for persistent snapshot storage
type Store interface {
	// UpsertSnapshot writes one cluster-day record. Re-collecting the
	// same cluster and date overwrites rather than duplicates.
	UpsertSnapshot(ctx context.Context, snap *models.DailySnapshot) error
	GetWindow(ctx context.Context, clusterID string, since time.Time) ([]models.DailySnapshot, error)

	// DailyAggregates rolls all clusters' snapshots up per date,
	// ordered oldest first.
	DailyAggregates(ctx context.Context, since time.Time) ([]models.DailyAggregate, error)

	RecordCollectionRun(ctx context.Context, run *models.CollectionRun) error
	ListCollectionRuns(ctx context.Context, limit int) ([]*models.CollectionRun, error)

	Ping(ctx context.Context) error
	Close() error
}
