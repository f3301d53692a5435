package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

//go:embed migrations/*.sql
var postgresFS embed.FS

// PostgresStore implements Store interface using PostgreSQL
type PostgresStore struct {
	db  *sql.DB
	dsn string
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	store := &PostgresStore{
		db:  db,
		dsn: dsn,
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// migrate runs database migrations
func (s *PostgresStore) migrate() error {
	schema, err := postgresFS.ReadFile("migrations/001_postgres_schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// UpsertSnapshot writes or replaces the snapshot for one cluster-day
func (s *PostgresStore) UpsertSnapshot(ctx context.Context, snap *models.DailySnapshot) error {
	if snap.CollectedAt.IsZero() {
		snap.CollectedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO daily_snapshots (
			cluster_id, cluster_name, metric_date, category,
			worker_count, capacity_units, consumed_units, uptime_hours,
			efficiency_score, is_oversized, is_underutilized, collected_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (cluster_id, metric_date) DO UPDATE SET
			cluster_name = EXCLUDED.cluster_name,
			category = EXCLUDED.category,
			worker_count = EXCLUDED.worker_count,
			capacity_units = EXCLUDED.capacity_units,
			consumed_units = EXCLUDED.consumed_units,
			uptime_hours = EXCLUDED.uptime_hours,
			efficiency_score = EXCLUDED.efficiency_score,
			is_oversized = EXCLUDED.is_oversized,
			is_underutilized = EXCLUDED.is_underutilized,
			collected_at = EXCLUDED.collected_at
	`

	var score sql.NullFloat64
	if snap.EfficiencyScore != nil {
		score = sql.NullFloat64{Float64: *snap.EfficiencyScore, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		snap.ClusterID, snap.ClusterName, snap.Date, snap.Category,
		snap.WorkerCount, snap.CapacityUnits, snap.ConsumedUnits, snap.UptimeHours,
		score, snap.IsOversized, snap.IsUnderutilized, snap.CollectedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for %s: %w", snap.ClusterID, err)
	}
	return nil
}

// GetWindow retrieves snapshots for one cluster from a date onward,
// oldest first
func (s *PostgresStore) GetWindow(ctx context.Context, clusterID string, since time.Time) ([]models.DailySnapshot, error) {
	query := `
		SELECT cluster_id, cluster_name, metric_date, category,
			worker_count, capacity_units, consumed_units, uptime_hours,
			efficiency_score, is_oversized, is_underutilized, collected_at
		FROM daily_snapshots
		WHERE cluster_id = $1 AND metric_date >= $2
		ORDER BY metric_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, clusterID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for %s: %w", clusterID, err)
	}
	defer rows.Close()

	var snapshots []models.DailySnapshot
	for rows.Next() {
		var snap models.DailySnapshot
		var score sql.NullFloat64

		err := rows.Scan(
			&snap.ClusterID, &snap.ClusterName, &snap.Date, &snap.Category,
			&snap.WorkerCount, &snap.CapacityUnits, &snap.ConsumedUnits, &snap.UptimeHours,
			&score, &snap.IsOversized, &snap.IsUnderutilized, &snap.CollectedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if score.Valid {
			snap.EfficiencyScore = &score.Float64
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// DailyAggregates rolls up snapshots per date across all clusters
func (s *PostgresStore) DailyAggregates(ctx context.Context, since time.Time) ([]models.DailyAggregate, error) {
	query := `
		SELECT metric_date,
			COUNT(*) AS total_clusters,
			COUNT(*) FILTER (WHERE is_oversized) AS oversized_count,
			COUNT(*) FILTER (WHERE is_underutilized) AS underutilized_count,
			COALESCE(AVG(efficiency_score), 0) AS avg_efficiency,
			COALESCE(SUM(consumed_units), 0) AS total_consumed_units,
			COALESCE(SUM(uptime_hours), 0) AS total_uptime_hours
		FROM daily_snapshots
		WHERE metric_date >= $1
		GROUP BY metric_date
		ORDER BY metric_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []models.DailyAggregate
	for rows.Next() {
		var agg models.DailyAggregate
		err := rows.Scan(
			&agg.Date, &agg.TotalClusters, &agg.OversizedCount, &agg.UnderutilizedCount,
			&agg.AvgEfficiency, &agg.TotalConsumedUnits, &agg.TotalUptimeHours,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily aggregate: %w", err)
		}
		aggs = append(aggs, agg)
	}

	return aggs, rows.Err()
}

// RecordCollectionRun appends a collection audit record
func (s *PostgresStore) RecordCollectionRun(ctx context.Context, run *models.CollectionRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO collection_runs (
			id, run_date, clusters_processed, snapshots_written,
			persisted, error_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.Date, run.ClustersProcessed, run.SnapshotsWritten,
		run.Persisted, run.ErrorCount, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record collection run %s: %w", run.ID, err)
	}
	return nil
}

// ListCollectionRuns retrieves recent collection runs, newest first
func (s *PostgresStore) ListCollectionRuns(ctx context.Context, limit int) ([]*models.CollectionRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, run_date, clusters_processed, snapshots_written,
			persisted, error_count, created_at
		FROM collection_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.CollectionRun
	for rows.Next() {
		var run models.CollectionRun
		err := rows.Scan(
			&run.ID, &run.Date, &run.ClustersProcessed, &run.SnapshotsWritten,
			&run.Persisted, &run.ErrorCount, &run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection run: %w", err)
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
