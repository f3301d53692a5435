package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// PrometheusSource reads cluster usage from a Prometheus server that
// scrapes the platform's billing exporter.
type PrometheusSource struct {
	client v1.API
	url    string
}

func NewPrometheusSource(url string) (*PrometheusSource, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus client: %w", err)
	}

	return &PrometheusSource{
		client: v1.NewAPI(client),
		url:    url,
	}, nil
}

// GetUsage sums a day's consumed capacity units and uptime hours for
// one cluster. Both series are counters aggregated over the UTC day.
func (p *PrometheusSource) GetUsage(ctx context.Context, clusterID string, date time.Time) (*models.UsageSample, error) {
	dayEnd := models.DateOf(date).Add(24 * time.Hour)

	consumedQuery := fmt.Sprintf(`sum(increase(cluster_consumed_capacity_units_total{cluster_id="%s"}[24h]))`, clusterID)
	consumed, err := p.querySingle(ctx, consumedQuery, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("consumed capacity query for %s: %w", clusterID, err)
	}

	uptimeQuery := fmt.Sprintf(`sum(increase(cluster_uptime_seconds_total{cluster_id="%s"}[24h])) / 3600`, clusterID)
	uptime, err := p.querySingle(ctx, uptimeQuery, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("uptime query for %s: %w", clusterID, err)
	}

	return &models.UsageSample{
		ConsumedUnits: consumed,
		UptimeHours:   uptime,
	}, nil
}

func (p *PrometheusSource) querySingle(ctx context.Context, query string, at time.Time) (float64, error) {
	result, warnings, err := p.client.Query(ctx, query, at)
	if err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}

	if len(warnings) > 0 {
		fmt.Printf("[WARN] Prometheus: %v\n", warnings)
	}

	vector, ok := result.(model.Vector)
	if !ok || len(vector) == 0 {
		return 0, ErrNoData
	}

	sum := 0.0
	for _, sample := range vector {
		sum += float64(sample.Value)
	}

	return sum, nil
}

func (p *PrometheusSource) IsAvailable(ctx context.Context) bool {
	_, _, err := p.client.Query(ctx, "up", time.Now())
	return err == nil
}

func (p *PrometheusSource) Name() string {
	return "Prometheus"
}
