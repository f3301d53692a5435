package usage

import (
	"context"
	"time"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// StaticSource serves canned samples keyed by cluster ID. Useful in
// tests and for dry runs against exported billing data.
type StaticSource struct {
	Samples map[string]models.UsageSample
}

func NewStaticSource(samples map[string]models.UsageSample) *StaticSource {
	return &StaticSource{Samples: samples}
}

func (s *StaticSource) GetUsage(ctx context.Context, clusterID string, date time.Time) (*models.UsageSample, error) {
	sample, ok := s.Samples[clusterID]
	if !ok {
		return nil, ErrNoData
	}
	return &sample, nil
}

func (s *StaticSource) IsAvailable(ctx context.Context) bool { return true }

func (s *StaticSource) Name() string { return "static" }
