package inventory

import (
	"context"
	"fmt"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// StaticSource serves a fixed cluster list. Used in tests.
type StaticSource struct {
	Clusters []*models.ClusterConfig
}

func NewStaticSource(clusters ...*models.ClusterConfig) *StaticSource {
	return &StaticSource{Clusters: clusters}
}

func (s *StaticSource) ListClusters(ctx context.Context) ([]*models.ClusterConfig, error) {
	return s.Clusters, nil
}

func (s *StaticSource) GetCluster(ctx context.Context, id string) (*models.ClusterConfig, error) {
	for _, c := range s.Clusters {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("cluster %s not found in inventory", id)
}

func (s *StaticSource) Name() string { return "static" }
