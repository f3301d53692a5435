package inventory

import (
	"context"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// Source lists the cluster configurations to analyze. The platform's
// control plane owns this data; the advisor only reads it.
type Source interface {
	ListClusters(ctx context.Context) ([]*models.ClusterConfig, error)
	GetCluster(ctx context.Context, id string) (*models.ClusterConfig, error)
	Name() string
}
