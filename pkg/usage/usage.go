package usage

import (
	"context"
	"errors"
	"time"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// ErrNoData signals that the source has no sample for the cluster and
// date. Callers treat this as a skip, not a failure.
var ErrNoData = errors.New("no usage data for cluster")

// Source defines the interface for collecting per-cluster usage
type Source interface {
	// GetUsage returns the consumed capacity and uptime for one
	// cluster on one calendar day.
	GetUsage(ctx context.Context, clusterID string, date time.Time) (*models.UsageSample, error)
	IsAvailable(ctx context.Context) bool
	Name() string
}
