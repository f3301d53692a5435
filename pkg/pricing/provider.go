package pricing

import (
	"context"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// Provider defines the interface for capacity pricing data
type Provider interface {
	// UnitRate returns the USD price of one capacity unit for one hour
	// on the given cloud.
	UnitRate(ctx context.Context, cloud models.CloudProvider) (float64, error)
	Name() string
}

// StaticProvider serves fixed per-cloud unit rates with a fallback
// default. Rates come from the published list prices and are close
// enough for ranking recommendations.
type StaticProvider struct {
	rates       map[models.CloudProvider]float64
	defaultRate float64
}

func NewStaticProvider(defaultRate float64) *StaticProvider {
	return &StaticProvider{
		rates: map[models.CloudProvider]float64{
			models.CloudAWS:   0.15,
			models.CloudAzure: 0.17,
			models.CloudGCP:   0.14,
		},
		defaultRate: defaultRate,
	}
}

func (p *StaticProvider) UnitRate(ctx context.Context, cloud models.CloudProvider) (float64, error) {
	if rate, ok := p.rates[cloud]; ok {
		return rate, nil
	}
	return p.defaultRate, nil
}

func (p *StaticProvider) Name() string { return "static" }
