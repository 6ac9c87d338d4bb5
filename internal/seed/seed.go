package seed

import (
	"context"
	"errors"

	ratetierdomain "github.com/railzwaylabs/commissions/internal/ratetier/domain"
	"go.uber.org/zap"
)

// EnsureDefaultRateTiers inserts the tiers of the built-in fallback schedule
// when no tier exists yet and returns how many were created.
func EnsureDefaultRateTiers(ctx context.Context, svc ratetierdomain.Service, log *zap.Logger) (int, error) {
	if svc == nil {
		return 0, errors.New("seed rate tier service is required")
	}

	existing, err := svc.List(ctx, ratetierdomain.ListRequest{})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Info("rate tiers already configured, skipping seed", zap.Int("tiers", len(existing)))
		return 0, nil
	}

	created := 0
	for _, tier := range ratetierdomain.DefaultTiers() {
		req := ratetierdomain.CreateRequest{
			IsInternal: tier.IsInternal,
			MinRatio:   floatPtr(tier.MinRatio),
			MaxRatio:   tier.MaxRatio,
			Rate:       floatPtr(tier.Rate),
		}
		if tier.VehicleClass != nil {
			req.VehicleClass = string(*tier.VehicleClass)
		}
		if _, err := svc.Create(ctx, req); err != nil {
			return created, err
		}
		created++
	}

	log.Info("default rate tiers seeded", zap.Int("created", created))
	return created, nil
}

func floatPtr(v float64) *float64 {
	return &v
}
