package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*RateTier, error)
	List(ctx context.Context, req ListRequest) ([]RateTier, error)
	Get(ctx context.Context, id string) (*RateTier, error)
	Update(ctx context.Context, req UpdateRequest) (*RateTier, error)
	Delete(ctx context.Context, id string) error

	// Resolve returns the rate for one classification. It never fails: when
	// the tiers cannot be loaded the fallback schedule is used and a warning
	// is returned.
	Resolve(ctx context.Context, ratio float64, highDisplacement, internal bool) Resolution
	// Schedule loads every tier once for repeated lookups.
	Schedule(ctx context.Context) *Schedule
}

type ListRequest struct {
	// Scope is "internal", "external" or empty for every tier.
	Scope string
}

type CreateRequest struct {
	IsInternal   bool     `json:"is_internal"`
	VehicleClass string   `json:"vehicle_class,omitempty"`
	MinRatio     *float64 `json:"min_ratio"`
	MaxRatio     *float64 `json:"max_ratio,omitempty"`
	Rate         *float64 `json:"rate"`
}

type UpdateRequest struct {
	ID           string   `json:"-"`
	VehicleClass *string  `json:"vehicle_class,omitempty"`
	MinRatio     *float64 `json:"min_ratio,omitempty"`
	MaxRatio     *float64 `json:"max_ratio,omitempty"`
	ClearMax     bool     `json:"clear_max_ratio,omitempty"`
	Rate         *float64 `json:"rate,omitempty"`
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidScope        = errors.New("invalid_scope")
	ErrInvalidVehicleClass = errors.New("invalid_vehicle_class")
	ErrInvalidMinRatio     = errors.New("invalid_min_ratio")
	ErrInvalidMaxRatio     = errors.New("invalid_max_ratio")
	ErrInvalidRate         = errors.New("invalid_rate")
	ErrNotFound            = errors.New("rate_tier_not_found")
)
