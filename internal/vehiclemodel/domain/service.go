package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*VehicleModel, error)
	List(ctx context.Context, req ListRequest) ([]VehicleModel, error)
	Get(ctx context.Context, id string) (*VehicleModel, error)
	Update(ctx context.Context, req UpdateRequest) (*VehicleModel, error)
	Delete(ctx context.Context, id string) (*VehicleModel, error)

	// Ensure returns the model with the given name, creating it when
	// missing. The high displacement flag is derived from the name once.
	Ensure(ctx context.Context, name string) (*VehicleModel, error)
	// Sync registers the models of a sales upload, refreshing list prices
	// and reactivating inactive models. It never rewrites the flag.
	Sync(ctx context.Context, listPrices map[string]float64) (SyncResult, error)

	WithTx(tx *gorm.DB) Service
}

type ListRequest struct {
	Status string
}

type CreateRequest struct {
	Name               string   `json:"name"`
	IsHighDisplacement *bool    `json:"is_high_displacement,omitempty"`
	ListPrice          *float64 `json:"list_price,omitempty"`
}

type UpdateRequest struct {
	ID                 string   `json:"-"`
	Name               *string  `json:"name,omitempty"`
	IsHighDisplacement *bool    `json:"is_high_displacement,omitempty"`
	ListPrice          *float64 `json:"list_price,omitempty"`
	Status             *string  `json:"status,omitempty"`
}

type SyncResult struct {
	Created  []string `json:"created"`
	Existing []string `json:"existing"`
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidListPrice = errors.New("invalid_list_price")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrNotFound         = errors.New("vehicle_model_not_found")
	ErrAlreadyExists    = errors.New("vehicle_model_already_exists")
)
