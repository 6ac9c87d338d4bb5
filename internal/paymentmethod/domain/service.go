package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PaymentMethod, error)
	List(ctx context.Context, req ListRequest) ([]PaymentMethod, error)
	Get(ctx context.Context, id string) (*PaymentMethod, error)
	// UpdatePresentValue changes the discounting settings. Linking a
	// progressive table zeroes the monthly rate.
	UpdatePresentValue(ctx context.Context, req UpdatePresentValueRequest) (*PaymentMethod, error)
	Deactivate(ctx context.Context, id string) (*PaymentMethod, error)
	Delete(ctx context.Context, id string) error

	// Ensure returns the method with the given name, creating it with
	// present value disabled when missing.
	Ensure(ctx context.Context, name string) (*PaymentMethod, error)
	Sync(ctx context.Context, names []string) (SyncResult, error)

	CreateProgressiveTable(ctx context.Context, req CreateProgressiveTableRequest) (*ProgressiveTable, error)
	ListProgressiveTables(ctx context.Context) ([]ProgressiveTable, error)
	DeleteProgressiveTable(ctx context.Context, id string) error

	WithTx(tx *gorm.DB) Service
}

type ListRequest struct {
	Status string
}

type CreateRequest struct {
	Name                string  `json:"name"`
	ApplyPresentValue   bool    `json:"apply_present_value"`
	MonthlyInterestRate float64 `json:"monthly_interest_rate"`
	ProgressiveTableID  string  `json:"progressive_table_id,omitempty"`
}

type UpdatePresentValueRequest struct {
	ID                  string  `json:"-"`
	ApplyPresentValue   bool    `json:"apply_present_value"`
	MonthlyInterestRate float64 `json:"monthly_interest_rate"`
	ProgressiveTableID  string  `json:"progressive_table_id,omitempty"`
}

type CreateProgressiveTableRequest struct {
	Name         string    `json:"name"`
	Coefficients []float64 `json:"coefficients"`
}

type SyncResult struct {
	Created  []string `json:"created"`
	Existing []string `json:"existing"`
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidInterestRate = errors.New("invalid_monthly_interest_rate")
	ErrInvalidCoefficients = errors.New("invalid_coefficients")
	ErrNotFound            = errors.New("payment_method_not_found")
	ErrAlreadyExists       = errors.New("payment_method_already_exists")
	ErrTableNotFound       = errors.New("progressive_table_not_found")
	ErrTableAlreadyExists  = errors.New("progressive_table_already_exists")
	ErrTableInUse          = errors.New("progressive_table_in_use")
)
