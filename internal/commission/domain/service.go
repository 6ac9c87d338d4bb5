package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	ComputeSellerSummary(ctx context.Context) ([]SellerSummary, error)
	// ComputeCitySummary also rewrites the commission ledger with one record
	// per order it accepts.
	ComputeCitySummary(ctx context.Context) (*CitySummaryResult, error)
	ComputeOrderCommissions(ctx context.Context, sellerName string) (*OrderCommissions, error)
	ResolveRate(ctx context.Context, ratio float64, highDisplacement, internal bool) RateResolution
	CalculateCommission(ctx context.Context, req CalculateRequest) (*CalculateResult, error)

	ProcessCommissions(ctx context.Context) (*Run, error)
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	PurgeRuns(ctx context.Context, before time.Time) (int64, error)
	ListRecords(ctx context.Context) ([]CommissionRecord, error)
}

var (
	ErrInvalidTarget     = errors.New("invalid_target_value")
	ErrInvalidSaleValue  = errors.New("invalid_sale_value")
	ErrInvalidRatio      = errors.New("invalid_achievement_ratio")
	ErrInvalidSellerName = errors.New("invalid_seller_name")
	ErrSellerNotFound    = errors.New("seller_not_found")
	ErrNothingToProcess  = errors.New("nothing_to_process")
	ErrInvalidRunID      = errors.New("invalid_run_id")
	ErrRunNotFound       = errors.New("commission_run_not_found")
)
