package domain

import (
	"context"
	"errors"
	"io"
	"time"

	paymentmethoddomain "github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
	vehiclemodeldomain "github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
	"gorm.io/gorm"
)

type Service interface {
	// IngestSales parses a sales CSV, registers the sellers and vehicle
	// models it mentions and replaces the sales ledger.
	IngestSales(ctx context.Context, req IngestRequest) (*IngestResult, error)
	// IngestProposals parses a proposal CSV, registers its payment methods
	// and replaces the proposal ledger.
	IngestProposals(ctx context.Context, req IngestRequest) (*IngestResult, error)
	Clear(ctx context.Context) error
	Read(ctx context.Context) (*Ledgers, error)

	ListUploads(ctx context.Context, limit int) ([]Upload, error)
	PurgeUploads(ctx context.Context, before time.Time) (int64, error)

	WithTx(tx *gorm.DB) Service
}

type IngestRequest struct {
	FileName string
	Content  io.Reader
}

type IngestResult struct {
	BatchID        string                          `json:"batch_id"`
	Kind           Kind                            `json:"kind"`
	FileName       string                          `json:"file_name"`
	Fingerprint    string                          `json:"fingerprint"`
	Rows           int                             `json:"rows"`
	Sellers        *sellerdomain.SyncResult        `json:"sellers,omitempty"`
	VehicleModels  *vehiclemodeldomain.SyncResult  `json:"vehicle_models,omitempty"`
	PaymentMethods *paymentmethoddomain.SyncResult `json:"payment_methods,omitempty"`
}

var (
	ErrEmptyFile     = errors.New("empty_file")
	ErrMalformedFile = errors.New("malformed_file")
	ErrMissingColumn = errors.New("missing_column")
	ErrFileTooLarge  = errors.New("file_too_large")
)
