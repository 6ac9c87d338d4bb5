package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	ReplaceSales(ctx context.Context, db *gorm.DB, records []SaleRecord) error
	ReplaceProposals(ctx context.Context, db *gorm.DB, records []ProposalRecord) error
	ListSales(ctx context.Context, db *gorm.DB) ([]SaleRecord, error)
	ListProposals(ctx context.Context, db *gorm.DB) ([]ProposalRecord, error)
	Clear(ctx context.Context, db *gorm.DB) error

	InsertUpload(ctx context.Context, db *gorm.DB, upload *Upload) error
	ListUploads(ctx context.Context, db *gorm.DB, limit int) ([]Upload, error)
	DeleteUploadsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}

// DerivedStore holds data computed from the ledgers. It is emptied in the
// same transaction that replaces or clears a ledger.
type DerivedStore interface {
	DeleteRecords(ctx context.Context, db *gorm.DB) error
}
