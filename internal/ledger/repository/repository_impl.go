package repository

import (
	"context"
	"time"

	"github.com/railzwaylabs/commissions/internal/ledger/domain"
	"gorm.io/gorm"
)

const insertBatchSize = 500

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ReplaceSales(ctx context.Context, db *gorm.DB, records []domain.SaleRecord) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM sale_records`).Error; err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(records, insertBatchSize).Error
}

func (r *repo) ReplaceProposals(ctx context.Context, db *gorm.DB, records []domain.ProposalRecord) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM proposal_records`).Error; err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(records, insertBatchSize).Error
}

func (r *repo) ListSales(ctx context.Context, db *gorm.DB) ([]domain.SaleRecord, error) {
	var items []domain.SaleRecord
	err := db.WithContext(ctx).Raw(
		`SELECT id, batch_id, customer_id, seller_name, origin_city, order_id, fiscal_document_id,
		        vehicle_model, list_price, created_at
		 FROM sale_records ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListProposals(ctx context.Context, db *gorm.DB) ([]domain.ProposalRecord, error) {
	var items []domain.ProposalRecord
	err := db.WithContext(ctx).Raw(
		`SELECT id, batch_id, customer_id, order_id, fiscal_document_id, vehicle_model,
		        transaction_amount, payment_method_name, installment_count, created_at
		 FROM proposal_records ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Clear(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM sale_records`).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(`DELETE FROM proposal_records`).Error
}

func (r *repo) InsertUpload(ctx context.Context, db *gorm.DB, upload *domain.Upload) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO ledger_uploads (id, kind, file_name, fingerprint, row_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		upload.ID,
		upload.Kind,
		upload.FileName,
		upload.Fingerprint,
		upload.RowCount,
		upload.CreatedAt,
	).Error
}

func (r *repo) ListUploads(ctx context.Context, db *gorm.DB, limit int) ([]domain.Upload, error) {
	var items []domain.Upload
	err := db.WithContext(ctx).Raw(
		`SELECT id, kind, file_name, fingerprint, row_count, created_at
		 FROM ledger_uploads ORDER BY id DESC LIMIT ?`,
		limit,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) DeleteUploadsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Upload{}, "created_at < ?", cutoff)
	return res.RowsAffected, res.Error
}
