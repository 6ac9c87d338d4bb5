package repository

import (
	"context"
	"time"

	"github.com/railzwaylabs/commissions/internal/commission/domain"
	"gorm.io/gorm"
)

const insertBatchSize = 500

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) DeleteRecords(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec(`DELETE FROM commission_records`).Error
}

func (r *repo) InsertRecords(ctx context.Context, db *gorm.DB, records []domain.CommissionRecord) error {
	if len(records) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(records, insertBatchSize).Error
}

func (r *repo) ListRecords(ctx context.Context, db *gorm.DB) ([]domain.CommissionRecord, error) {
	var items []domain.CommissionRecord
	if err := db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) InsertRun(ctx context.Context, db *gorm.DB, run *domain.Run) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO commission_runs (id, seller_count, order_count, total_sales, total_commission, summaries, warnings, checksum, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.SellerCount,
		run.OrderCount,
		run.TotalSales,
		run.TotalCommission,
		run.Summaries,
		run.Warnings,
		run.Checksum,
		run.CreatedAt,
	).Error
}

func (r *repo) FindRun(ctx context.Context, db *gorm.DB, id string) (*domain.Run, error) {
	var items []domain.Run
	err := db.WithContext(ctx).Raw(
		`SELECT id, seller_count, order_count, total_sales, total_commission, summaries, warnings, checksum, created_at
		 FROM commission_runs WHERE id = ?`,
		id,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (r *repo) ListRuns(ctx context.Context, db *gorm.DB, limit int) ([]domain.Run, error) {
	var items []domain.Run
	err := db.WithContext(ctx).Model(&domain.Run{}).
		Select("id, seller_count, order_count, total_sales, total_commission, checksum, created_at").
		Order("id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) DeleteRunsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Run{}, "created_at < ?", cutoff)
	return res.RowsAffected, res.Error
}
