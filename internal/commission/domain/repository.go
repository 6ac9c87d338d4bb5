package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	DeleteRecords(ctx context.Context, db *gorm.DB) error
	InsertRecords(ctx context.Context, db *gorm.DB, records []CommissionRecord) error
	ListRecords(ctx context.Context, db *gorm.DB) ([]CommissionRecord, error)

	InsertRun(ctx context.Context, db *gorm.DB, run *Run) error
	FindRun(ctx context.Context, db *gorm.DB, id string) (*Run, error)
	ListRuns(ctx context.Context, db *gorm.DB, limit int) ([]Run, error)
	DeleteRunsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}
