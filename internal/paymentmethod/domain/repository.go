package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status Status
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, method *PaymentMethod) error
	Update(ctx context.Context, db *gorm.DB, method *PaymentMethod) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PaymentMethod, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*PaymentMethod, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]PaymentMethod, error)
	CountByProgressiveTable(ctx context.Context, db *gorm.DB, tableID snowflake.ID) (int64, error)

	InsertTable(ctx context.Context, db *gorm.DB, table *ProgressiveTable) error
	DeleteTable(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindTableByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ProgressiveTable, error)
	ListTables(ctx context.Context, db *gorm.DB) ([]ProgressiveTable, error)
}
