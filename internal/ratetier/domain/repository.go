package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock

type ListFilter struct {
	// IsInternal restricts the list to one scope when set.
	IsInternal *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tier *RateTier) error
	Update(ctx context.Context, db *gorm.DB, tier *RateTier) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*RateTier, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]RateTier, error)
}
