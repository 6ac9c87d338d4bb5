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
	Insert(ctx context.Context, db *gorm.DB, seller *Seller) error
	Update(ctx context.Context, db *gorm.DB, seller *Seller) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Seller, error)
	// FindByName matches case-insensitively, preferring an exact match.
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Seller, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Seller, error)
}
