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
	Insert(ctx context.Context, db *gorm.DB, model *VehicleModel) error
	Update(ctx context.Context, db *gorm.DB, model *VehicleModel) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*VehicleModel, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*VehicleModel, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]VehicleModel, error)
}
