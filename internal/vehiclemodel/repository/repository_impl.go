package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, model *domain.VehicleModel) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO vehicle_models (id, name, is_high_displacement, list_price, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		model.ID,
		model.Name,
		model.IsHighDisplacement,
		model.ListPrice,
		model.Status,
		model.CreatedAt,
		model.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, model *domain.VehicleModel) error {
	return db.WithContext(ctx).Exec(
		`UPDATE vehicle_models
		 SET name = ?, is_high_displacement = ?, list_price = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		model.Name,
		model.IsHighDisplacement,
		model.ListPrice,
		model.Status,
		model.UpdatedAt,
		model.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.VehicleModel, error) {
	var m domain.VehicleModel
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, is_high_displacement, list_price, status, created_at, updated_at
		 FROM vehicle_models WHERE id = ?`,
		id,
	).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.VehicleModel, error) {
	var m domain.VehicleModel
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, is_high_displacement, list_price, status, created_at, updated_at
		 FROM vehicle_models WHERE LOWER(name) = LOWER(?)
		 ORDER BY CASE WHEN name = ? THEN 0 ELSE 1 END, id ASC
		 LIMIT 1`,
		name,
		name,
	).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.VehicleModel, error) {
	query := db.WithContext(ctx).Model(&domain.VehicleModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var items []domain.VehicleModel
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
