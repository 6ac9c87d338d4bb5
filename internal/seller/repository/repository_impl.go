package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/commissions/internal/seller/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, seller *domain.Seller) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sellers (id, name, city, is_internal, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seller.ID,
		seller.Name,
		seller.City,
		seller.IsInternal,
		seller.Status,
		seller.CreatedAt,
		seller.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, seller *domain.Seller) error {
	return db.WithContext(ctx).Exec(
		`UPDATE sellers SET name = ?, city = ?, is_internal = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		seller.Name,
		seller.City,
		seller.IsInternal,
		seller.Status,
		seller.UpdatedAt,
		seller.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Seller, error) {
	var s domain.Seller
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, city, is_internal, status, created_at, updated_at
		 FROM sellers WHERE id = ?`,
		id,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.Seller, error) {
	var s domain.Seller
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, city, is_internal, status, created_at, updated_at
		 FROM sellers WHERE LOWER(name) = LOWER(?)
		 ORDER BY CASE WHEN name = ? THEN 0 ELSE 1 END, id ASC
		 LIMIT 1`,
		name,
		name,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Seller, error) {
	query := db.WithContext(ctx).Model(&domain.Seller{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var items []domain.Seller
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
