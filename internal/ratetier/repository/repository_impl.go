package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/commissions/internal/ratetier/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tier *domain.RateTier) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO rate_tiers (id, is_internal, vehicle_class, min_ratio, max_ratio, rate, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tier.ID,
		tier.IsInternal,
		classArg(tier.VehicleClass),
		tier.MinRatio,
		tier.MaxRatio,
		tier.Rate,
		tier.CreatedAt,
		tier.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tier *domain.RateTier) error {
	return db.WithContext(ctx).Exec(
		`UPDATE rate_tiers SET vehicle_class = ?, min_ratio = ?, max_ratio = ?, rate = ?, updated_at = ?
		 WHERE id = ?`,
		classArg(tier.VehicleClass),
		tier.MinRatio,
		tier.MaxRatio,
		tier.Rate,
		tier.UpdatedAt,
		tier.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM rate_tiers WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.RateTier, error) {
	var items []domain.RateTier
	err := db.WithContext(ctx).Raw(
		`SELECT id, is_internal, vehicle_class, min_ratio, max_ratio, rate, created_at, updated_at
		 FROM rate_tiers WHERE id = ?`,
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

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.RateTier, error) {
	query := db.WithContext(ctx).Model(&domain.RateTier{})
	if filter.IsInternal != nil {
		query = query.Where("is_internal = ?", *filter.IsInternal)
	}

	var items []domain.RateTier
	if err := query.Order("is_internal DESC, vehicle_class ASC, min_ratio ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func classArg(class *domain.VehicleClass) any {
	if class == nil {
		return nil
	}
	return string(*class)
}
