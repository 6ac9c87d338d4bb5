package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, method *domain.PaymentMethod) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO payment_methods (id, name, status, apply_present_value, monthly_interest_rate, progressive_table_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		method.ID,
		method.Name,
		method.Status,
		method.ApplyPresentValue,
		method.MonthlyInterestRate,
		method.ProgressiveTableID,
		method.CreatedAt,
		method.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, method *domain.PaymentMethod) error {
	return db.WithContext(ctx).Exec(
		`UPDATE payment_methods
		 SET name = ?, status = ?, apply_present_value = ?, monthly_interest_rate = ?, progressive_table_id = ?, updated_at = ?
		 WHERE id = ?`,
		method.Name,
		method.Status,
		method.ApplyPresentValue,
		method.MonthlyInterestRate,
		method.ProgressiveTableID,
		method.UpdatedAt,
		method.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM payment_methods WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PaymentMethod, error) {
	var m domain.PaymentMethod
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, status, apply_present_value, monthly_interest_rate, progressive_table_id, created_at, updated_at
		 FROM payment_methods WHERE id = ?`,
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

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.PaymentMethod, error) {
	var m domain.PaymentMethod
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, status, apply_present_value, monthly_interest_rate, progressive_table_id, created_at, updated_at
		 FROM payment_methods WHERE LOWER(name) = LOWER(?)
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

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.PaymentMethod, error) {
	query := db.WithContext(ctx).Model(&domain.PaymentMethod{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var items []domain.PaymentMethod
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CountByProgressiveTable(ctx context.Context, db *gorm.DB, tableID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM payment_methods WHERE progressive_table_id = ?`,
		tableID,
	).Scan(&count).Error
	return count, err
}

func (r *repo) InsertTable(ctx context.Context, db *gorm.DB, table *domain.ProgressiveTable) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO progressive_tables (id, code, name, coefficients, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		table.ID,
		table.Code,
		table.Name,
		table.Coefficients,
		table.CreatedAt,
		table.UpdatedAt,
	).Error
}

func (r *repo) DeleteTable(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM progressive_tables WHERE id = ?`, id).Error
}

func (r *repo) FindTableByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ProgressiveTable, error) {
	var t domain.ProgressiveTable
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, coefficients, created_at, updated_at
		 FROM progressive_tables WHERE id = ?`,
		id,
	).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, nil
	}
	return &t, nil
}

func (r *repo) ListTables(ctx context.Context, db *gorm.DB) ([]domain.ProgressiveTable, error) {
	var items []domain.ProgressiveTable
	err := db.WithContext(ctx).Model(&domain.ProgressiveTable{}).Order("name ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
