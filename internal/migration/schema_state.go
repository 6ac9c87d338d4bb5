package migration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	StatusInitializing = "initializing"
	StatusActive       = "active"
)

// SchemaState is the single row recording which schema version was applied.
type SchemaState struct {
	ID            bool       `gorm:"primaryKey;default:true"`
	Status        string     `gorm:"type:varchar(16);not null"`
	SchemaVersion string     `gorm:"type:varchar(32);not null"`
	Checksum      *string    `gorm:"type:varchar(64)"`
	ActivatedAt   *time.Time
	CreatedAt     time.Time `gorm:"not null"`
}

func (SchemaState) TableName() string { return "schema_state" }

func activateSchemaState(ctx context.Context, db *gorm.DB, schemaVersion, checksum string) error {
	if db == nil {
		return errors.New("schema state requires database handle")
	}

	version := strings.TrimSpace(schemaVersion)
	if version == "" {
		return errors.New("schema version is required for schema state activation")
	}

	now := time.Now().UTC()
	state := SchemaState{
		ID:            true,
		Status:        StatusActive,
		SchemaVersion: version,
		Checksum:      nullIfEmpty(checksum),
		ActivatedAt:   &now,
		CreatedAt:     now,
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "schema_version", "checksum", "activated_at"}),
	}).Create(&state).Error
	if err != nil {
		return fmt.Errorf("activate schema state: %w", err)
	}
	return nil
}

// LoadSchemaState returns nil when the state row has never been written.
func LoadSchemaState(ctx context.Context, db *gorm.DB) (*SchemaState, error) {
	var state SchemaState
	result := db.WithContext(ctx).Where("id = ?", true).Limit(1).Find(&state)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	state.Status = strings.ToLower(strings.TrimSpace(state.Status))
	state.SchemaVersion = strings.TrimSpace(state.SchemaVersion)
	state.Checksum = nullIfEmpty(derefString(state.Checksum))
	return &state, nil
}

func nullIfEmpty(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
