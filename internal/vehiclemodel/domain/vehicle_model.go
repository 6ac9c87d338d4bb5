// Package domain contains the vehicle model catalogue.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// UnknownModelName is the placeholder the sales export uses for rows
// without a model.
const UnknownModelName = "Desconhecida"

// HighDisplacementMarker is the token that flags a model name as high
// displacement.
const HighDisplacementMarker = "AC"

type VehicleModel struct {
	ID                 snowflake.ID `gorm:"primaryKey" json:"id"`
	Name               string       `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	IsHighDisplacement bool         `gorm:"not null" json:"is_high_displacement"`
	ListPrice          float64      `gorm:"not null" json:"list_price"`
	Status             Status       `gorm:"type:varchar(16);not null;index" json:"status"`
	CreatedAt          time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"not null" json:"updated_at"`
}

func (VehicleModel) TableName() string { return "vehicle_models" }

// IsHighDisplacementName reports whether a model name carries the high
// displacement marker anywhere, case-insensitively.
func IsHighDisplacementName(name string) bool {
	return strings.Contains(strings.ToUpper(name), HighDisplacementMarker)
}
