// Package domain contains the commission rate schedule: configured tiers,
// the built-in fallback schedule and the lookup policy between them.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type VehicleClass string

const (
	VehicleClassHighDisplacement VehicleClass = "high_displacement"
	VehicleClassStandard         VehicleClass = "standard"
)

// ClassFor maps the high displacement flag to a vehicle class.
func ClassFor(highDisplacement bool) VehicleClass {
	if highDisplacement {
		return VehicleClassHighDisplacement
	}
	return VehicleClassStandard
}

func (c VehicleClass) Valid() bool {
	return c == VehicleClassHighDisplacement || c == VehicleClassStandard
}

type Scope string

const (
	ScopeInternal Scope = "internal"
	ScopeExternal Scope = "external"
)

// RateTier maps the achievement ratio range [MinRatio, MaxRatio] to a rate.
// A nil MaxRatio is unbounded above. VehicleClass only applies to internal
// tiers.
type RateTier struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	IsInternal   bool          `gorm:"not null;index:idx_rate_tiers_lookup,priority:1" json:"is_internal"`
	VehicleClass *VehicleClass `gorm:"type:varchar(32);index:idx_rate_tiers_lookup,priority:2" json:"vehicle_class,omitempty"`
	MinRatio     float64       `gorm:"not null;index:idx_rate_tiers_lookup,priority:3" json:"min_ratio"`
	MaxRatio     *float64      `json:"max_ratio,omitempty"`
	Rate         float64       `gorm:"not null" json:"rate"`
	CreatedAt    time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null" json:"updated_at"`
}

func (RateTier) TableName() string { return "rate_tiers" }

func (t RateTier) Scope() Scope {
	if t.IsInternal {
		return ScopeInternal
	}
	return ScopeExternal
}

// Contains reports whether the ratio falls inside the tier bounds.
func (t RateTier) Contains(ratio float64) bool {
	if ratio < t.MinRatio {
		return false
	}
	return t.MaxRatio == nil || ratio <= *t.MaxRatio
}
