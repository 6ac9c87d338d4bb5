// Package domain contains payment methods and the progressive discount
// tables they may reference.
package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

const UnknownMethodName = "Desconhecido"

type PaymentMethod struct {
	ID                  snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name                string        `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Status              Status        `gorm:"type:varchar(16);not null;index" json:"status"`
	ApplyPresentValue   bool          `gorm:"not null" json:"apply_present_value"`
	MonthlyInterestRate float64       `gorm:"not null" json:"monthly_interest_rate"`
	ProgressiveTableID  *snowflake.ID `gorm:"index" json:"progressive_table_id,omitempty"`
	CreatedAt           time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time     `gorm:"not null" json:"updated_at"`
}

func (PaymentMethod) TableName() string { return "payment_methods" }

func (m PaymentMethod) Active() bool { return m.Status == StatusActive }

// ProgressiveTable holds one discount coefficient, in percent, per
// installment position.
type ProgressiveTable struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	Code         string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"code"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Coefficients datatypes.JSON `gorm:"not null" json:"coefficients"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (ProgressiveTable) TableName() string { return "progressive_tables" }

// CoefficientList decodes the stored coefficients. Malformed content decodes
// to an empty list.
func (t ProgressiveTable) CoefficientList() []float64 {
	if len(t.Coefficients) == 0 {
		return nil
	}
	var out []float64
	if err := json.Unmarshal(t.Coefficients, &out); err != nil {
		return nil
	}
	return out
}
