// Package domain describes commission results: per order, per seller and
// per city, plus the persisted commission ledger and processing runs.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InstrumentResult is one payment instrument of an order after present
// value adjustment and commission distribution.
type InstrumentResult struct {
	ProposalID        snowflake.ID `json:"proposal_id"`
	PaymentMethodName string       `json:"payment_method_name"`
	InstallmentCount  int          `json:"installment_count"`
	NominalValue      float64      `json:"nominal_value"`
	PresentValue      float64      `json:"present_value"`
	Commission        float64      `json:"commission"`
}

type OrderResult struct {
	SellerName         string             `json:"seller_name"`
	OrderID            string             `json:"order_id"`
	FiscalDocumentID   string             `json:"fiscal_document_id,omitempty"`
	VehicleModel       string             `json:"vehicle_model"`
	IsHighDisplacement bool               `json:"is_high_displacement"`
	IsInternal         bool               `json:"is_internal"`
	ListPrice          float64            `json:"list_price"`
	NominalTotal       float64            `json:"nominal_total"`
	PresentValueTotal  float64            `json:"present_value_total"`
	AchievementRatio   float64            `json:"achievement_ratio"`
	Rate               float64            `json:"rate"`
	RatePercent        float64            `json:"rate_percent"`
	CommissionTotal    float64            `json:"commission_total"`
	Instruments        []InstrumentResult `json:"instruments"`
}

type OrderCommissions struct {
	SellerName string        `json:"seller_name"`
	IsInternal bool          `json:"is_internal"`
	City       string        `json:"city"`
	Orders     []OrderResult `json:"orders"`
	Warnings   []string      `json:"warnings"`
}

type SellerSummary struct {
	SellerName        string  `json:"seller_name"`
	IsInternal        bool    `json:"is_internal"`
	TotalSales        float64 `json:"total_sales"`
	TotalCommission   float64 `json:"total_commission"`
	OrderCount        int     `json:"order_count"`
	AverageCommission float64 `json:"average_commission"`
}

type CitySummary struct {
	City              string  `json:"city"`
	TotalSales        float64 `json:"total_sales"`
	TotalCommission   float64 `json:"total_commission"`
	OrderCount        int     `json:"order_count"`
	AverageCommission float64 `json:"average_commission"`
}

type CitySummaryResult struct {
	Cities   []CitySummary `json:"cities"`
	Recorded int           `json:"recorded"`
	// Rejected counts orders left out of the rollup.
	Rejected int `json:"rejected"`
	// RejectedRecords counts proposal rows that could not be tied to a
	// registered seller.
	RejectedRecords int      `json:"rejected_records"`
	Warnings        []string `json:"warnings"`
}

type RateResolution struct {
	Rate        float64  `json:"rate"`
	RatePercent float64  `json:"rate_percent"`
	Warnings    []string `json:"warnings"`
}

type CalculateRequest struct {
	SaleValue          float64 `json:"sale_value"`
	TargetValue        float64 `json:"target_value"`
	IsHighDisplacement bool    `json:"is_high_displacement"`
	IsInternal         bool    `json:"is_internal"`
}

type CalculateResult struct {
	SaleValue        float64  `json:"sale_value"`
	TargetValue      float64  `json:"target_value"`
	AchievementRatio float64  `json:"achievement_ratio"`
	Rate             float64  `json:"rate"`
	RatePercent      float64  `json:"rate_percent"`
	Commission       float64  `json:"commission"`
	Warnings         []string `json:"warnings"`
}

// CommissionRecord is one order written to the commission ledger by the
// city rollup.
type CommissionRecord struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	SellerName       string       `gorm:"type:varchar(255);not null;index" json:"seller_name"`
	City             string       `gorm:"type:varchar(255);not null;index" json:"city"`
	VehicleModel     string       `gorm:"type:varchar(255);not null" json:"vehicle_model"`
	OrderID          string       `gorm:"type:varchar(255);not null" json:"order_id"`
	FiscalDocumentID string       `gorm:"type:varchar(255);not null" json:"fiscal_document_id"`
	PaymentMethods   string       `gorm:"type:text;not null" json:"payment_methods"`
	NominalValue     float64      `gorm:"not null" json:"nominal_value"`
	SaleValue        float64      `gorm:"not null" json:"sale_value"`
	AchievementRatio float64      `gorm:"not null" json:"achievement_ratio"`
	RatePercent      float64      `gorm:"not null" json:"rate_percent"`
	CommissionValue  float64      `gorm:"not null" json:"commission_value"`
	IsInternal       bool         `gorm:"not null" json:"is_internal"`
	CreatedAt        time.Time    `gorm:"not null" json:"created_at"`
}

func (CommissionRecord) TableName() string { return "commission_records" }

// Run is a persisted seller summary with its warnings.
type Run struct {
	ID              string         `gorm:"type:varchar(26);primaryKey" json:"id"`
	SellerCount     int            `gorm:"not null" json:"seller_count"`
	OrderCount      int            `gorm:"not null" json:"order_count"`
	TotalSales      float64        `gorm:"not null" json:"total_sales"`
	TotalCommission float64        `gorm:"not null" json:"total_commission"`
	Summaries       datatypes.JSON `gorm:"not null" json:"summaries"`
	Warnings        datatypes.JSON `gorm:"not null" json:"warnings"`
	Checksum        string         `gorm:"type:varchar(64);not null" json:"checksum"`
	CreatedAt       time.Time      `gorm:"not null;index" json:"created_at"`
}

func (Run) TableName() string { return "commission_runs" }
