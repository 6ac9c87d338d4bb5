// Package domain holds the two uploaded ledgers: completed sales and the
// payment proposals applied to them.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Kind string

const (
	KindSales     Kind = "sales"
	KindProposals Kind = "proposals"
)

// SaleRecord is one line item of the sales ledger. Rows are replaced as a
// whole on every sales upload.
type SaleRecord struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	BatchID          string       `gorm:"type:varchar(26);not null;index" json:"batch_id"`
	CustomerID       string       `gorm:"type:varchar(255);not null;index" json:"customer_id"`
	SellerName       string       `gorm:"type:varchar(255);not null" json:"seller_name"`
	OriginCity       string       `gorm:"type:varchar(255);not null" json:"origin_city"`
	OrderID          string       `gorm:"type:varchar(255);not null" json:"order_id"`
	FiscalDocumentID string       `gorm:"type:varchar(255);not null" json:"fiscal_document_id"`
	VehicleModel     string       `gorm:"type:varchar(255);not null" json:"vehicle_model"`
	ListPrice        float64      `gorm:"not null" json:"list_price"`
	CreatedAt        time.Time    `gorm:"not null" json:"created_at"`
}

func (SaleRecord) TableName() string { return "sale_records" }

// ProposalRecord is one payment instrument applied to an order.
type ProposalRecord struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	BatchID           string       `gorm:"type:varchar(26);not null;index" json:"batch_id"`
	CustomerID        string       `gorm:"type:varchar(255);not null;index" json:"customer_id"`
	OrderID           string       `gorm:"type:varchar(255);not null" json:"order_id"`
	FiscalDocumentID  string       `gorm:"type:varchar(255);not null" json:"fiscal_document_id"`
	VehicleModel      string       `gorm:"type:varchar(255);not null" json:"vehicle_model"`
	TransactionAmount float64      `gorm:"not null" json:"transaction_amount"`
	PaymentMethodName string       `gorm:"type:varchar(255);not null" json:"payment_method_name"`
	InstallmentCount  int          `gorm:"not null;default:1" json:"installment_count"`
	CreatedAt         time.Time    `gorm:"not null" json:"created_at"`
}

func (ProposalRecord) TableName() string { return "proposal_records" }

// Upload records one accepted ledger file.
type Upload struct {
	ID          string    `gorm:"type:varchar(26);primaryKey" json:"id"`
	Kind        Kind      `gorm:"type:varchar(16);not null;index" json:"kind"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"file_name"`
	Fingerprint string    `gorm:"type:varchar(64);not null" json:"fingerprint"`
	RowCount    int       `gorm:"not null" json:"row_count"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

func (Upload) TableName() string { return "ledger_uploads" }

// Ledgers is a consistent read of both record sets, in upload order.
type Ledgers struct {
	Sales     []SaleRecord
	Proposals []ProposalRecord
}
