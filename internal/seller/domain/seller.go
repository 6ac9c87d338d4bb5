// Package domain contains the seller entity and its contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// UnknownSellerName is the placeholder the sales export uses for rows
// without an assigned seller.
const UnknownSellerName = "Desconhecido"

type Seller struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	City       string       `gorm:"type:varchar(255);not null" json:"city"`
	IsInternal bool         `gorm:"not null" json:"is_internal"`
	Status     Status       `gorm:"type:varchar(16);not null;index" json:"status"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null" json:"updated_at"`
}

func (Seller) TableName() string { return "sellers" }

func (s Seller) Active() bool { return s.Status == StatusActive }
